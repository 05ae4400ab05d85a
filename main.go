// Command nonogram solves TAAI-format Nonogram puzzles: a single-puzzle
// `solve` command, a `generate` command that checks uniqueness, and a
// no-arguments batch mode that drains input.txt into solution.txt and
// log.txt.
package main

import "github.com/rybkr/nonogram/cmd"

func main() {
	cmd.Execute()
}
