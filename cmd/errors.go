package cmd

import "errors"

// Sentinel errors surfaced by the CLI layer, per spec.md §7's error
// taxonomy: MalformedInput, Contradiction, and MultipleSolutions are the
// three outcomes a single-puzzle command can report back to the caller.
var (
	ErrMalformedInput    = errors.New("nonogram: malformed input")
	ErrContradiction     = errors.New("nonogram: puzzle has no solution")
	ErrMultipleSolutions = errors.New("nonogram: puzzle has multiple solutions")
)
