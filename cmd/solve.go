package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rybkr/nonogram/internal/nonogram"
	"github.com/rybkr/nonogram/internal/propagate"
	"github.com/rybkr/nonogram/internal/search"
	"github.com/rybkr/nonogram/internal/taai"
	"github.com/rybkr/nonogram/internal/zobrist"
)

var solveTimeout time.Duration

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve <puzzle-file>",
		Short: "Solve a single TAAI puzzle",
		Long: `Solve reads one puzzle from puzzle-file and prints the node count and
elapsed seconds (tab-separated) followed by the solved N×N grid, one
character per cell from {0, 1}.

Examples:
  nonogram solve puzzle.taai
  nonogram solve --timeout 30s puzzle.taai`,
		Args: cobra.ExactArgs(1),
		RunE: runSolve,
	}
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "Solve timeout (0 = unlimited)")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	puzzle, err := readPuzzleFile(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	if solveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, solveTimeout)
		defer cancel()
	}

	cache := zobrist.NewCache(zobrist.NewTable(zobristSeed), cacheCapacity)
	engine := propagate.NewEngine(cache)
	board := nonogram.NewBoard(puzzle)
	solver := search.NewSolver(engine)

	start := time.Now()
	solved, err := solver.SolveFirst(ctx, board)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	// A contradiction is still reported as the puzzle's result, not an
	// error that suppresses output: per spec.md §7 solve mode emits an
	// empty grid with a marker (node count -1), matching the -1 convention
	// generate mode uses for "no solution". original_source/main.py prints
	// the node-count/elapsed header and the board unconditionally, whether
	// search_one_solution returned SOLVED or CONFLICT.
	if !solved {
		blank := nonogram.NewBoard(puzzle)
		if werr := taai.WriteSolution(cmd.OutOrStdout(), blank, -1, elapsed.Seconds()); werr != nil {
			return werr
		}
		return fmt.Errorf("solve: %w", ErrContradiction)
	}

	return taai.WriteSolution(cmd.OutOrStdout(), board, solver.NodeCount, elapsed.Seconds())
}

func readPuzzleFile(path string) (*nonogram.Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("solve: opening %s: %w", path, err)
	}
	defer f.Close()

	puzzle, err := taai.ParsePuzzle(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedInput, path, err)
	}
	return puzzle, nil
}
