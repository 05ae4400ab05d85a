package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rybkr/nonogram/internal/nonogram"
	"github.com/rybkr/nonogram/internal/propagate"
	"github.com/rybkr/nonogram/internal/search"
	"github.com/rybkr/nonogram/internal/zobrist"
)

var generateTimeout time.Duration

func init() {
	generateCmd := &cobra.Command{
		Use:   "generate <puzzle-file>",
		Short: "Check a TAAI puzzle's solution uniqueness",
		Long: `Generate reads one puzzle from puzzle-file and prints a single integer:
a positive node count if the puzzle has exactly one solution, -1 if it has
no solution, or -2 if it has more than one.

Examples:
  nonogram generate puzzle.taai`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerate,
	}
	generateCmd.Flags().DurationVar(&generateTimeout, "timeout", 0, "Verification timeout (0 = unlimited)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	puzzle, err := readPuzzleFile(args[0])
	if err != nil {
		return err
	}

	ctx := context.Background()
	if generateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, generateTimeout)
		defer cancel()
	}

	cache := zobrist.NewCache(zobrist.NewTable(zobristSeed), cacheCapacity)
	engine := propagate.NewEngine(cache)
	board := nonogram.NewBoard(puzzle)
	solver := search.NewSolver(engine)

	count, err := solver.VerifyTwo(ctx, board)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	switch count {
	case 0:
		fmt.Fprintln(cmd.OutOrStdout(), -1)
	case 1:
		fmt.Fprintln(cmd.OutOrStdout(), solver.NodeCount)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), -2)
	}
	return nil
}
