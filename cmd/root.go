package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rybkr/nonogram/internal/batch"
)

var (
	zobristSeed   int64
	cacheCapacity int
)

var rootCmd = &cobra.Command{
	Use:   "nonogram",
	Short: "Solve TAAI-format Nonogram puzzles",
	Long: `nonogram solves Nonogram puzzles described in TAAI format.

With no arguments it runs batch mode: read input.txt, solve every puzzle in
it, write the solutions to solution.txt, and append one diagnostic log entry
per puzzle to log.txt.

Examples:
  nonogram
  nonogram solve puzzle.taai
  nonogram generate puzzle.taai`,
	RunE:          runBatch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&zobristSeed, "seed", batch.DefaultConfig().ZobristSeed,
		"Zobrist hash seed (fixed for reproducible node counts)")
	rootCmd.PersistentFlags().IntVar(&cacheCapacity, "cache-capacity", batch.DefaultConfig().CacheCapacity,
		"Zobrist memo cache capacity in slots")
}

// Execute runs the root command, exiting the process with a nonzero status
// on any I/O failure per spec.md §6.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	in, err := os.Open("input.txt")
	if err != nil {
		return fmt.Errorf("batch: opening input.txt: %w", err)
	}
	defer in.Close()

	out, err := os.Create("solution.txt")
	if err != nil {
		return fmt.Errorf("batch: creating solution.txt: %w", err)
	}
	defer out.Close()

	logFile, err := os.OpenFile("log.txt", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("batch: opening log.txt: %w", err)
	}
	defer logFile.Close()

	log := logrus.New()
	log.SetOutput(logFile)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := batch.DefaultConfig()
	cfg.ZobristSeed = zobristSeed
	cfg.CacheCapacity = cacheCapacity

	results, err := batch.Run(context.Background(), cfg, in, out, log)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	failed := 0
	for _, r := range results {
		if !r.Solved {
			failed++
		}
	}
	log.WithFields(logrus.Fields{
		"puzzles": len(results),
		"failed":  failed,
	}).Info("batch complete")

	return nil
}
