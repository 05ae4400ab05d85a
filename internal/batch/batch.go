// Package batch implements the no-arguments CLI mode: read every puzzle
// from an input file, solve each in turn, write solutions to an output
// file, and append structured diagnostics to a log file. Grounded on
// original_source/search_scheduling.py's scheduled_solver, minus its
// pickle-based disk resumability (see DESIGN.md): a process restart here
// simply starts the batch over rather than resuming mid-puzzle.
package batch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rybkr/nonogram/internal/nonogram"
	"github.com/rybkr/nonogram/internal/propagate"
	"github.com/rybkr/nonogram/internal/search"
	"github.com/rybkr/nonogram/internal/taai"
	"github.com/rybkr/nonogram/internal/zobrist"
)

// Config controls one batch run.
type Config struct {
	// ZobristSeed seeds the hash table shared by every puzzle in the batch,
	// kept fixed across runs so node counts stay reproducible.
	ZobristSeed int64
	// CacheCapacity bounds the Zobrist memo cache's slot count.
	CacheCapacity int
	// LightNodeLimit is tried first for every puzzle.
	LightNodeLimit int
	// HeavyNodeLimit is retried once if LightNodeLimit is exceeded.
	HeavyNodeLimit int
}

// DefaultConfig mirrors original_source/config.py's LIGHT_NODE_LIMITED and
// HEAVY_NODE_LIMITED constants.
func DefaultConfig() Config {
	return Config{
		ZobristSeed:    0x5eed,
		CacheCapacity:  zobrist.DefaultCapacity,
		LightNodeLimit: 15000,
		HeavyNodeLimit: 60000,
	}
}

// Result is one puzzle's outcome within a batch run.
type Result struct {
	Index     int
	Solved    bool
	NodeCount int
	Elapsed   time.Duration
	Err       error

	board *nonogram.Board // retained only to write the solution grid in Run
}

// Run reads every puzzle from in, solves each with a light node budget
// first and a heavy one on retry, writes every solution to out in order,
// and logs one structured entry per puzzle via log.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, log *logrus.Logger) ([]Result, error) {
	puzzles, err := taai.ParseAll(in)
	if err != nil {
		return nil, fmt.Errorf("batch: reading input: %w", err)
	}

	results := make([]Result, 0, len(puzzles))
	for i, puzzle := range puzzles {
		res := solveOne(ctx, cfg, i, puzzle)
		results = append(results, res)

		fields := logrus.Fields{
			"puzzle":     i,
			"solved":     res.Solved,
			"node_count": res.NodeCount,
			"elapsed_ms": res.Elapsed.Milliseconds(),
		}
		if res.Err != nil {
			fields["error"] = res.Err.Error()
		}
		if res.Solved {
			log.WithFields(fields).Info("puzzle solved")
		} else {
			log.WithFields(fields).Warn("puzzle did not solve")
		}

		if res.board != nil {
			if err := taai.WriteSolution(out, res.board, res.NodeCount, res.Elapsed.Seconds()); err != nil {
				return results, fmt.Errorf("batch: writing solution %d: %w", i, err)
			}
			// spec.md's batch output format calls for a blank separator line
			// between puzzles.
			if i < len(puzzles)-1 {
				if _, err := fmt.Fprintln(out); err != nil {
					return results, fmt.Errorf("batch: writing separator after solution %d: %w", i, err)
				}
			}
		}

		if ctx.Err() != nil {
			return results, ctx.Err()
		}
	}
	return results, nil
}

func solveOne(ctx context.Context, cfg Config, index int, puzzle *nonogram.Puzzle) Result {
	start := time.Now()

	cache := zobrist.NewCache(zobrist.NewTable(cfg.ZobristSeed), cfg.CacheCapacity)
	engine := propagate.NewEngine(cache)

	board := nonogram.NewBoard(puzzle)
	solver := search.NewSolver(engine)
	solver.NodeLimit = cfg.LightNodeLimit

	solved, err := solver.SolveFirst(ctx, board)
	if err == search.ErrNodeLimitExceeded {
		board = nonogram.NewBoard(puzzle)
		solver = search.NewSolver(engine)
		solver.NodeLimit = cfg.HeavyNodeLimit
		solved, err = solver.SolveFirst(ctx, board)
	}

	return Result{
		Index:     index,
		Solved:    solved,
		NodeCount: solver.NodeCount,
		Elapsed:   time.Since(start),
		Err:       err,
		board:     board,
	}
}
