// Package search drives a Board to a solution: constraint propagation and
// 2-SAT-style probing to a fixpoint, then DFS branching over whatever
// remains ambiguous.
package search

import (
	"context"
	"errors"
	"math"

	"github.com/rybkr/nonogram/internal/bitline"
	"github.com/rybkr/nonogram/internal/nonogram"
	"github.com/rybkr/nonogram/internal/propagate"
)

// ErrNodeLimitExceeded is returned by SolveFirst/VerifyTwo once the DFS node
// count passes NodeLimit, used by batch scheduling to escalate from a light
// to a heavy budget rather than let one hard puzzle run unbounded.
var ErrNodeLimitExceeded = errors.New("search: DFS node limit exceeded")

// Solver runs a full solve or a two-solution uniqueness check over a Board,
// sharing one propagation engine (and its Zobrist cache) across every trial
// and every DFS branch.
type Solver struct {
	engine    *propagate.Engine
	NodeCount int

	// NodeLimit caps the number of DFS nodes visited; 0 means unlimited.
	NodeLimit int
}

// NewSolver builds a Solver backed by engine.
func NewSolver(engine *propagate.Engine) *Solver {
	return &Solver{engine: engine}
}

// SolveFirst finds one solution for board, mutating it in place. It returns
// false (leaving the board at whatever state propagation reached) if the
// puzzle as currently constrained has no solution, and an error on context
// cancellation or once NodeLimit is exceeded.
func (s *Solver) SolveFirst(ctx context.Context, board *nonogram.Board) (bool, error) {
	if s.propagateToFixpoint(board, NewDependencyTable()) == propagate.Contradiction {
		return false, nil
	}
	// The root is always entered as a DFS node, so a board that propagation
	// alone solves still reports a node count of 1.
	return s.dfsFirst(ctx, board)
}

// VerifyTwo counts distinct solutions for board up to 2 (inclusive) and
// stops early, per spec.md's uniqueness-checking design: a puzzle's
// generator never needs to know whether there are 2 or 2 million solutions,
// only whether there is more than one.
func (s *Solver) VerifyTwo(ctx context.Context, board *nonogram.Board) (int, error) {
	count := 0
	if err := s.dfsCount(ctx, board, &count); err != nil {
		return count, err
	}
	return count, nil
}

// propagateToFixpoint alternates line-DP propagation and probing until
// neither makes further progress, returning Solved, Contradiction, or
// Stalled (board partially known, no contradiction, nothing left to force).
func (s *Solver) propagateToFixpoint(board *nonogram.Board, dt *DependencyTable) propagate.Status {
	q := propagate.NewQueue()
	q.PushAll()
	if s.engine.Run(board, q) == propagate.Contradiction {
		return propagate.Contradiction
	}

	for {
		if board.IsSolved() {
			return propagate.Solved
		}
		outcome := Probe(s.engine, board, dt)
		if outcome.Contradiction {
			return propagate.Contradiction
		}
		if !outcome.Forced {
			return propagate.Stalled
		}
	}
}

func (s *Solver) dfsFirst(ctx context.Context, board *nonogram.Board) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.NodeCount++
	if s.NodeLimit > 0 && s.NodeCount > s.NodeLimit {
		return false, ErrNodeLimitExceeded
	}

	row, col, ok := selectBranchCell(s.engine, board)
	if !ok {
		return board.IsSolved(), nil
	}

	base := board.Save()
	for _, state := range [...]nonogram.CellState{nonogram.Filled, nonogram.Empty} {
		board.Restore(base)
		board.ForceCell(row, col, state)

		status := s.propagateToFixpoint(board, NewDependencyTable())
		switch status {
		case propagate.Contradiction:
			continue
		case propagate.Solved:
			return true, nil
		}

		solved, err := s.dfsFirst(ctx, board)
		if err != nil {
			return false, err
		}
		if solved {
			return true, nil
		}
	}

	board.Restore(base)
	return false, nil
}

func (s *Solver) dfsCount(ctx context.Context, board *nonogram.Board, count *int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if *count >= 2 {
		return nil
	}
	s.NodeCount++
	if s.NodeLimit > 0 && s.NodeCount > s.NodeLimit {
		return ErrNodeLimitExceeded
	}

	row, col, ok := selectBranchCell(s.engine, board)
	if !ok {
		if board.IsSolved() {
			*count++
		}
		return nil
	}

	base := board.Save()
	for _, state := range [...]nonogram.CellState{nonogram.Filled, nonogram.Empty} {
		if *count >= 2 {
			break
		}
		board.Restore(base)
		board.ForceCell(row, col, state)

		status := s.propagateToFixpoint(board, NewDependencyTable())
		switch status {
		case propagate.Contradiction:
			continue
		case propagate.Solved:
			*count++
			continue
		}

		if err := s.dfsCount(ctx, board, count); err != nil {
			return err
		}
	}

	board.Restore(base)
	return nil
}

// selectBranchCell picks the Unknown cell whose two trial assignments are
// most informative, scored as min(A,B) + 1.85*ln(1+|A-B|) where A and B are
// the board's decided-cell count after propagating each trial — a cell
// where both branches teach the board a lot (high min) or where the two
// branches diverge sharply (high |A-B|) is a good place to branch. Ties are
// broken by scanning row-major and keeping the first maximum, matching
// original_source/search_solver.py's SquareToGo ordering.
func selectBranchCell(engine *propagate.Engine, board *nonogram.Board) (row, col int, ok bool) {
	bestScore := math.Inf(-1)
	found := false

	for r := 0; r < bitline.N; r++ {
		for c := 0; c < bitline.N; c++ {
			if board.CellState(r, c) != nonogram.Unknown {
				continue
			}
			a, okA := trialKnownCount(engine, board, r, c, nonogram.Filled)
			b, okB := trialKnownCount(engine, board, r, c, nonogram.Empty)
			if !okA || !okB {
				// One branch already contradicts — propagateToFixpoint will
				// discover this cheaply when it's actually branched on, so
				// this cell is trivially maximally informative.
				return r, c, true
			}
			diff := math.Abs(float64(a - b))
			score := math.Min(float64(a), float64(b)) + 1.85*math.Log(1+diff)
			if !found || score > bestScore {
				bestScore = score
				row, col = r, c
				found = true
			}
		}
	}
	return row, col, found
}

// trialKnownCount forces (row, col) to state on a snapshot, propagates, and
// reports the resulting decided-cell count and whether propagation avoided
// a contradiction, restoring board before returning.
func trialKnownCount(engine *propagate.Engine, board *nonogram.Board, row, col int, state nonogram.CellState) (int, bool) {
	snap := board.Save()
	board.ForceCell(row, col, state)

	q := propagate.NewQueue()
	q.Push(nonogram.RowID(row))
	q.Push(nonogram.ColumnID(col))
	status := engine.Run(board, q)

	count := board.KnownCount()
	board.Restore(snap)
	return count, status != propagate.Contradiction
}
