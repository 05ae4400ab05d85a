// Package propagate drives per-line DP to a fixpoint over a Board, using a
// work queue to re-solve only lines that could have changed.
package propagate

import (
	"github.com/rybkr/nonogram/internal/linedp"
	"github.com/rybkr/nonogram/internal/nonogram"
	"github.com/rybkr/nonogram/internal/zobrist"
)

// Status is the outcome of one propagation pass.
type Status int

const (
	// Solved means every cell on the board is now decided.
	Solved Status = iota
	// Stalled means the queue drained with the board still partially
	// unknown — no contradiction, but no further forcing is possible
	// without probing or search.
	Stalled
	// Contradiction means some line's clue cannot be satisfied given its
	// current known/filled masks.
	Contradiction
)

// Engine runs the propagation loop, memoizing line-DP results in a shared
// Zobrist cache (shared across an entire solve/search, not per-call).
type Engine struct {
	cache *zobrist.Cache
}

// NewEngine builds an Engine backed by cache.
func NewEngine(cache *zobrist.Cache) *Engine {
	return &Engine{cache: cache}
}

// Run pops line-ids from queue until it drains or a contradiction is found,
// re-solving each line's DP (via the Zobrist cache) and pushing any
// cross-lines whose masks changed as a result. The queue is empty when Run
// returns Solved or Stalled; on Contradiction it returns at once, leaving any
// ids still queued in the queue.
func (e *Engine) Run(board *nonogram.Board, queue *Queue) Status {
	for {
		id, ok := queue.Pop()
		if !ok {
			break
		}

		known, filled := board.Known(id), board.Filled(id)
		key := zobrist.Key{LineID: id, Known: known, Filled: filled}

		result, hit := e.cache.Get(key)
		if !hit {
			result = linedp.Solve(board.Puzzle().Clue(id), known, filled)
			e.cache.Put(key, result)
		}

		if result.Contradiction {
			return Contradiction
		}

		newBits := (result.MustFill | result.MustEmpty) &^ known
		if newBits == 0 {
			continue
		}

		for _, touched := range board.ApplyForced(id, result.MustFill, result.MustEmpty) {
			queue.Push(touched)
		}
	}

	if board.IsSolved() {
		return Solved
	}
	return Stalled
}
