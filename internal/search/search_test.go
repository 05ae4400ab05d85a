package search

import (
	"context"
	"errors"
	"testing"

	"github.com/rybkr/nonogram/internal/bitline"
	"github.com/rybkr/nonogram/internal/nonogram"
	"github.com/rybkr/nonogram/internal/propagate"
	"github.com/rybkr/nonogram/internal/zobrist"
)

func buildPuzzle(t *testing.T, columnClues, rowClues map[int][]int) *nonogram.Puzzle {
	var clues [2 * bitline.N]nonogram.Clue
	for c := 0; c < bitline.N; c++ {
		clue, err := nonogram.NewClue(nonogram.ColumnID(c), columnClues[c])
		if err != nil {
			t.Fatalf("column %d: %v", c, err)
		}
		clues[nonogram.ColumnID(c)] = clue
	}
	for r := 0; r < bitline.N; r++ {
		clue, err := nonogram.NewClue(nonogram.RowID(r), rowClues[r])
		if err != nil {
			t.Fatalf("row %d: %v", r, err)
		}
		clues[nonogram.RowID(r)] = clue
	}
	return nonogram.NewPuzzle(clues)
}

func newSolver() *Solver {
	engine := propagate.NewEngine(zobrist.NewCache(zobrist.NewTable(11), 1<<12))
	return NewSolver(engine)
}

func TestSolveFirstSolvesByPropagationAlone(t *testing.T) {
	puzzle := buildPuzzle(t, map[int][]int{}, map[int][]int{})
	board := nonogram.NewBoard(puzzle)

	solved, err := newSolver().SolveFirst(context.Background(), board)
	if err != nil {
		t.Fatalf("SolveFirst: %v", err)
	}
	if !solved {
		t.Fatalf("expected solved")
	}
	if !board.IsSolved() {
		t.Fatalf("board reports not solved")
	}
}

func ambiguousPuzzle(t *testing.T) *nonogram.Puzzle {
	columnClues := map[int][]int{0: {1}, 1: {1}}
	rowClues := map[int][]int{0: {1}, 1: {1}}
	return buildPuzzle(t, columnClues, rowClues)
}

func TestSolveFirstBranchesThroughAmbiguity(t *testing.T) {
	board := nonogram.NewBoard(ambiguousPuzzle(t))

	solved, err := newSolver().SolveFirst(context.Background(), board)
	if err != nil {
		t.Fatalf("SolveFirst: %v", err)
	}
	if !solved || !board.IsSolved() {
		t.Fatalf("expected a fully solved board, got solved=%v IsSolved=%v", solved, board.IsSolved())
	}

	// Either diagonal is a valid solution; exactly one of the two cells in
	// each affected row/column must be Filled.
	if (board.CellState(0, 0) == nonogram.Filled) == (board.CellState(0, 1) == nonogram.Filled) {
		t.Errorf("row 0 should have exactly one of its two candidate cells filled")
	}
}

func TestVerifyTwoFindsBothSolutionsOfAmbiguousPuzzle(t *testing.T) {
	board := nonogram.NewBoard(ambiguousPuzzle(t))

	count, err := newSolver().VerifyTwo(context.Background(), board)
	if err != nil {
		t.Fatalf("VerifyTwo: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestVerifyTwoFindsExactlyOneSolutionOfUniquePuzzle(t *testing.T) {
	puzzle := buildPuzzle(t, map[int][]int{}, map[int][]int{})
	board := nonogram.NewBoard(puzzle)

	count, err := newSolver().VerifyTwo(context.Background(), board)
	if err != nil {
		t.Fatalf("VerifyTwo: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestSolveFirstDetectsUnsolvablePuzzle(t *testing.T) {
	rowClues := map[int][]int{0: {3}}
	puzzle := buildPuzzle(t, map[int][]int{}, rowClues)
	board := nonogram.NewBoard(puzzle)

	solved, err := newSolver().SolveFirst(context.Background(), board)
	if err != nil {
		t.Fatalf("SolveFirst: %v", err)
	}
	if solved {
		t.Errorf("expected unsolvable puzzle to report solved=false")
	}
}

func TestSolveFirstRespectsNodeLimit(t *testing.T) {
	engine := propagate.NewEngine(zobrist.NewCache(zobrist.NewTable(13), 1<<12))
	solver := NewSolver(engine)
	solver.NodeLimit = 1

	// Two independent 2x2 ambiguous corners: the first branch settles one
	// corner, and the other needs a second DFS node, which exceeds a limit
	// of 1.
	columnClues := map[int][]int{0: {1}, 1: {1}, 3: {1}, 4: {1}}
	rowClues := map[int][]int{0: {1}, 1: {1}, 3: {1}, 4: {1}}
	board := nonogram.NewBoard(buildPuzzle(t, columnClues, rowClues))
	_, err := solver.SolveFirst(context.Background(), board)
	if solver.NodeCount <= 1 {
		t.Skip("branch decision solved the puzzle within the node budget")
	}
	if !errors.Is(err, ErrNodeLimitExceeded) {
		t.Errorf("err = %v, want ErrNodeLimitExceeded", err)
	}
}

func TestSolveFirstRespectsCancellation(t *testing.T) {
	board := nonogram.NewBoard(ambiguousPuzzle(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Propagation alone stalls on this puzzle (it needs DFS to finish), so
	// an already-cancelled context must surface as an error from the first
	// DFS node rather than silently completing.
	_, err := newSolver().SolveFirst(ctx, board)
	if err == nil {
		t.Errorf("expected cancellation error")
	}
}
