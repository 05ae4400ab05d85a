package nonogram

import (
	"errors"
	"testing"

	"github.com/rybkr/nonogram/internal/bitline"
)

func blankPuzzle(t *testing.T) *Puzzle {
	t.Helper()
	var clues [2 * bitline.N]Clue
	for i := range clues {
		c, err := NewClue(i, nil)
		if err != nil {
			t.Fatalf("NewClue: %v", err)
		}
		clues[i] = c
	}
	return NewPuzzle(clues)
}

func TestForceCellUpdatesBothMirroredViews(t *testing.T) {
	board := NewBoard(blankPuzzle(t))
	board.ForceCell(3, 7, Filled)

	if board.CellState(3, 7) != Filled {
		t.Fatalf("CellState(3,7) = %v, want Filled", board.CellState(3, 7))
	}
	if !bitline.Test(board.Known(RowID(3)), 7) {
		t.Errorf("row view: column 7 of row 3 not marked known")
	}
	if !bitline.Test(board.Filled(RowID(3)), 7) {
		t.Errorf("row view: column 7 of row 3 not marked filled")
	}
	if !bitline.Test(board.Known(ColumnID(7)), 3) {
		t.Errorf("column view: row 3 of column 7 not marked known")
	}
	if !bitline.Test(board.Filled(ColumnID(7)), 3) {
		t.Errorf("column view: row 3 of column 7 not marked filled")
	}
	if board.FilledCount() != 1 {
		t.Errorf("FilledCount() = %d, want 1", board.FilledCount())
	}
}

func TestForceCellEmptyDoesNotSetFilled(t *testing.T) {
	board := NewBoard(blankPuzzle(t))
	board.ForceCell(0, 0, Empty)

	if board.CellState(0, 0) != Empty {
		t.Fatalf("CellState(0,0) = %v, want Empty", board.CellState(0, 0))
	}
	if board.FilledCount() != 0 {
		t.Errorf("FilledCount() = %d, want 0", board.FilledCount())
	}
	empty := board.Empty(RowID(0))
	if !bitline.Test(empty, 0) {
		t.Errorf("Empty(row 0) should have bit 0 set")
	}
}

func TestSetCellRejectsContradiction(t *testing.T) {
	board := NewBoard(blankPuzzle(t))
	if err := board.SetCell(1, 1, Filled); err != nil {
		t.Fatalf("SetCell: %v", err)
	}
	if err := board.SetCell(1, 1, Empty); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("err = %v, want ErrAlreadyDecided", err)
	}
	// Setting the same value again is a no-op, not an error.
	if err := board.SetCell(1, 1, Filled); err != nil {
		t.Errorf("re-setting the same value should be a no-op, got %v", err)
	}
}

func TestSetCellRejectsOutOfBounds(t *testing.T) {
	board := NewBoard(blankPuzzle(t))
	if err := board.SetCell(-1, 0, Filled); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("err = %v, want ErrInvalidPosition", err)
	}
	if err := board.SetCell(0, bitline.N, Filled); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("err = %v, want ErrInvalidPosition", err)
	}
}

func TestApplyForcedEnqueuesCrossLines(t *testing.T) {
	board := NewBoard(blankPuzzle(t))
	mustFill := bitline.Set(0, 5)
	touched := board.ApplyForced(RowID(2), mustFill, 0)

	if len(touched) != 1 || touched[0] != ColumnID(5) {
		t.Fatalf("touched = %v, want [%d]", touched, ColumnID(5))
	}
	if board.CellState(2, 5) != Filled {
		t.Errorf("CellState(2,5) = %v, want Filled", board.CellState(2, 5))
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	board := NewBoard(blankPuzzle(t))
	board.ForceCell(0, 0, Filled)
	snap := board.Save()

	board.ForceCell(1, 1, Filled)
	if board.FilledCount() != 2 {
		t.Fatalf("FilledCount() = %d, want 2 before restore", board.FilledCount())
	}

	board.Restore(snap)
	if board.FilledCount() != 1 {
		t.Errorf("FilledCount() = %d, want 1 after restore", board.FilledCount())
	}
	if board.CellState(1, 1) != Unknown {
		t.Errorf("CellState(1,1) = %v, want Unknown after restore", board.CellState(1, 1))
	}
	if board.CellState(0, 0) != Filled {
		t.Errorf("CellState(0,0) = %v, want Filled after restore", board.CellState(0, 0))
	}
}

func TestCloneIsIndependent(t *testing.T) {
	board := NewBoard(blankPuzzle(t))
	board.ForceCell(4, 4, Filled)

	clone := board.Clone()
	clone.ForceCell(5, 5, Filled)

	if board.CellState(5, 5) != Unknown {
		t.Errorf("mutating a clone should not affect the original board")
	}
	if clone.CellState(4, 4) != Filled {
		t.Errorf("clone should start with the original's already-decided cells")
	}
}

func TestIsSolvedAndKnownCount(t *testing.T) {
	board := NewBoard(blankPuzzle(t))
	if board.IsSolved() {
		t.Fatalf("fresh board should not report solved")
	}
	for r := 0; r < bitline.N; r++ {
		for c := 0; c < bitline.N; c++ {
			board.ForceCell(r, c, Empty)
		}
	}
	if !board.IsSolved() {
		t.Errorf("fully-decided board should report solved")
	}
	if board.KnownCount() != bitline.N*bitline.N {
		t.Errorf("KnownCount() = %d, want %d", board.KnownCount(), bitline.N*bitline.N)
	}
}
