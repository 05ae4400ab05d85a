package nonogram

import (
	"errors"
	"strings"

	"github.com/rybkr/nonogram/internal/bitline"
)

// CellState is the three-valued state of one cell.
type CellState int

const (
	Unknown CellState = iota
	Filled
	Empty
)

var (
	// ErrInvalidPosition is returned for out-of-range row/column indices.
	ErrInvalidPosition = errors.New("nonogram: position out of bounds")
	// ErrAlreadyDecided is returned by SetCell when the cell already holds
	// the opposite value — a genuine contradiction, not a no-op.
	ErrAlreadyDecided = errors.New("nonogram: cell already decided to the opposite value")
)

// Board is the mutable partial-assignment state for a Puzzle: 2N mask pairs
// (known, filled), stored once per row and once per column. The two views
// mirror each other — every mutation through SetCell/ForceCell updates both,
// so readers of either view always see a consistent cell (r,c).
type Board struct {
	puzzle *Puzzle

	known  [2 * bitline.N]bitline.Mask
	filled [2 * bitline.N]bitline.Mask

	filledCount int // number of cells decided Filled, for quick SOLVED checks
}

// NewBoard creates a Board for p with every cell Unknown.
func NewBoard(p *Puzzle) *Board {
	return &Board{puzzle: p}
}

// Puzzle returns the board's backing Puzzle.
func (b *Board) Puzzle() *Puzzle { return b.puzzle }

// Known returns the known-mask for the given line-id.
func (b *Board) Known(id int) bitline.Mask { return b.known[id] }

// Filled returns the filled-mask for the given line-id.
func (b *Board) Filled(id int) bitline.Mask { return b.filled[id] }

// Empty returns the empty-mask for the given line-id: known & ^filled.
func (b *Board) Empty(id int) bitline.Mask {
	return b.known[id] &^ b.filled[id]
}

// FilledCount returns the number of cells currently decided Filled.
func (b *Board) FilledCount() int { return b.filledCount }

// KnownCount returns the number of cells currently decided (either way),
// summed from the row view (summing both views would double count).
func (b *Board) KnownCount() int {
	n := 0
	for r := 0; r < bitline.N; r++ {
		n += bitline.PopCount(b.known[RowID(r)])
	}
	return n
}

// IsSolved reports whether every cell on the board is decided.
func (b *Board) IsSolved() bool {
	return b.KnownCount() == bitline.N*bitline.N
}

// CellState returns the state of cell (row, col).
func (b *Board) CellState(row, col int) CellState {
	rowID := RowID(row)
	if !bitline.Test(b.known[rowID], col) {
		return Unknown
	}
	if bitline.Test(b.filled[rowID], col) {
		return Filled
	}
	return Empty
}

// SetCell decides cell (row, col) to the given state (Filled or Empty),
// validated against the current state: setting a cell already decided to
// the opposite value returns ErrAlreadyDecided; setting it to its current
// value is a no-op. Use ForceCell on the hot propagation/search path where
// the caller has already proven the placement is consistent.
func (b *Board) SetCell(row, col int, state CellState) error {
	if row < 0 || row >= bitline.N || col < 0 || col >= bitline.N {
		return ErrInvalidPosition
	}
	if state != Filled && state != Empty {
		return errors.New("nonogram: SetCell state must be Filled or Empty")
	}

	cur := b.CellState(row, col)
	if cur == state {
		return nil
	}
	if cur != Unknown {
		return ErrAlreadyDecided
	}

	b.ForceCell(row, col, state)
	return nil
}

// ForceCell decides cell (row, col) without validation. Callers must already
// know the placement is consistent — propagation, probing and DFS all prove
// this before calling ForceCell, so re-validating here would repeat work on
// every one of the N² cells a solve decides.
func (b *Board) ForceCell(row, col int, state CellState) {
	rowID, colID := RowID(row), ColumnID(col)

	b.known[rowID] = bitline.Set(b.known[rowID], col)
	b.known[colID] = bitline.Set(b.known[colID], row)

	if state == Filled {
		b.filled[rowID] = bitline.Set(b.filled[rowID], col)
		b.filled[colID] = bitline.Set(b.filled[colID], row)
		b.filledCount++
	}
}

// ApplyForced writes mustFill/mustEmpty bits for line id into the board
// (updating the mirrored cross-line view for every newly-decided bit) and
// returns the set of cross-line-ids that now need re-solving. newBits is
// (mustFill|mustEmpty) &^ existing known bits — callers already computed
// this to decide whether there's anything to apply.
func (b *Board) ApplyForced(id int, mustFill, mustEmpty bitline.Mask) (touched []int) {
	newBits := (mustFill | mustEmpty) &^ b.known[id]
	for newBits != 0 {
		pos := bitline.TrailingZeros(newBits)
		newBits = bitline.Clear(newBits, pos)

		state := Empty
		if bitline.Test(mustFill, pos) {
			state = Filled
		}

		if IsColumn(id) {
			b.ForceCell(pos, LineIndex(id), state)
			touched = append(touched, RowID(pos))
		} else {
			b.ForceCell(LineIndex(id), pos, state)
			touched = append(touched, ColumnID(pos))
		}
	}
	return touched
}

// Snapshot is a compact copy of a Board's mutable state, used by DFS/probing
// to branch without cloning the Puzzle or any shared cache. Restoring from a
// Snapshot is O(N) mask-word copies, not a structural deep copy.
type Snapshot struct {
	known       [2 * bitline.N]bitline.Mask
	filled      [2 * bitline.N]bitline.Mask
	filledCount int
}

// KnownOf returns the known-mask for line id as captured in the snapshot.
func (s Snapshot) KnownOf(id int) bitline.Mask { return s.known[id] }

// FilledOf returns the filled-mask for line id as captured in the snapshot.
func (s Snapshot) FilledOf(id int) bitline.Mask { return s.filled[id] }

// Save captures the board's current state.
func (b *Board) Save() Snapshot {
	return Snapshot{known: b.known, filled: b.filled, filledCount: b.filledCount}
}

// Restore overwrites the board's state with a previously captured Snapshot.
func (b *Board) Restore(s Snapshot) {
	b.known = s.known
	b.filled = s.filled
	b.filledCount = s.filledCount
}

// Clone returns an independent Board with the same puzzle (shared, immutable)
// and an independent copy of the mutable mask state.
func (b *Board) Clone() *Board {
	clone := &Board{puzzle: b.puzzle}
	clone.Restore(b.Save())
	return clone
}

// String renders the board as N rows of N characters from {0, 1, -} where
// '-' marks an undecided cell — used for debugging, not the TAAI output
// format (see internal/taai for that).
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < bitline.N; row++ {
		for col := 0; col < bitline.N; col++ {
			switch b.CellState(row, col) {
			case Filled:
				sb.WriteByte('1')
			case Empty:
				sb.WriteByte('0')
			default:
				sb.WriteByte('-')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
