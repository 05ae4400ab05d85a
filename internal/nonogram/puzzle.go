package nonogram

import (
	"fmt"

	"github.com/rybkr/nonogram/internal/bitline"
)

// Puzzle holds the immutable clue set for an N×N Nonogram. Line-ids follow
// the convention used throughout this module (and the original TAAI tooling
// it is grounded on): ids [0, N) are columns, ids [N, 2N) are rows, with row
// r at id N+r.
type Puzzle struct {
	lines [2 * bitline.N]Clue
}

// ColumnID returns the line-id for column c.
func ColumnID(c int) int { return c }

// RowID returns the line-id for row r.
func RowID(r int) int { return bitline.N + r }

// IsColumn reports whether a line-id refers to a column.
func IsColumn(id int) bool { return id < bitline.N }

// LineIndex returns the row or column index for a line-id (i.e. the inverse
// of RowID/ColumnID): for a column id it's the column number, for a row id
// it's the row number.
func LineIndex(id int) int {
	if IsColumn(id) {
		return id
	}
	return id - bitline.N
}

// NewPuzzle builds a Puzzle from 2N clues ordered columns-then-rows, matching
// the TAAI input convention.
func NewPuzzle(clues [2 * bitline.N]Clue) *Puzzle {
	return &Puzzle{lines: clues}
}

// Clue returns the clue for the given line-id.
func (p *Puzzle) Clue(id int) Clue {
	return p.lines[id]
}

// Column returns the clue for column c.
func (p *Puzzle) Column(c int) Clue {
	return p.lines[ColumnID(c)]
}

// Row returns the clue for row r.
func (p *Puzzle) Row(r int) Clue {
	return p.lines[RowID(r)]
}

// String renders the puzzle's clues for debugging.
func (p *Puzzle) String() string {
	return fmt.Sprintf("Puzzle{%d columns, %d rows}", bitline.N, bitline.N)
}
