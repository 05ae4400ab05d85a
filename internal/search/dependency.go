package search

import (
	"github.com/rybkr/nonogram/internal/bitline"
	"github.com/rybkr/nonogram/internal/nonogram"
)

// DependencyTable tracks which still-unknown cells are worth probing.
// Probing a cell is only useful if something about the board changed since
// it was last probed and found ambiguous — re-probing an unchanged cell
// reproduces the same two branches and wastes work. Grounded on
// original_source/dependency.py's point_tables, generalized here to one
// bitline.Mask of dirty columns per row (a row ↔ column grid fits the same
// bit-per-position representation Board already uses).
type DependencyTable struct {
	dirty [bitline.N]bitline.Mask
}

// NewDependencyTable returns a table with every cell marked dirty, so a
// fresh board probes every cell at least once.
func NewDependencyTable() *DependencyTable {
	dt := &DependencyTable{}
	for r := range dt.dirty {
		dt.dirty[r] = bitline.Full
	}
	return dt
}

// MarkRowDirty re-flags every column of row for probing.
func (dt *DependencyTable) MarkRowDirty(row int) {
	dt.dirty[row] = bitline.Full
}

// MarkColDirty re-flags every row of column col for probing.
func (dt *DependencyTable) MarkColDirty(col int) {
	for r := range dt.dirty {
		dt.dirty[r] = bitline.Set(dt.dirty[r], col)
	}
}

// MarkClean clears the dirty flag for one cell, typically after probing it
// and finding nothing new to force.
func (dt *DependencyTable) MarkClean(row, col int) {
	dt.dirty[row] = bitline.Clear(dt.dirty[row], col)
}

// IsDirty reports whether (row, col) is flagged for probing.
func (dt *DependencyTable) IsDirty(row, col int) bool {
	return bitline.Test(dt.dirty[row], col)
}

// MarkTouchedDirty re-flags probing candidates after propagation decides new
// cells: every touched line-id's entire row or column is marked dirty again,
// since a newly-decided cell anywhere in that line can change what's
// inferable elsewhere in it.
func (dt *DependencyTable) MarkTouchedDirty(touched []int) {
	for _, id := range touched {
		if nonogram.IsColumn(id) {
			dt.MarkColDirty(nonogram.LineIndex(id))
		} else {
			dt.MarkRowDirty(nonogram.LineIndex(id))
		}
	}
}

// NextDirty scans for the next dirty cell that is still Unknown on board,
// lazily cleaning any dirty flag it finds already decided. Scan order is
// row-major, matching original_source/dependency.py's iteration order.
func (dt *DependencyTable) NextDirty(board *nonogram.Board) (row, col int, ok bool) {
	for r := 0; r < bitline.N; r++ {
		for dt.dirty[r] != 0 {
			c := bitline.TrailingZeros(dt.dirty[r])
			if board.CellState(r, c) != nonogram.Unknown {
				dt.dirty[r] = bitline.Clear(dt.dirty[r], c)
				continue
			}
			return r, c, true
		}
	}
	return 0, 0, false
}
