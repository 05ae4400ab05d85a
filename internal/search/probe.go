package search

import (
	"github.com/rybkr/nonogram/internal/bitline"
	"github.com/rybkr/nonogram/internal/nonogram"
	"github.com/rybkr/nonogram/internal/propagate"
)

// ProbeOutcome is the result of one probe round: either the board's own
// line-DP contradicted outright, or some number of new cells were forced by
// the both-branches-agree merge below.
type ProbeOutcome struct {
	Contradiction bool
	Forced        bool // true iff at least one cell was newly forced this round
}

// Probe runs a single 2-SAT-style trial-assignment pass: it visits dirty
// cells (per dt) in turn, tries FILLED and EMPTY on a snapshot each, and
// either commits to whichever branch didn't contradict, or — if neither
// contradicted — commits to whatever the two branches agree on and leaves
// the cell itself Unknown. Probing stops and returns once the dependency
// table has nothing left to check, or a cell proves both branches
// contradictory (the board itself is then unsolvable).
func Probe(engine *propagate.Engine, board *nonogram.Board, dt *DependencyTable) ProbeOutcome {
	forcedAny := false

	for {
		row, col, ok := dt.NextDirty(board)
		if !ok {
			return ProbeOutcome{Forced: forcedAny}
		}

		base := board.Save()

		board.ForceCell(row, col, nonogram.Filled)
		qFilled := propagate.NewQueue()
		qFilled.Push(nonogram.RowID(row))
		qFilled.Push(nonogram.ColumnID(col))
		statusFilled := engine.Run(board, qFilled)
		filledSnap := board.Save()
		board.Restore(base)

		board.ForceCell(row, col, nonogram.Empty)
		qEmpty := propagate.NewQueue()
		qEmpty.Push(nonogram.RowID(row))
		qEmpty.Push(nonogram.ColumnID(col))
		statusEmpty := engine.Run(board, qEmpty)
		emptySnap := board.Save()
		board.Restore(base)

		switch {
		case statusFilled == propagate.Contradiction && statusEmpty == propagate.Contradiction:
			return ProbeOutcome{Contradiction: true}

		case statusFilled == propagate.Contradiction:
			board.Restore(emptySnap)
			dt.MarkTouchedDirty(changedLines(base, emptySnap))
			forcedAny = true

		case statusEmpty == propagate.Contradiction:
			board.Restore(filledSnap)
			dt.MarkTouchedDirty(changedLines(base, filledSnap))
			forcedAny = true

		default:
			dt.MarkClean(row, col)
			touched := applyAgreement(board, dt, base, filledSnap, emptySnap)
			if len(touched) > 0 {
				forcedAny = true
				q := propagate.NewQueue()
				for _, id := range touched {
					q.Push(id)
				}
				if engine.Run(board, q) == propagate.Contradiction {
					return ProbeOutcome{Contradiction: true}
				}
			}
		}
	}
}

// changedLines returns every line-id whose known mask differs between
// before and after.
func changedLines(before, after nonogram.Snapshot) []int {
	var ids []int
	for id := 0; id < 2*bitline.N; id++ {
		if before.KnownOf(id) != after.KnownOf(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// applyAgreement forces every cell both the FILLED-trial and EMPTY-trial
// branches agree on, starting board back from base, and returns every
// line-id newly touched as a result.
func applyAgreement(board *nonogram.Board, dt *DependencyTable, base, filledSnap, emptySnap nonogram.Snapshot) []int {
	var touchedAll []int
	for id := 0; id < 2*bitline.N; id++ {
		fFilled := filledSnap.KnownOf(id) & filledSnap.FilledOf(id)
		fEmpty := emptySnap.KnownOf(id) & emptySnap.FilledOf(id)
		agreeFilled := fFilled & fEmpty

		eFilled := filledSnap.KnownOf(id) &^ filledSnap.FilledOf(id)
		eEmpty := emptySnap.KnownOf(id) &^ emptySnap.FilledOf(id)
		agreeEmpty := eFilled & eEmpty

		newBits := (agreeFilled | agreeEmpty) &^ base.KnownOf(id)
		if newBits == 0 {
			continue
		}
		touched := board.ApplyForced(id, agreeFilled, agreeEmpty)
		dt.MarkTouchedDirty(touched)
		touchedAll = append(touchedAll, touched...)
	}
	return touchedAll
}
