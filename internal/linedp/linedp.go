// Package linedp computes, for a single line's clue and its current
// known/filled masks, the tightest cell-wise forced values consistent with
// every feasible placement of that clue's runs.
package linedp

import (
	"github.com/rybkr/nonogram/internal/bitline"
	"github.com/rybkr/nonogram/internal/nonogram"
)

// Result is the per-line inference outcome: either Contradiction, or a pair
// of force masks. MustFill and MustEmpty are always disjoint from each other
// and from the caller's input known mask's opposite state.
type Result struct {
	Contradiction bool
	MustFill      bitline.Mask
	MustEmpty     bitline.Mask
}

// Solve runs the line DP described in spec.md §4.1: a forward table over
// run-prefixes-by-cell-prefix and a mirror-image backward table, combined to
// find, for every cell, whether every feasible placement agrees on its
// value.
func Solve(clue nonogram.Clue, known, filled bitline.Mask) Result {
	k := clue.Count()

	// Fast path: an empty clue can only be satisfied by an all-blank line.
	if k == 0 {
		if filled != 0 {
			return Result{Contradiction: true}
		}
		return Result{MustEmpty: bitline.Full}
	}

	// Fast path: runs + mandatory gaps exactly fill the line — the placement
	// is unique and every cell's value follows directly from clue structure,
	// with no DP needed (spec.md §4.1's "edge cases" note).
	if total := clue.Sum(k) + (k - 1); total == bitline.N {
		return exactFit(clue, known, filled)
	}

	return generalSolve(clue, known, filled)
}

func isFilled(known, filled bitline.Mask, pos int) bool {
	return bitline.Test(known, pos) && bitline.Test(filled, pos)
}

func isEmptyDecided(known, filled bitline.Mask, pos int) bool {
	return bitline.Test(known, pos) && !bitline.Test(filled, pos)
}

// exactFit directly places each run at its only possible position, then
// verifies the result doesn't contradict the input (a decided-empty cell
// inside a run, or a decided-filled cell in a mandatory gap, is a genuine
// contradiction rather than a bug in this fast path).
func exactFit(clue nonogram.Clue, known, filled bitline.Mask) Result {
	var mustFill, mustEmpty bitline.Mask
	pos := 0
	for i := 1; i <= clue.Count(); i++ {
		length := clue.Run(i)
		for p := pos; p < pos+length; p++ {
			if isEmptyDecided(known, filled, p) {
				return Result{Contradiction: true}
			}
			mustFill = bitline.Set(mustFill, p)
		}
		pos += length
		if pos < bitline.N { // mandatory gap, unless this was the last run
			if isFilled(known, filled, pos) {
				return Result{Contradiction: true}
			}
			mustEmpty = bitline.Set(mustEmpty, pos)
			pos++
		}
	}
	for ; pos < bitline.N; pos++ {
		if isFilled(known, filled, pos) {
			return Result{Contradiction: true}
		}
		mustEmpty = bitline.Set(mustEmpty, pos)
	}
	return Result{MustFill: mustFill, MustEmpty: mustEmpty}
}

// forwardTable computes, for the given clue and masks, fwd[i][j] = true iff
// runs 1..i can be placed using only the first j cells (1-indexed), with any
// leftover cells up to j left blank. fwd has (k+1) rows and (N+1) columns.
// emptyPrefix[j] is the running count of decided-empty cells in 1..j, used to
// check "no decided-empty cell in this run's segment" in O(1).
func forwardTable(clue nonogram.Clue, known, filled bitline.Mask) (fwd [][]bool, emptyPrefix []int) {
	k := clue.Count()
	N := bitline.N

	fwd = make([][]bool, k+1)
	for i := range fwd {
		fwd[i] = make([]bool, N+1)
	}
	emptyPrefix = make([]int, N+1)
	for j := 1; j <= N; j++ {
		emptyPrefix[j] = emptyPrefix[j-1]
		if isEmptyDecided(known, filled, j-1) {
			emptyPrefix[j]++
		}
	}
	segmentHasEmpty := func(lo, hi int) bool { // 1-indexed, inclusive
		return emptyPrefix[hi]-emptyPrefix[lo-1] > 0
	}

	fwd[0][0] = true
	for j := 1; j <= N; j++ {
		fwd[0][j] = fwd[0][j-1] && !isFilled(known, filled, j-1)
	}

	for i := 1; i <= k; i++ {
		length := clue.Run(i)
		for j := 0; j <= N; j++ {
			v := false
			if j >= 1 && !isFilled(known, filled, j-1) && fwd[i][j-1] {
				v = true
			}
			if !v && j >= length {
				segStart := j - length + 1
				if !segmentHasEmpty(segStart, j) {
					if segStart == 1 {
						v = fwd[i-1][0]
					} else {
						gapPos := segStart - 1
						if !isFilled(known, filled, gapPos-1) && fwd[i-1][segStart-2] {
							v = true
						}
					}
				}
			}
			fwd[i][j] = v
		}
	}
	return fwd, emptyPrefix
}

// reverseClue returns clue with its run order reversed — run 1 becomes the
// last run and vice versa — used to build the backward table by reusing
// forwardTable on the mirror-image problem.
func reverseClue(clue nonogram.Clue) nonogram.Clue {
	k := clue.Count()
	lengths := make([]int, k)
	for i := 1; i <= k; i++ {
		lengths[k-i] = clue.Run(i)
	}
	rev, err := nonogram.NewClue(clue.ID(), lengths)
	if err != nil {
		// Reversing a feasible clue's run order cannot make it infeasible:
		// sum and gap count are unchanged.
		panic("linedp: reverseClue: " + err.Error())
	}
	return rev
}

// reverseMask mirrors an N-bit mask: bit i maps to bit N-1-i.
func reverseMask(m bitline.Mask) bitline.Mask {
	var out bitline.Mask
	for i := 0; i < bitline.N; i++ {
		if bitline.Test(m, i) {
			out = bitline.Set(out, bitline.N-1-i)
		}
	}
	return out
}

// generalSolve runs the full forward+backward DP and projects the result to
// per-cell force masks.
func generalSolve(clue nonogram.Clue, known, filled bitline.Mask) Result {
	k := clue.Count()
	N := bitline.N

	fwd, _ := forwardTable(clue, known, filled)
	if !fwd[k][N] {
		return Result{Contradiction: true}
	}

	revClue := reverseClue(clue)
	revKnown, revFilled := reverseMask(known), reverseMask(filled)
	bwdRev, _ := forwardTable(revClue, revKnown, revFilled)

	// suffixOK(t, m) reports whether runs t..k fit within the last m cells
	// of the original line, for t in [1, k+1] (t == k+1 means "no runs
	// left"). bwdRev[k-t+1][m] is exactly this, by the mirror-image
	// construction of bwdRev.
	suffixOK := func(t, m int) bool {
		if m < 0 {
			return false
		}
		return bwdRev[k-t+1][m]
	}

	var mustFill, mustEmpty bitline.Mask

	// canBeEmpty(c): does some feasible placement leave cell c (1-indexed)
	// uncovered by any run? Existential over the split point i between runs
	// placed strictly before c and runs placed strictly after c.
	for c := 1; c <= N; c++ {
		canEmpty := false
		for i := 0; i <= k; i++ {
			if fwd[i][c-1] && suffixOK(i+1, N-c) {
				canEmpty = true
				break
			}
		}
		if !canEmpty {
			mustFill = bitline.Set(mustFill, c-1)
		}
	}

	// coverable[c]: does some feasible placement cover cell c with some run?
	// Computed per-run via a difference-array sweep over that run's valid
	// end positions, so each run costs O(N) rather than O(N * length).
	coverable := make([]int, N+2)
	for i := 1; i <= k; i++ {
		length := clue.Run(i)
		for e := length; e <= N; e++ {
			segStart := e - length + 1
			if emptyInSegment(known, filled, segStart, e) {
				continue
			}
			var beforeOK bool
			if segStart == 1 {
				beforeOK = fwd[i-1][0]
			} else {
				beforeOK = !isFilled(known, filled, segStart-2) && fwd[i-1][segStart-2]
			}
			if !beforeOK {
				continue
			}
			// Cell e+1 (if any) separates run i from run i+1: it must not be
			// decided filled, and the remaining runs fit in cells e+2..N.
			if e < N {
				if isFilled(known, filled, e) || !suffixOK(i+1, N-e-1) {
					continue
				}
			} else if !suffixOK(i+1, 0) {
				continue
			}
			coverable[segStart]++
			coverable[e+1]--
		}
	}
	running := 0
	for c := 1; c <= N; c++ {
		running += coverable[c]
		if running == 0 {
			mustEmpty = bitline.Set(mustEmpty, c-1)
		}
	}

	return Result{MustFill: mustFill, MustEmpty: mustEmpty}
}

func emptyInSegment(known, filled bitline.Mask, lo, hi int) bool {
	for p := lo; p <= hi; p++ {
		if isEmptyDecided(known, filled, p-1) {
			return true
		}
	}
	return false
}
