package nonogram

import (
	"errors"
	"fmt"

	"github.com/rybkr/nonogram/internal/bitline"
)

// ErrInfeasibleClue is returned when a clue's run-lengths cannot fit in a
// line of length bitline.N: sum(runs) + (len(runs)-1) separators must not
// exceed N.
var ErrInfeasibleClue = errors.New("nonogram: clue infeasible for line length")

// Clue is the ordered sequence of run-lengths for one line (row or column).
// Runs are 1-indexed internally (prefix sums are computed against a leading
// zero) so that DP code can reference "the sum of the first i runs" without
// off-by-one juggling — mirroring original_source/puzzle.py's m_sum table.
type Clue struct {
	runs []int // runs[0] is unused; runs[1..count] are the run lengths
	sum  []int // sum[i] = runs[1] + ... + runs[i]
	id   int   // line-id: [0, N) columns, [N, 2N) rows
}

// NewClue builds a Clue from a slice of positive run-lengths and validates
// feasibility. An empty slice is a legal "all empty" clue.
func NewClue(id int, lengths []int) (Clue, error) {
	for _, r := range lengths {
		if r <= 0 {
			return Clue{}, fmt.Errorf("%w: run length must be positive, got %d", ErrInfeasibleClue, r)
		}
	}

	total := 0
	for _, r := range lengths {
		total += r
	}
	if len(lengths) > 0 {
		total += len(lengths) - 1
	}
	if total > bitline.N {
		return Clue{}, fmt.Errorf("%w: sum %d exceeds line length %d", ErrInfeasibleClue, total, bitline.N)
	}

	c := Clue{
		id:   id,
		runs: make([]int, len(lengths)+1),
		sum:  make([]int, len(lengths)+1),
	}
	acc := 0
	for i, r := range lengths {
		c.runs[i+1] = r
		acc += r
		c.sum[i+1] = acc
	}
	return c, nil
}

// Count returns the number of runs in the clue.
func (c Clue) Count() int {
	return len(c.runs) - 1
}

// Run returns the length of the i-th run, 1-indexed (1..Count()).
func (c Clue) Run(i int) int {
	return c.runs[i]
}

// Sum returns the cumulative sum of runs 1..i.
func (c Clue) Sum(i int) int {
	if i <= 0 {
		return 0
	}
	return c.sum[i]
}

// ID returns the clue's line-id.
func (c Clue) ID() int {
	return c.id
}

// Lengths returns the clue's run-lengths as a plain slice, useful for
// re-deriving clues from a solved board (the solvability law in spec.md §8).
func (c Clue) Lengths() []int {
	if len(c.runs) <= 1 {
		return nil
	}
	out := make([]int, len(c.runs)-1)
	copy(out, c.runs[1:])
	return out
}
