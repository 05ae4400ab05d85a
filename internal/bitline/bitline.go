// Package bitline implements fixed-width bitmask operations over a single
// Nonogram line (one row or one column). A puzzle side of N=25 fits every
// line in one machine word, so a Mask is a plain uint32 rather than a
// multi-word bitset.
package bitline

import "math/bits"

// N is the fixed puzzle side length. A single Mask covers exactly N bits;
// bit i corresponds to column i (row lines) or row i (column lines).
const N = 25

// Mask is an N-bit bitvector for one line.
type Mask uint32

// Full is the mask with all N bits set.
const Full Mask = (1 << N) - 1

// normalize clears any bits above N-1. Every operation below returns a
// normalized Mask; callers constructing a Mask from an external source
// (parsed input, a test literal) should call this once up front.
func normalize(m Mask) Mask {
	return m & Full
}

// Normalize masks m to N bits.
func Normalize(m Mask) Mask {
	return normalize(m)
}

// Bit returns the mask with only bit i set. Panics if i is out of [0, N).
func Bit(i int) Mask {
	if i < 0 || i >= N {
		panic("bitline: bit index out of range")
	}
	return Mask(1) << uint(i)
}

// Test reports whether bit i of m is set.
func Test(m Mask, i int) bool {
	return m&Bit(i) != 0
}

// Set returns m with bit i set.
func Set(m Mask, i int) Mask {
	return normalize(m | Bit(i))
}

// Clear returns m with bit i cleared.
func Clear(m Mask, i int) Mask {
	return normalize(m &^ Bit(i))
}

// ShiftLeft shifts m left by s positions, masking the result to N bits.
func ShiftLeft(m Mask, s int) Mask {
	if s <= 0 {
		return normalize(m)
	}
	if s >= N {
		return 0
	}
	return normalize(m << uint(s))
}

// ShiftRight shifts m right by s positions.
func ShiftRight(m Mask, s int) Mask {
	if s <= 0 {
		return normalize(m)
	}
	if s >= N {
		return 0
	}
	return normalize(m >> uint(s))
}

// Range returns a mask with bits [lo, hi] (inclusive, 0-indexed) set.
// Returns 0 if lo > hi.
func Range(lo, hi int) Mask {
	if lo > hi {
		return 0
	}
	width := hi - lo + 1
	var m Mask
	if width >= N {
		m = Full
	} else {
		m = (Mask(1) << uint(width)) - 1
	}
	return normalize(m << uint(lo))
}

// PopCount returns the number of set bits in m.
func PopCount(m Mask) int {
	return bits.OnesCount32(uint32(m))
}

// TrailingZeros returns the index of the lowest set bit in m, or N if m is 0.
func TrailingZeros(m Mask) int {
	tz := bits.TrailingZeros32(uint32(m))
	if tz > N {
		return N
	}
	return tz
}

// IsEmpty reports whether m has no bits set.
func IsEmpty(m Mask) bool {
	return m == 0
}
