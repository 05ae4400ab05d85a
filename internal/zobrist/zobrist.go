// Package zobrist provides incremental hashing and a fixed-capacity memo
// cache for line-DP results, keyed by (line-id, known-mask, filled-mask).
package zobrist

import (
	"math/rand"

	"github.com/rybkr/nonogram/internal/bitline"
	"github.com/rybkr/nonogram/internal/linedp"
)

// Table holds one 64-bit tag per (line-id, bit-position, plane), where plane
// distinguishes a decided-known bit from a decided-filled bit. A line's full
// hash is the XOR of the tags for every set bit in its known and filled
// masks — grounded on the fixed-seed, XOR-accumulated piece-square table
// idiom (see internal/zobrist's grounding entry in DESIGN.md).
type Table struct {
	known  [2 * bitline.N][bitline.N]uint64
	filled [2 * bitline.N][bitline.N]uint64
}

// NewTable builds a Table from a fixed seed, so that two runs of this
// program hash identical board states identically — required for the
// deterministic node-count law in spec.md §8.
func NewTable(seed int64) *Table {
	rng := rand.New(rand.NewSource(seed))
	t := &Table{}
	for id := 0; id < 2*bitline.N; id++ {
		for pos := 0; pos < bitline.N; pos++ {
			t.known[id][pos] = rng.Uint64()
			t.filled[id][pos] = rng.Uint64()
		}
	}
	return t
}

// Hash computes the incremental hash for one line's current state.
func (t *Table) Hash(id int, known, filled bitline.Mask) uint64 {
	var h uint64
	k := known
	for k != 0 {
		pos := bitline.TrailingZeros(k)
		k = bitline.Clear(k, pos)
		h ^= t.known[id][pos]
	}
	f := filled
	for f != 0 {
		pos := bitline.TrailingZeros(f)
		f = bitline.Clear(f, pos)
		h ^= t.filled[id][pos]
	}
	return h
}

// Key identifies one memoized line-DP call.
type Key struct {
	LineID int
	Known  bitline.Mask
	Filled bitline.Mask
}

// DefaultCapacity is the cache's slot count, sized generously above the
// number of distinct (line, mask-pair) states a single search realistically
// revisits (an Open Question decision recorded in DESIGN.md: fixed capacity,
// skip-caching rather than evict once full).
const DefaultCapacity = 1 << 22 // ~4M slots

const maxProbe = 8

type entry struct {
	valid  bool
	hash   uint64
	key    Key
	result linedp.Result
}

// Cache memoizes linedp.Solve results. It never grows past its initial
// capacity: once full, Put silently declines to insert new keys rather than
// evicting existing ones, trading memo-hit-rate for a flat memory ceiling.
type Cache struct {
	table    *Table
	entries  []entry
	capacity uint64
	count    int
}

// NewCache builds a Cache backed by table with room for capacity entries,
// rounded up to the next power of two.
func NewCache(table *Table, capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	size := uint64(1)
	for size < uint64(capacity) {
		size <<= 1
	}
	return &Cache{table: table, entries: make([]entry, size), capacity: size}
}

func (c *Cache) slot(h uint64) uint64 {
	return h & (c.capacity - 1)
}

// Get looks up the memoized result for key, probing up to maxProbe slots
// past the key's home slot before treating the lookup as a miss.
func (c *Cache) Get(key Key) (linedp.Result, bool) {
	h := c.table.Hash(key.LineID, key.Known, key.Filled)
	idx := c.slot(h)
	for p := 0; p < maxProbe; p++ {
		e := &c.entries[(idx+uint64(p))&(c.capacity-1)]
		if !e.valid {
			return linedp.Result{}, false
		}
		if e.hash == h && e.key == key {
			return e.result, true
		}
	}
	return linedp.Result{}, false
}

// Put memoizes result for key, probing for either a matching or empty slot.
// If no matching/empty slot is found within maxProbe steps (always the case
// once the table is full), the entry is silently dropped.
func (c *Cache) Put(key Key, result linedp.Result) {
	h := c.table.Hash(key.LineID, key.Known, key.Filled)
	idx := c.slot(h)
	for p := 0; p < maxProbe; p++ {
		e := &c.entries[(idx+uint64(p))&(c.capacity-1)]
		if !e.valid {
			*e = entry{valid: true, hash: h, key: key, result: result}
			c.count++
			return
		}
		if e.hash == h && e.key == key {
			e.result = result
			return
		}
	}
}

// Len returns the number of memoized entries currently stored.
func (c *Cache) Len() int { return c.count }
