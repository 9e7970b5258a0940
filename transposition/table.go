package transposition

import (
	"math"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
)

type Bound uint8

const (
	Exact Bound = iota
	Lower       // value is at least the stored value
	Upper       // value is at most the stored value
)

// Unlimited marks an entry whose value does not depend on search depth,
// e.g. a subtree that was searched to its terminal leaves.
const Unlimited = math.MaxInt32

// entrySize is a rough per-entry cost of a map slot, used to size the table.
const entrySize = 64

type Entry struct {
	Value int64
	Depth int
	Bound Bound
}

type Stats struct {
	Lookups  uint64
	Hits     uint64
	Stores   uint64
	Rejected uint64
	Entries  int
}

// Table memoizes search results by position key. It is not safe for
// concurrent use; every engine owns its own table.
type Table[K comparable] struct {
	entries map[K]Entry
	limit   int

	// Near-depth band: a shallower entry still resolves a query when
	// bandLo < depth < bandHi and depth <= entry.Depth+bandSlack.
	bandSlack int
	bandLo    int
	bandHi    int

	lookups  atomic.Uint64
	hits     atomic.Uint64
	stores   atomic.Uint64
	rejected atomic.Uint64
}

type Option func(c *config)

type config struct {
	slack, lo, hi int
	fraction      float64
	limit         int
}

// WithNearDepthBand trusts entries up to slack plies shallower than the
// request for requests strictly between lo and hi. This trades exactness for
// hit rate.
func WithNearDepthBand(slack, lo, hi int) Option {
	return func(c *config) {
		if slack > 0 && lo < hi {
			c.slack, c.lo, c.hi = slack, lo, hi
		}
	}
}

// WithMemoryFraction caps the table at a fraction of total system memory.
func WithMemoryFraction(fraction float64) Option {
	return func(c *config) {
		if fraction > 0 && fraction <= 1 {
			c.fraction = fraction
		}
	}
}

// WithLimit caps the table at a fixed number of entries.
func WithLimit(entries int) Option {
	return func(c *config) {
		if entries > 0 {
			c.limit = entries
		}
	}
}

func New[K comparable](options ...Option) *Table[K] {
	c := &config{}
	for _, option := range options {
		option(c)
	}

	limit := c.limit
	if c.fraction > 0 {
		total := memory.TotalMemory()
		byMemory := int(c.fraction * float64(total) / entrySize)
		if limit == 0 || byMemory < limit {
			limit = byMemory
		}
		log.Debug().
			Uint64("total-system-memory-bytes", total).
			Int("max-entries", limit).
			Msg("transposition-table-size")
	}

	return &Table[K]{
		entries:   map[K]Entry{},
		limit:     limit,
		bandSlack: c.slack,
		bandLo:    c.lo,
		bandHi:    c.hi,
	}
}

func (t *Table[K]) usable(e Entry, depth int) bool {
	if e.Depth >= depth {
		return true
	}
	return t.bandSlack > 0 && depth > t.bandLo && depth < t.bandHi && depth <= e.Depth+t.bandSlack
}

// Lookup returns an exact value searched at least as deep as depth.
func (t *Table[K]) Lookup(key K, depth int) (int64, bool) {
	e, ok := t.Probe(key, depth)
	if !ok || e.Bound != Exact {
		return 0, false
	}
	return e.Value, true
}

// Probe returns the entry for key if it is deep enough to be trusted at
// depth, whatever its bound.
func (t *Table[K]) Probe(key K, depth int) (Entry, bool) {
	t.lookups.Add(1)
	e, ok := t.entries[key]
	if !ok || !t.usable(e, depth) {
		return Entry{}, false
	}
	t.hits.Add(1)
	return e, true
}

// Hint returns any stored value for key. It is only fit for move ordering.
func (t *Table[K]) Hint(key K) (int64, bool) {
	e, ok := t.entries[key]
	return e.Value, ok
}

func (t *Table[K]) Store(key K, value int64, depth int) {
	t.StoreBound(key, value, depth, Exact)
}

// StoreBound keeps the deepest known answer for key. A same-depth exact
// value replaces a bound.
func (t *Table[K]) StoreBound(key K, value int64, depth int, bound Bound) {
	old, ok := t.entries[key]
	switch {
	case !ok && t.limit > 0 && len(t.entries) >= t.limit:
		t.rejected.Add(1)
		return
	case ok && depth < old.Depth:
		t.rejected.Add(1)
		return
	case ok && depth == old.Depth && old.Bound == Exact && bound != Exact:
		t.rejected.Add(1)
		return
	}
	t.entries[key] = Entry{Value: value, Depth: depth, Bound: bound}
	t.stores.Add(1)
}

func (t *Table[K]) Len() int {
	return len(t.entries)
}

// Full reports whether the table has stopped taking new keys.
func (t *Table[K]) Full() bool {
	return t.limit > 0 && len(t.entries) >= t.limit
}

func (t *Table[K]) Reset() {
	clear(t.entries)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.stores.Store(0)
	t.rejected.Store(0)
}

func (t *Table[K]) Stats() Stats {
	return Stats{
		Lookups:  t.lookups.Load(),
		Hits:     t.hits.Load(),
		Stores:   t.stores.Load(),
		Rejected: t.rejected.Load(),
		Entries:  len(t.entries),
	}
}
