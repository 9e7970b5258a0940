package transposition

import (
	"testing"

	"github.com/matryer/is"
)

type position struct {
	cells [4]uint8
	turn  bool
}

func TestLookupDepth(t *testing.T) {
	is := is.New(t)
	tt := New[position]()
	x := position{cells: [4]uint8{1, 2, 0, 0}, turn: true}

	tt.Store(x, 10, 5)

	v, ok := tt.Lookup(x, 3)
	is.True(ok)
	is.Equal(v, int64(10))

	_, ok = tt.Lookup(x, 7)
	is.True(!ok) // too shallow to cut off

	v, ok = tt.Hint(x)
	is.True(ok)
	is.Equal(v, int64(10)) // still usable for ordering

	st := tt.Stats()
	is.Equal(st.Lookups, uint64(2))
	is.Equal(st.Hits, uint64(1))
	is.Equal(st.Entries, 1)
}

func TestNearDepthBand(t *testing.T) {
	is := is.New(t)
	tt := New[position](WithNearDepthBand(4, 4, 14))
	x := position{turn: true}

	tt.Store(x, -3, 5)

	v, ok := tt.Lookup(x, 7)
	is.True(ok)
	is.Equal(v, int64(-3))

	_, ok = tt.Lookup(x, 10)
	is.True(!ok) // beyond the slack

	tt.Store(x, -3, 12)
	_, ok = tt.Lookup(x, 15)
	is.True(!ok) // band ends below 14
}

func TestStoreKeepsDeepest(t *testing.T) {
	is := is.New(t)
	tt := New[position]()
	x := position{cells: [4]uint8{3}}

	tt.Store(x, 1, 6)
	tt.Store(x, 2, 4)
	v, _ := tt.Lookup(x, 6)
	is.Equal(v, int64(1)) // shallower store is ignored

	tt.Store(x, 5, 6)
	v, _ = tt.Lookup(x, 6)
	is.Equal(v, int64(5)) // equal depth overwrites

	tt.StoreBound(x, 9, 6, Lower)
	v, _ = tt.Lookup(x, 6)
	is.Equal(v, int64(5)) // a bound never replaces an exact value at the same depth

	tt.StoreBound(x, 9, 8, Lower)
	_, ok := tt.Lookup(x, 6)
	is.True(!ok) // bounds are not exact answers
	e, ok := tt.Probe(x, 6)
	is.True(ok)
	is.Equal(e.Bound, Lower)
	is.Equal(tt.Stats().Rejected, uint64(2))
}

func TestLimit(t *testing.T) {
	is := is.New(t)
	tt := New[position](WithLimit(2))

	tt.Store(position{cells: [4]uint8{1}}, 1, 1)
	tt.Store(position{cells: [4]uint8{2}}, 1, 1)
	tt.Store(position{cells: [4]uint8{3}}, 1, 1)
	is.Equal(tt.Len(), 2) // full table drops new keys
	is.True(tt.Full())

	tt.Store(position{cells: [4]uint8{1}}, 7, 3)
	v, ok := tt.Lookup(position{cells: [4]uint8{1}}, 3)
	is.True(ok)
	is.Equal(v, int64(7)) // existing keys can still deepen

	tt.Reset()
	is.Equal(tt.Len(), 0)
	is.Equal(tt.Stats().Stores, uint64(0))
	is.True(!tt.Full())
}

func TestMemoryFraction(t *testing.T) {
	is := is.New(t)
	tt := New[position](WithMemoryFraction(0.01))
	is.True(tt.limit > 0)
}
