package slots

import (
	"testing"

	"github.com/hupe1980/graphmaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_DefaultsAndSet(t *testing.T) {
	u := graphmaps.New()
	items, err := u.AddMany(3)
	require.NoError(t, err)

	tbl := New(u, 7)
	for _, it := range items {
		assert.Equal(t, 7, tbl.Get(it))
	}

	tbl.Set(items[1], 42)
	assert.Equal(t, 42, tbl.Get(items[1]))
	assert.Equal(t, 7, tbl.Get(items[0]))

	tbl.Reset(items[1])
	assert.Equal(t, 7, tbl.Get(items[1]))
}

func TestTable_GrowAcrossSegments(t *testing.T) {
	u := graphmaps.New()
	tbl := New(u, -1)

	var last graphmaps.Item
	for range 3*segmentSize + 5 {
		last = u.Add()
		tbl.Grow(last)
	}
	assert.Len(t, tbl.segments, 4)
	assert.Equal(t, -1, tbl.Get(last))

	p := tbl.Ptr(0)
	*p = 11
	// Growing further must not move existing segments.
	for range segmentSize {
		tbl.Grow(u.Add())
	}
	assert.Same(t, p, tbl.Ptr(0))
	assert.Equal(t, 11, tbl.Get(0))
}

func TestTable_DeadItemPanics(t *testing.T) {
	u := graphmaps.New()
	a := u.Add()
	tbl := New(u, "x")

	require.NoError(t, u.Erase(a))
	assert.Panics(t, func() { tbl.Get(a) })
	assert.Panics(t, func() { tbl.Get(graphmaps.Invalid) })
}

func TestTable_BuildAndClear(t *testing.T) {
	u := graphmaps.New()
	_, err := u.AddMany(4)
	require.NoError(t, err)

	tbl := New(u, 1)
	tbl.Set(2, 5)

	tbl.Build()
	assert.Equal(t, 1, tbl.Get(2))

	tbl.Clear()
	assert.Empty(t, tbl.segments)
	assert.Equal(t, 1, tbl.Default())
}
