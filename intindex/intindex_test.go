package intindex

import (
	"slices"
	"testing"

	"github.com/hupe1980/graphmaps"
	"github.com/hupe1980/graphmaps/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkBuckets verifies that every bucket holds exactly the items with
// that value, with consistent back links, and that the head table is
// trimmed.
func checkBuckets(t *testing.T, u *graphmaps.Universe, m *Map) {
	t.Helper()
	want := make(map[int][]graphmaps.Item)
	for item := range u.All() {
		if v := m.Get(item); v >= 0 {
			want[v] = append(want[v], item)
		}
	}
	for v := range m.Size() {
		prev := graphmaps.Invalid
		var got []graphmaps.Item
		for item := m.heads[v]; item != graphmaps.Invalid; item = m.nodes.Ptr(item).next {
			require.Equal(t, prev, m.nodes.Ptr(item).prev)
			prev = item
			got = append(got, item)
		}
		require.ElementsMatch(t, want[v], got, "bucket %d", v)
		require.Equal(t, len(got), m.Collect(v).Len())
		delete(want, v)
	}
	require.Empty(t, want, "values beyond Size()")
	if m.Size() > 0 {
		require.NotEqual(t, graphmaps.Invalid, m.heads[m.Size()-1])
	}
}

func TestMap_MostRecentFirst(t *testing.T) {
	u := graphmaps.New()
	items, err := u.AddMany(3)
	require.NoError(t, err)
	a, b, c := items[0], items[1], items[2]

	m := New(u, -1)
	defer m.Close()

	m.Set(a, 5)
	m.Set(b, 5)
	m.Set(c, 5)
	assert.Equal(t, []graphmaps.Item{c, b, a}, slices.Collect(m.Items(5)))

	m.Set(b, 7)
	assert.Equal(t, []graphmaps.Item{c, a}, slices.Collect(m.Items(5)))
	assert.Equal(t, []graphmaps.Item{b}, slices.Collect(m.Items(7)))
	assert.Equal(t, 8, m.Size())
	assert.Equal(t, c, m.Head(5))
	checkBuckets(t, u, m)
}

func TestMap_RoundTrip(t *testing.T) {
	u := graphmaps.New()
	items, err := u.AddMany(2)
	require.NoError(t, err)
	m := New(u, 0)
	defer m.Close()

	m.Set(items[0], 3)
	assert.Equal(t, 3, m.Get(items[0]))
	m.Set(items[1], 9)
	assert.Equal(t, 3, m.Get(items[0]))
	assert.Equal(t, 9, m.Get(items[1]))
}

func TestMap_SetIsIdempotent(t *testing.T) {
	u := graphmaps.New()
	items, err := u.AddMany(4)
	require.NoError(t, err)
	m := New(u, 1)
	defer m.Close()

	m.Set(items[2], 4)
	heads := slices.Clone(m.heads)
	nodes := make([]node, len(items))
	for i, it := range items {
		nodes[i] = m.nodes.Get(it)
	}

	m.Set(items[2], 4)
	assert.Equal(t, heads, m.heads)
	for i, it := range items {
		assert.Equal(t, nodes[i], m.nodes.Get(it))
	}
}

func TestMap_TrimsTrailingHeads(t *testing.T) {
	u := graphmaps.New()
	a := u.Add()
	m := New(u, -1)
	defer m.Close()

	m.Set(a, 10)
	assert.Equal(t, 11, m.Size())
	m.Set(a, 2)
	assert.Equal(t, 3, m.Size())
	m.Set(a, -1)
	assert.Equal(t, 0, m.Size())
	assert.Equal(t, -1, m.Get(a))
}

func TestMap_NegativeValuesAreNotIndexed(t *testing.T) {
	u := graphmaps.New()
	items, err := u.AddMany(3)
	require.NoError(t, err)
	m := New(u, -1)
	defer m.Close()

	assert.Equal(t, 0, m.Size())
	assert.Empty(t, slices.Collect(m.Items(-1)))
	assert.Empty(t, slices.Collect(m.Items(0)))
	assert.Equal(t, graphmaps.Invalid, m.Head(-3))

	m.Set(items[1], -5)
	assert.Equal(t, -5, m.Get(items[1]))
	assert.Equal(t, 0, m.Size())
	checkBuckets(t, u, m)
}

func TestMap_DefaultLacesAddedItems(t *testing.T) {
	u := graphmaps.New()
	a := u.Add()
	m := New(u, 2)
	defer m.Close()

	b := u.Add()
	more, err := u.AddMany(2)
	require.NoError(t, err)

	assert.Equal(t, 2, m.Get(b))
	assert.ElementsMatch(t, []graphmaps.Item{a, b, more[0], more[1]}, slices.Collect(m.Items(2)))

	// First Set on an added item must not disturb the bucket.
	m.Set(b, 0)
	assert.ElementsMatch(t, []graphmaps.Item{a, more[0], more[1]}, slices.Collect(m.Items(2)))
	checkBuckets(t, u, m)
}

func TestMap_Adjust(t *testing.T) {
	u := graphmaps.New()
	a := u.Add()
	m := New(u, 0)
	defer m.Close()

	assert.Equal(t, 1, m.Adjust(a, 1))
	assert.Equal(t, 4, m.Adjust(a, 3))
	assert.Equal(t, 3, m.Adjust(a, -1))
	assert.Equal(t, []graphmaps.Item{a}, slices.Collect(m.Items(3)))
}

func TestMap_EraseUnlaces(t *testing.T) {
	u := graphmaps.New()
	items, err := u.AddMany(5)
	require.NoError(t, err)
	m := New(u, 1)
	defer m.Close()

	require.NoError(t, u.Erase(items[2]))
	assert.Len(t, slices.Collect(m.Items(1)), 4)
	checkBuckets(t, u, m)

	require.NoError(t, u.EraseMany([]graphmaps.Item{items[0], items[4]}))
	assert.ElementsMatch(t, []graphmaps.Item{items[1], items[3]}, slices.Collect(m.Items(1)))
	checkBuckets(t, u, m)

	// A recycled slot starts from the default, not the erased state.
	m.Set(items[1], 6)
	reused := u.Add()
	assert.Equal(t, 1, m.Get(reused))
	checkBuckets(t, u, m)
}

func TestMap_SetDuringIteration(t *testing.T) {
	u := graphmaps.New()
	_, err := u.AddMany(4)
	require.NoError(t, err)
	m := New(u, 0)
	defer m.Close()

	var visited int
	for item := range m.Items(0) {
		visited++
		m.Set(item, 1)
	}
	assert.Equal(t, 4, visited)
	assert.Empty(t, slices.Collect(m.Items(0)))
	assert.Len(t, slices.Collect(m.Items(1)), 4)

	visited = 0
	for item := range m.Items(1) {
		visited++
		m.Set(item, 1)
	}
	assert.Equal(t, 4, visited)
	checkBuckets(t, u, m)
}

func TestMap_ClearAndResize(t *testing.T) {
	u := graphmaps.New()
	_, err := u.AddMany(3)
	require.NoError(t, err)
	m := New(u, 4)
	defer m.Close()

	u.Clear()
	assert.Equal(t, 0, m.Size())

	items, err := u.Resize(5)
	require.NoError(t, err)
	assert.Len(t, slices.Collect(m.Items(4)), len(items))
	checkBuckets(t, u, m)
}

func TestMap_RandomOperations(t *testing.T) {
	rng := testutil.NewRNG(23)
	u := graphmaps.New()
	m := New(u, -1)
	defer m.Close()

	testutil.Drive(t, rng, u, 3000, func(op testutil.Op) {
		if op == testutil.OpMutate {
			if item := rng.Pick(u); item != graphmaps.Invalid {
				m.Set(item, rng.Zipf(12, 1.2)-1)
			}
		}
		checkBuckets(t, u, m)
	})
}
