package testutil

import (
	"slices"
	"testing"

	"github.com/hupe1980/graphmaps"
	"github.com/stretchr/testify/assert"
)

func TestZipf(t *testing.T) {
	rng := NewRNG(4711)

	counts := make([]int, 8)
	for range 2000 {
		v := rng.Zipf(8, 1.5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 8)
		counts[v]++
	}
	assert.Greater(t, counts[0], counts[7])
	assert.Equal(t, 0, rng.Zipf(1, 1.5))
}

func TestReset(t *testing.T) {
	rng := NewRNG(42)
	first := []int{rng.Intn(1000), rng.Intn(1000), rng.Intn(1000)}
	rng.Reset()
	second := []int{rng.Intn(1000), rng.Intn(1000), rng.Intn(1000)}
	assert.Equal(t, first, second)
	assert.Equal(t, int64(42), rng.Seed())
}

func TestPick(t *testing.T) {
	rng := NewRNG(1)
	u := graphmaps.New()
	assert.Equal(t, graphmaps.Invalid, rng.Pick(u))
	assert.Empty(t, rng.PickN(u, 3))

	_, err := u.AddMany(5)
	assert.NoError(t, err)
	assert.True(t, u.Valid(rng.Pick(u)))

	picked := rng.PickN(u, 3)
	assert.Len(t, picked, 3)
	assert.Equal(t, 3, graphmaps.CollectItems(slices.Values(picked)).Len())
}

func TestDrive(t *testing.T) {
	rng := NewRNG(9)
	u := graphmaps.New()

	seen := make(map[Op]int)
	Drive(t, rng, u, 500, func(op Op) {
		seen[op]++
		assert.GreaterOrEqual(t, u.Len(), 0)
	})
	assert.Positive(t, seen[OpAdd])
	assert.Positive(t, seen[OpMutate])
	assert.Equal(t, "erase-many", OpEraseMany.String())
}
