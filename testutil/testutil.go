package testutil

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/hupe1980/graphmaps"
	"github.com/stretchr/testify/require"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Bool returns a pseudo-random boolean.
func (r *RNG) Bool() bool {
	return r.Intn(2) == 1
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// Skewed values produce long buckets, which is what the list-based
// indices need to be exercised against.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	// Compute normalization constant (harmonic number with exponent s)
	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	// Sample from uniform and use inverse transform
	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// Pick returns a uniformly chosen live item, or graphmaps.Invalid if the
// universe is empty.
func (r *RNG) Pick(u *graphmaps.Universe) graphmaps.Item {
	if u.Len() == 0 {
		return graphmaps.Invalid
	}
	items := u.Items()
	return items[r.Intn(len(items))]
}

// PickN returns up to n distinct live items.
func (r *RNG) PickN(u *graphmaps.Universe, n int) []graphmaps.Item {
	items := u.Items()
	r.mu.Lock()
	r.rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	r.mu.Unlock()
	return items[:min(n, len(items))]
}

// Op is a universe mutation chosen by Drive.
type Op int

const (
	OpAdd Op = iota
	OpAddMany
	OpErase
	OpEraseMany
	OpClear
	OpResize
	// OpMutate performs no universe change; the callback is expected to
	// mutate the index under test.
	OpMutate
)

// String returns the name of the operation.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpAddMany:
		return "add-many"
	case OpErase:
		return "erase"
	case OpEraseMany:
		return "erase-many"
	case OpClear:
		return "clear"
	case OpResize:
		return "resize"
	case OpMutate:
		return "mutate"
	default:
		return "unknown"
	}
}

// Drive applies steps random operations to u and calls after once per
// step. Roughly half the steps are OpMutate. Clear and Resize are rare so
// the universe has time to grow between rebuilds.
func Drive(t testing.TB, rng *RNG, u *graphmaps.Universe, steps int, after func(op Op)) {
	t.Helper()
	for range steps {
		op := rng.nextOp()
		switch op {
		case OpAdd:
			u.Add()
		case OpAddMany:
			_, err := u.AddMany(rng.Intn(4) + 1)
			require.NoError(t, err)
		case OpErase:
			if item := rng.Pick(u); item != graphmaps.Invalid {
				require.NoError(t, u.Erase(item))
			}
		case OpEraseMany:
			require.NoError(t, u.EraseMany(rng.PickN(u, rng.Intn(3)+1)))
		case OpClear:
			u.Clear()
		case OpResize:
			_, err := u.Resize(rng.Intn(16))
			require.NoError(t, err)
		}
		after(op)
	}
}

func (r *RNG) nextOp() Op {
	n := r.Intn(100)
	switch {
	case n < 20:
		return OpAdd
	case n < 28:
		return OpAddMany
	case n < 40:
		return OpErase
	case n < 46:
		return OpEraseMany
	case n < 47:
		return OpClear
	case n < 49:
		return OpResize
	default:
		return OpMutate
	}
}
