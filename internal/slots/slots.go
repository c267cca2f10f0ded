// Package slots implements the per-item backing storage of the indices.
//
// A Table holds one T per universe slot in fixed-size segments. Segments are
// never moved once allocated, so a pointer returned by Ptr stays valid until
// the next Clear or Build, which lets the intrusive list code patch
// neighbours in place.
//
// A Table is owned by exactly one index and is driven by that index's
// lifecycle hooks; it is never attached to the universe on its own.
package slots

import (
	"fmt"

	"github.com/hupe1980/graphmaps"
)

const (
	// segmentBits determines the size of each segment.
	// 10 bits = 1024 items per segment.
	segmentBits = 10
	segmentSize = 1 << segmentBits
	segmentMask = segmentSize - 1
)

type segment[T any] struct {
	items [segmentSize]T
}

// Table is a segmented per-item array with a default value.
type Table[T any] struct {
	u        *graphmaps.Universe
	def      T
	segments []*segment[T]
}

// New creates a table covering every live item of u, each holding def.
func New[T any](u *graphmaps.Universe, def T) *Table[T] {
	t := &Table[T]{u: u, def: def}
	t.Build()
	return t
}

// Default returns the value new slots are initialised with.
func (t *Table[T]) Default() T {
	return t.def
}

// Ptr returns a pointer to the slot of a live item.
//
// Reading or writing the slot of a dead item is a contract violation and
// panics.
func (t *Table[T]) Ptr(item graphmaps.Item) *T {
	if !t.u.Valid(item) {
		panic(fmt.Sprintf("slots: item %d is not live", int(item)))
	}
	idx := int(item)
	segIdx := idx >> segmentBits
	if segIdx >= len(t.segments) || t.segments[segIdx] == nil {
		panic(fmt.Sprintf("slots: item %d has no slot", idx))
	}
	return &t.segments[segIdx].items[idx&segmentMask]
}

// Get returns the value stored for item.
func (t *Table[T]) Get(item graphmaps.Item) T {
	return *t.Ptr(item)
}

// Set stores value for item.
func (t *Table[T]) Set(item graphmaps.Item, value T) {
	*t.Ptr(item) = value
}

// Grow allocates the slot of a newly added item and resets it to the
// default value.
func (t *Table[T]) Grow(item graphmaps.Item) {
	t.ensure(int(item))
	*t.Ptr(item) = t.def
}

// Reset returns the slot of item to the default value. Indices call it on
// erase so a recycled slot never leaks the previous item's state.
func (t *Table[T]) Reset(item graphmaps.Item) {
	*t.Ptr(item) = t.def
}

// Build discards every slot and re-creates one default slot per item the
// universe can currently address.
func (t *Table[T]) Build() {
	t.Clear()
	n := t.u.Cap()
	if n == 0 {
		return
	}
	t.ensure(n - 1)
}

// Clear releases every segment.
func (t *Table[T]) Clear() {
	clear(t.segments)
	t.segments = t.segments[:0]
}

func (t *Table[T]) ensure(idx int) {
	// Segments are always allocated contiguously, so only the tail grows.
	for segIdx := idx >> segmentBits; len(t.segments) <= segIdx; {
		seg := &segment[T]{}
		for j := range seg.items {
			seg.items[j] = t.def
		}
		t.segments = append(t.segments, seg)
	}
}
