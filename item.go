package graphmaps

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Item is an opaque handle into a Universe. Items are totally ordered by
// their slot number, which is dense but recycled after erase.
type Item int32

// Invalid is the sentinel returned by lookups that miss.
const Invalid Item = -1

// Index returns the slot number of the item. It is the key every
// per-item table is addressed by.
func (it Item) Index() int { return int(it) }

// ItemSet is a compressed set of items backed by a 32-bit Roaring Bitmap.
// Indices return one from Collect so buckets of different indices can be
// combined with And/Or without walking the universe.
type ItemSet struct {
	rb *roaring.Bitmap
}

// NewItemSet creates a new empty set.
func NewItemSet() *ItemSet {
	return &ItemSet{
		rb: roaring.New(),
	}
}

// Add adds an item to the set. Invalid is ignored.
func (s *ItemSet) Add(item Item) {
	if item < 0 {
		return
	}
	s.rb.Add(uint32(item))
}

// Remove removes an item from the set.
func (s *ItemSet) Remove(item Item) {
	if item < 0 {
		return
	}
	s.rb.Remove(uint32(item))
}

// Contains checks if an item is in the set.
func (s *ItemSet) Contains(item Item) bool {
	if item < 0 {
		return false
	}
	return s.rb.Contains(uint32(item))
}

// IsEmpty returns true if the set is empty.
func (s *ItemSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Len returns the number of items in the set.
func (s *ItemSet) Len() int {
	return int(s.rb.GetCardinality())
}

// Clone returns a deep copy of the set.
func (s *ItemSet) Clone() *ItemSet {
	return &ItemSet{
		rb: s.rb.Clone(),
	}
}

// And computes the intersection of two sets in place.
func (s *ItemSet) And(other *ItemSet) {
	s.rb.And(other.rb)
}

// Or computes the union of two sets in place.
func (s *ItemSet) Or(other *ItemSet) {
	s.rb.Or(other.rb)
}

// AndNot removes every item of other from s.
func (s *ItemSet) AndNot(other *ItemSet) {
	s.rb.AndNot(other.rb)
}

// All returns an iterator over the set in ascending item order.
func (s *ItemSet) All() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(Item(it.Next())) {
				return
			}
		}
	}
}

// Items returns the members in ascending order.
func (s *ItemSet) Items() []Item {
	out := make([]Item, 0, s.rb.GetCardinality())
	for item := range s.All() {
		out = append(out, item)
	}
	return out
}

// CollectItems builds a set from an item sequence.
func CollectItems(seq iter.Seq[Item]) *ItemSet {
	s := NewItemSet()
	for item := range seq {
		s.Add(item)
	}
	return s
}
