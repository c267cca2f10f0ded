// Package boolindex stores a bool for every item of a universe and can
// enumerate the true items and the false items without scanning.
//
// All items live in one array split by a separator: array[:sep] hold true,
// array[sep:] hold false. Changing a value swaps the item with the first
// slot of the other region and moves the separator, so Get, Set, SetAll and
// the counts are O(1).
package boolindex

import (
	"context"
	"iter"

	"github.com/hupe1980/graphmaps"
	"github.com/hupe1980/graphmaps/internal/slots"
)

// Map is an iterable bool map over the items of a universe.
type Map struct {
	u     *graphmaps.Universe
	pos   *slots.Table[int]
	array []graphmaps.Item
	sep   int

	sub    *graphmaps.Subscription
	logger *graphmaps.Logger
}

// New creates a map holding def for every live item of u. Items added
// later start as false.
func New(u *graphmaps.Universe, def bool) *Map {
	m := &Map{
		u:      u,
		pos:    slots.New(u, -1),
		logger: u.Logger().WithIndex("boolindex"),
	}
	m.scan()
	if def {
		m.sep = len(m.array)
	}
	m.sub = u.Attach((*observer)(m))
	return m
}

// Close detaches the map from its universe.
func (m *Map) Close() {
	m.sub.Detach()
}

// Get returns the value of a live item.
func (m *Map) Get(item graphmaps.Item) bool {
	return m.pos.Get(item) < m.sep
}

// Set assigns value to item.
func (m *Map) Set(item graphmaps.Item, value bool) {
	pos := m.pos.Get(item)
	if value {
		if pos < m.sep {
			return
		}
		m.place(item, pos, m.sep)
		m.sep++
	} else {
		if pos >= m.sep {
			return
		}
		m.sep--
		m.place(item, pos, m.sep)
	}
}

// place moves item from pos to slot, sending the item at slot to pos.
func (m *Map) place(item graphmaps.Item, pos, slot int) {
	other := m.array[slot]
	m.array[slot] = item
	m.pos.Set(item, slot)
	m.array[pos] = other
	m.pos.Set(other, pos)
}

// SetAll assigns value to every item. Only the separator moves.
func (m *Map) SetAll(value bool) {
	if value {
		m.sep = len(m.array)
	} else {
		m.sep = 0
	}
}

// TrueCount returns the number of items holding true.
func (m *Map) TrueCount() int {
	return m.sep
}

// FalseCount returns the number of items holding false.
func (m *Map) FalseCount() int {
	return len(m.array) - m.sep
}

// True iterates the items holding true.
func (m *Map) True() iter.Seq[graphmaps.Item] {
	return m.Items(true)
}

// False iterates the items holding false.
func (m *Map) False() iter.Seq[graphmaps.Item] {
	return m.Items(false)
}

// Items iterates the items holding value, from the end of its region
// toward the start.
//
// Set on the item just yielded is safe: a flipped item leaves the region
// and the item swapped into its slot is still visited. Any other mutation
// of the map invalidates the iteration.
func (m *Map) Items(value bool) iter.Seq[graphmaps.Item] {
	if value {
		return func(yield func(graphmaps.Item) bool) {
			// Flipping a true item swaps it with the last true item, which
			// was already visited.
			for pos := m.sep - 1; pos >= 0; pos = min(pos, m.sep) - 1 {
				if !yield(m.array[pos]) {
					return
				}
			}
		}
	}
	return func(yield func(graphmaps.Item) bool) {
		for pos := len(m.array) - 1; pos >= m.sep; {
			item := m.array[pos]
			if !yield(item) {
				return
			}
			// A flipped false item is replaced by the first false item,
			// which has not been visited yet.
			if m.array[pos] == item {
				pos--
			}
		}
	}
}

// Collect returns the items holding value as a set.
func (m *Map) Collect(value bool) *graphmaps.ItemSet {
	s := graphmaps.NewItemSet()
	region := m.array[m.sep:]
	if value {
		region = m.array[:m.sep]
	}
	for _, item := range region {
		s.Add(item)
	}
	return s
}

func (m *Map) scan() {
	for item := range m.u.All() {
		m.push(item)
	}
}

func (m *Map) push(item graphmaps.Item) {
	m.pos.Set(item, len(m.array))
	m.array = append(m.array, item)
}

// remove drops item so that the freed slot is always the last of its
// region: a true item is first swapped to sep-1, then the region
// boundary is filled from the end of the array.
func (m *Map) remove(item graphmaps.Item) {
	pos := m.pos.Get(item)
	last := len(m.array) - 1
	if pos < m.sep {
		m.sep--
		boundary := m.array[m.sep]
		m.array[pos] = boundary
		m.pos.Set(boundary, pos)
		m.array[m.sep] = item
		pos = m.sep
	}
	tail := m.array[last]
	m.array[pos] = tail
	m.pos.Set(tail, pos)
	m.array = m.array[:last]
	m.pos.Reset(item)
}

type observer Map

func (o *observer) OnAdd(item graphmaps.Item) {
	m := (*Map)(o)
	m.pos.Grow(item)
	m.push(item)
}

func (o *observer) OnAddMany(items []graphmaps.Item) {
	for _, item := range items {
		o.OnAdd(item)
	}
}

func (o *observer) OnErase(item graphmaps.Item) {
	(*Map)(o).remove(item)
}

func (o *observer) OnEraseMany(items []graphmaps.Item) {
	for _, item := range items {
		o.OnErase(item)
	}
}

func (o *observer) OnBuild() {
	m := (*Map)(o)
	m.pos.Build()
	m.array = m.array[:0]
	m.scan()
	m.sep = 0
	m.logger.LogBuild(context.Background(), len(m.array))
}

func (o *observer) OnClear() {
	m := (*Map)(o)
	dropped := len(m.array)
	m.array = m.array[:0]
	m.sep = 0
	m.pos.Clear()
	m.logger.LogClear(context.Background(), dropped)
}
