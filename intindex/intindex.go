// Package intindex stores a non-negative int for every item of a universe
// and enumerates the items holding a given value in O(1) per item.
//
// Every value owns an intrusive doubly linked list threaded through the
// per-item slots. A sparse head table indexed by value points at the most
// recently set item of each list; trailing empty entries are trimmed so
// Size reports the largest value in use plus one.
//
// Negative values are allowed and mean "not indexed": such items are never
// linked and no iterator reaches them.
package intindex

import (
	"context"
	"iter"

	"github.com/hupe1980/graphmaps"
	"github.com/hupe1980/graphmaps/internal/slots"
)

type node struct {
	prev, next graphmaps.Item
	value      int
}

// Map is an iterable int map over the items of a universe.
type Map struct {
	u     *graphmaps.Universe
	nodes *slots.Table[node]
	heads []graphmaps.Item

	sub    *graphmaps.Subscription
	logger *graphmaps.Logger
}

// New creates a map holding def for every live item of u. Items added
// later also receive def. Pass -1 to leave items unindexed until Set.
func New(u *graphmaps.Universe, def int) *Map {
	m := &Map{
		u: u,
		nodes: slots.New(u, node{
			prev:  graphmaps.Invalid,
			next:  graphmaps.Invalid,
			value: def,
		}),
		logger: u.Logger().WithIndex("intindex"),
	}
	m.laceAll()
	m.sub = u.Attach((*observer)(m))
	return m
}

// Close detaches the map from its universe.
func (m *Map) Close() {
	m.sub.Detach()
}

// Size returns one more than the largest value currently held by an
// item, or 0 if no item is indexed.
func (m *Map) Size() int {
	return len(m.heads)
}

// Get returns the value of a live item.
func (m *Map) Get(item graphmaps.Item) int {
	return m.nodes.Ptr(item).value
}

// Set assigns value to item and makes it the head of its bucket.
func (m *Map) Set(item graphmaps.Item, value int) {
	m.unlace(item)
	m.nodes.Ptr(item).value = value
	m.lace(item)
}

// Adjust adds delta to the value of item and returns the new value.
func (m *Map) Adjust(item graphmaps.Item, delta int) int {
	value := m.Get(item) + delta
	m.Set(item, value)
	return value
}

// Items iterates the items holding value, most recently set first.
//
// The successor is read before an item is yielded, so Set on the yielded
// item (to any value) is safe. Items set to value during the walk are
// prepended and not visited. Any other mutation of the map invalidates the
// iteration.
func (m *Map) Items(value int) iter.Seq[graphmaps.Item] {
	return func(yield func(graphmaps.Item) bool) {
		if value < 0 || value >= len(m.heads) {
			return
		}
		for item := m.heads[value]; item != graphmaps.Invalid; {
			next := m.nodes.Ptr(item).next
			if !yield(item) {
				return
			}
			item = next
		}
	}
}

// Head returns the most recently set item holding value, or
// graphmaps.Invalid.
func (m *Map) Head(value int) graphmaps.Item {
	if value < 0 || value >= len(m.heads) {
		return graphmaps.Invalid
	}
	return m.heads[value]
}

// Collect returns the items holding value as a set.
func (m *Map) Collect(value int) *graphmaps.ItemSet {
	return graphmaps.CollectItems(m.Items(value))
}

func (m *Map) unlace(item graphmaps.Item) {
	n := m.nodes.Ptr(item)
	if n.value < 0 {
		return
	}
	if n.prev != graphmaps.Invalid {
		m.nodes.Ptr(n.prev).next = n.next
	} else {
		m.heads[n.value] = n.next
	}
	if n.next != graphmaps.Invalid {
		m.nodes.Ptr(n.next).prev = n.prev
	}
	n.prev, n.next = graphmaps.Invalid, graphmaps.Invalid
	for len(m.heads) > 0 && m.heads[len(m.heads)-1] == graphmaps.Invalid {
		m.heads = m.heads[:len(m.heads)-1]
	}
}

func (m *Map) lace(item graphmaps.Item) {
	n := m.nodes.Ptr(item)
	if n.value < 0 {
		return
	}
	for len(m.heads) <= n.value {
		m.heads = append(m.heads, graphmaps.Invalid)
	}
	n.prev = graphmaps.Invalid
	n.next = m.heads[n.value]
	if n.next != graphmaps.Invalid {
		m.nodes.Ptr(n.next).prev = item
	}
	m.heads[n.value] = item
}

func (m *Map) laceAll() {
	if m.nodes.Default().value < 0 {
		return
	}
	for item := range m.u.All() {
		m.lace(item)
	}
}

type observer Map

func (o *observer) OnAdd(item graphmaps.Item) {
	m := (*Map)(o)
	m.nodes.Grow(item)
	m.lace(item)
}

func (o *observer) OnAddMany(items []graphmaps.Item) {
	for _, item := range items {
		o.OnAdd(item)
	}
}

func (o *observer) OnErase(item graphmaps.Item) {
	m := (*Map)(o)
	m.unlace(item)
	m.nodes.Reset(item)
}

func (o *observer) OnEraseMany(items []graphmaps.Item) {
	for _, item := range items {
		o.OnErase(item)
	}
}

func (o *observer) OnBuild() {
	m := (*Map)(o)
	m.heads = m.heads[:0]
	m.nodes.Build()
	m.laceAll()
	m.logger.LogBuild(context.Background(), m.u.Len())
}

func (o *observer) OnClear() {
	m := (*Map)(o)
	m.heads = m.heads[:0]
	m.nodes.Clear()
	m.logger.LogClear(context.Background(), m.u.Len())
}
