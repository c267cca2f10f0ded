// Package valueindex stores a value of any totally ordered type for every
// item of a universe. It enumerates the items holding a given value, and
// the distinct values in use in ascending order.
//
// Items sharing a value form an intrusive doubly linked list through the
// per-item slots, newest first. The list heads live in a B-tree keyed by
// value with one entry per distinct value present; emptying a bucket
// removes its entry. Get and list maintenance are O(1), head lookup is
// O(log d) for d distinct values.
//
// Use intindex instead when values are small non-negative ints and
// ordered iteration over values is not needed.
package valueindex

import (
	"cmp"
	"context"
	"iter"

	"github.com/google/btree"
	"github.com/hupe1980/graphmaps"
	"github.com/hupe1980/graphmaps/internal/slots"
)

// degree of the head B-tree.
const degree = 16

type node[V any] struct {
	prev, next graphmaps.Item
	value      V
}

type bucket[V any] struct {
	value V
	head  graphmaps.Item
}

// Map is an iterable value map over the items of a universe.
type Map[V any] struct {
	u     *graphmaps.Universe
	nodes *slots.Table[node[V]]
	heads *btree.BTreeG[*bucket[V]]
	probe bucket[V]

	sub    *graphmaps.Subscription
	logger *graphmaps.Logger
}

// New creates a map holding def for every live item of u, ordered by the
// natural order of V. Items added later also receive def.
func New[V cmp.Ordered](u *graphmaps.Universe, def V) *Map[V] {
	return NewFunc(u, def, cmp.Compare[V])
}

// NewFunc is like New but orders values with compare, which must return a
// negative number, zero or a positive number like cmp.Compare.
func NewFunc[V any](u *graphmaps.Universe, def V, compare func(a, b V) int) *Map[V] {
	m := &Map[V]{
		u: u,
		nodes: slots.New(u, node[V]{
			prev:  graphmaps.Invalid,
			next:  graphmaps.Invalid,
			value: def,
		}),
		heads: btree.NewG[*bucket[V]](degree, func(a, b *bucket[V]) bool {
			return compare(a.value, b.value) < 0
		}),
		logger: u.Logger().WithIndex("valueindex"),
	}
	m.laceAll()
	m.sub = u.Attach((*observer[V])(m))
	return m
}

// Close detaches the map from its universe.
func (m *Map[V]) Close() {
	m.sub.Detach()
}

// Get returns the value of a live item.
func (m *Map[V]) Get(item graphmaps.Item) V {
	return m.nodes.Ptr(item).value
}

// Set assigns value to item and makes it the head of its bucket.
func (m *Map[V]) Set(item graphmaps.Item, value V) {
	m.unlace(item)
	m.nodes.Ptr(item).value = value
	m.lace(item)
}

// Distinct returns the number of distinct values in use.
func (m *Map[V]) Distinct() int {
	return m.heads.Len()
}

// Values iterates the distinct values in use in ascending order.
// The map must not be mutated during the iteration.
func (m *Map[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		m.heads.Ascend(func(b *bucket[V]) bool {
			return yield(b.value)
		})
	}
}

// Items iterates the items holding value, most recently set first.
//
// The successor is read before an item is yielded, so Set on the yielded
// item is safe. Any other mutation of the map invalidates the iteration.
func (m *Map[V]) Items(value V) iter.Seq[graphmaps.Item] {
	return func(yield func(graphmaps.Item) bool) {
		for item := m.Head(value); item != graphmaps.Invalid; {
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
func (m *Map[V]) Head(value V) graphmaps.Item {
	if b, ok := m.find(value); ok {
		return b.head
	}
	return graphmaps.Invalid
}

// Collect returns the items holding value as a set.
func (m *Map[V]) Collect(value V) *graphmaps.ItemSet {
	return graphmaps.CollectItems(m.Items(value))
}

func (m *Map[V]) find(value V) (*bucket[V], bool) {
	m.probe.value = value
	b, ok := m.heads.Get(&m.probe)
	var zero V
	m.probe.value = zero
	return b, ok
}

func (m *Map[V]) unlace(item graphmaps.Item) {
	n := m.nodes.Ptr(item)
	if n.prev != graphmaps.Invalid {
		m.nodes.Ptr(n.prev).next = n.next
	} else if b, ok := m.find(n.value); ok {
		if n.next != graphmaps.Invalid {
			b.head = n.next
		} else {
			m.heads.Delete(b)
		}
	}
	if n.next != graphmaps.Invalid {
		m.nodes.Ptr(n.next).prev = n.prev
	}
	n.prev, n.next = graphmaps.Invalid, graphmaps.Invalid
}

func (m *Map[V]) lace(item graphmaps.Item) {
	n := m.nodes.Ptr(item)
	n.prev = graphmaps.Invalid
	b, ok := m.find(n.value)
	if !ok {
		n.next = graphmaps.Invalid
		m.heads.ReplaceOrInsert(&bucket[V]{value: n.value, head: item})
		return
	}
	n.next = b.head
	if n.next != graphmaps.Invalid {
		m.nodes.Ptr(n.next).prev = item
	}
	b.head = item
}

func (m *Map[V]) laceAll() {
	for item := range m.u.All() {
		m.lace(item)
	}
}

type observer[V any] Map[V]

func (o *observer[V]) OnAdd(item graphmaps.Item) {
	m := (*Map[V])(o)
	m.nodes.Grow(item)
	m.lace(item)
}

func (o *observer[V]) OnAddMany(items []graphmaps.Item) {
	for _, item := range items {
		o.OnAdd(item)
	}
}

func (o *observer[V]) OnErase(item graphmaps.Item) {
	m := (*Map[V])(o)
	m.unlace(item)
	m.nodes.Reset(item)
}

func (o *observer[V]) OnEraseMany(items []graphmaps.Item) {
	for _, item := range items {
		o.OnErase(item)
	}
}

func (o *observer[V]) OnBuild() {
	m := (*Map[V])(o)
	m.heads.Clear(false)
	m.nodes.Build()
	m.laceAll()
	m.logger.LogBuild(context.Background(), m.u.Len())
}

func (o *observer[V]) OnClear() {
	m := (*Map[V])(o)
	m.heads.Clear(false)
	m.nodes.Clear()
	m.logger.LogClear(context.Background(), m.u.Len())
}
