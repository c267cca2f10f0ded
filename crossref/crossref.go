// Package crossref is an invertible per-item value map: besides reading
// the value of an item it answers which item holds a value.
//
// The forward direction is a plain per-item slot. The reverse direction is
// an ordered multimap with one (value, item) entry per live item, kept in a
// B-tree. Entries of equal value keep their insertion order.
//
// Items carry no back pointer into the multimap, so Set and erase scan the
// entries sharing the old value. That is cheap when values are mostly
// unique, the intended use (e.g. a near-bijective label to item lookup).
// When many items share values, prefer valueindex.
package crossref

import (
	"cmp"
	"context"
	"iter"

	"github.com/google/btree"
	"github.com/hupe1980/graphmaps"
	"github.com/hupe1980/graphmaps/internal/slots"
)

const degree = 32

type entry[V any] struct {
	value V
	seq   uint64
	item  graphmaps.Item
}

// Map is a cross reference map over the items of a universe.
type Map[V any] struct {
	u       *graphmaps.Universe
	forward *slots.Table[V]
	reverse *btree.BTreeG[entry[V]]
	compare func(a, b V) int
	seq     uint64

	sub    *graphmaps.Subscription
	logger *graphmaps.Logger
}

// New creates a map holding def for every live item of u, ordered by the
// natural order of V. Items added later also receive def.
func New[V cmp.Ordered](u *graphmaps.Universe, def V) *Map[V] {
	return NewFunc(u, def, cmp.Compare[V])
}

// NewFunc is like New but orders values with compare.
func NewFunc[V any](u *graphmaps.Universe, def V, compare func(a, b V) int) *Map[V] {
	m := &Map[V]{
		u:       u,
		forward: slots.New(u, def),
		compare: compare,
		logger:  u.Logger().WithIndex("crossref"),
	}
	m.reverse = btree.NewG[entry[V]](degree, func(a, b entry[V]) bool {
		if c := compare(a.value, b.value); c != 0 {
			return c < 0
		}
		return a.seq < b.seq
	})
	m.seedAll()
	m.sub = u.Attach((*observer[V])(m))
	return m
}

// Close detaches the map from its universe.
func (m *Map[V]) Close() {
	m.sub.Detach()
}

// Get returns the value of a live item.
func (m *Map[V]) Get(item graphmaps.Item) V {
	return m.forward.Get(item)
}

// Set assigns value to item.
// Setting the value an item already holds keeps its position among the
// entries of that value.
func (m *Map[V]) Set(item graphmaps.Item, value V) {
	old := m.forward.Get(item)
	if m.compare(old, value) != 0 {
		m.unlink(item, old)
		m.link(item, value)
	}
	m.forward.Set(item, value)
}

// Find returns an item holding value, or graphmaps.Invalid. When several
// items hold value, the one that received it first is returned.
func (m *Map[V]) Find(value V) graphmaps.Item {
	found := graphmaps.Invalid
	m.reverse.AscendGreaterOrEqual(entry[V]{value: value}, func(e entry[V]) bool {
		if m.compare(e.value, value) == 0 {
			found = e.item
		}
		return false
	})
	return found
}

// Count returns the number of items holding value.
func (m *Map[V]) Count(value V) int {
	var n int
	for range m.Items(value) {
		n++
	}
	return n
}

// Len returns the number of (value, item) entries, which equals the
// number of live items.
func (m *Map[V]) Len() int {
	return m.reverse.Len()
}

// Items iterates the items holding value in the order they received it.
// The map must not be mutated during the iteration.
func (m *Map[V]) Items(value V) iter.Seq[graphmaps.Item] {
	return func(yield func(graphmaps.Item) bool) {
		m.reverse.AscendGreaterOrEqual(entry[V]{value: value}, func(e entry[V]) bool {
			return m.compare(e.value, value) == 0 && yield(e.item)
		})
	}
}

// Values iterates the values in ascending order with multiplicity: a value
// held by k items is yielded k times.
// The map must not be mutated during the iteration.
func (m *Map[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		m.reverse.Ascend(func(e entry[V]) bool {
			return yield(e.value)
		})
	}
}

// Collect returns the items holding value as a set.
func (m *Map[V]) Collect(value V) *graphmaps.ItemSet {
	return graphmaps.CollectItems(m.Items(value))
}

// Inverse returns a read-only view from values to items.
func (m *Map[V]) Inverse() Inverse[V] {
	return Inverse[V]{m: m}
}

// Inverse maps values back to items.
type Inverse[V any] struct {
	m *Map[V]
}

// Lookup returns an item holding value, or graphmaps.Invalid.
func (inv Inverse[V]) Lookup(value V) graphmaps.Item {
	return inv.m.Find(value)
}

func (m *Map[V]) link(item graphmaps.Item, value V) {
	m.seq++
	m.reverse.ReplaceOrInsert(entry[V]{value: value, seq: m.seq, item: item})
}

// unlink removes the entry (value, item) by scanning the entries of value.
func (m *Map[V]) unlink(item graphmaps.Item, value V) {
	var (
		victim entry[V]
		found  bool
	)
	m.reverse.AscendGreaterOrEqual(entry[V]{value: value}, func(e entry[V]) bool {
		if m.compare(e.value, value) != 0 {
			return false
		}
		if e.item == item {
			victim, found = e, true
			return false
		}
		return true
	})
	if found {
		m.reverse.Delete(victim)
	}
}

func (m *Map[V]) seedAll() {
	def := m.forward.Default()
	for item := range m.u.All() {
		m.link(item, def)
	}
}

type observer[V any] Map[V]

func (o *observer[V]) OnAdd(item graphmaps.Item) {
	m := (*Map[V])(o)
	m.forward.Grow(item)
	m.link(item, m.forward.Default())
}

func (o *observer[V]) OnAddMany(items []graphmaps.Item) {
	for _, item := range items {
		o.OnAdd(item)
	}
}

func (o *observer[V]) OnErase(item graphmaps.Item) {
	m := (*Map[V])(o)
	m.unlink(item, m.forward.Get(item))
	m.forward.Reset(item)
}

func (o *observer[V]) OnEraseMany(items []graphmaps.Item) {
	for _, item := range items {
		o.OnErase(item)
	}
}

func (o *observer[V]) OnBuild() {
	m := (*Map[V])(o)
	m.reverse.Clear(false)
	m.forward.Build()
	m.seedAll()
	m.logger.LogBuild(context.Background(), m.reverse.Len())
}

func (o *observer[V]) OnClear() {
	m := (*Map[V])(o)
	dropped := m.reverse.Len()
	m.reverse.Clear(false)
	m.forward.Clear()
	m.logger.LogClear(context.Background(), dropped)
}
