// Package rangeid assigns every live item of a universe a compact id in
// [0, n), where n is the number of live items.
//
// Ids are unique and continuous but NOT stable: erasing an item moves the
// item holding the highest id into the freed id (swap-remove), which keeps
// every operation O(1). Callers that need a particular order can arrange it
// with Swap, e.g. moving an item to the end before erasing it.
package rangeid

import (
	"context"
	"iter"

	"github.com/hupe1980/graphmaps"
	"github.com/hupe1980/graphmaps/internal/slots"
)

// Map is a dense, continuous id assignment for the items of a universe.
type Map struct {
	u       *graphmaps.Universe
	pos     *slots.Table[int]
	inverse []graphmaps.Item

	sub    *graphmaps.Subscription
	logger *graphmaps.Logger
}

// New assigns ids to every live item of u, in the universe's iteration
// order, and keeps them up to date until Close.
func New(u *graphmaps.Universe) *Map {
	m := &Map{
		u:      u,
		pos:    slots.New(u, -1),
		logger: u.Logger().WithIndex("rangeid"),
	}
	m.scan()
	m.sub = u.Attach((*observer)(m))
	return m
}

// Close detaches the map from its universe.
func (m *Map) Close() {
	m.sub.Detach()
}

// Len returns the number of ids in use, which is one more than the
// largest id.
func (m *Map) Len() int {
	return len(m.inverse)
}

// ID returns the dense id of a live item.
func (m *Map) ID(item graphmaps.Item) int {
	return m.pos.Get(item)
}

// Item returns the item currently holding id, or graphmaps.Invalid when id
// is out of range.
func (m *Map) Item(id int) graphmaps.Item {
	if id < 0 || id >= len(m.inverse) {
		return graphmaps.Invalid
	}
	return m.inverse[id]
}

// Swap exchanges the ids of two live items.
func (m *Map) Swap(a, b graphmaps.Item) {
	pa, pb := m.pos.Get(a), m.pos.Get(b)
	m.pos.Set(a, pb)
	m.inverse[pb] = a
	m.pos.Set(b, pa)
	m.inverse[pa] = b
}

// All iterates (id, item) pairs in ascending id order.
func (m *Map) All() iter.Seq2[int, graphmaps.Item] {
	return func(yield func(int, graphmaps.Item) bool) {
		for id, item := range m.inverse {
			if !yield(id, item) {
				return
			}
		}
	}
}

// Inverse returns a read-only view from ids to items.
func (m *Map) Inverse() Inverse {
	return Inverse{m: m}
}

// Inverse maps dense ids back to items.
type Inverse struct {
	m *Map
}

// At returns the item holding id, or graphmaps.Invalid.
func (inv Inverse) At(id int) graphmaps.Item {
	return inv.m.Item(id)
}

// Len returns the number of ids.
func (inv Inverse) Len() int {
	return inv.m.Len()
}

func (m *Map) scan() {
	for item := range m.u.All() {
		m.push(item)
	}
}

func (m *Map) push(item graphmaps.Item) {
	m.pos.Set(item, len(m.inverse))
	m.inverse = append(m.inverse, item)
}

// remove moves the last item into the id of item and shrinks by one.
func (m *Map) remove(item graphmaps.Item) {
	p := m.pos.Get(item)
	last := len(m.inverse) - 1
	moved := m.inverse[last]
	m.inverse[p] = moved
	m.pos.Set(moved, p)
	m.inverse = m.inverse[:last]
	m.pos.Reset(item)
}

// observer carries the lifecycle hooks so they stay out of Map's method set.
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
	m.inverse = m.inverse[:0]
	m.scan()
	m.logger.LogBuild(context.Background(), len(m.inverse))
}

func (o *observer) OnClear() {
	m := (*Map)(o)
	dropped := len(m.inverse)
	m.inverse = m.inverse[:0]
	m.pos.Clear()
	m.logger.LogClear(context.Background(), dropped)
}
