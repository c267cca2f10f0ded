package graphmaps

import (
	"context"
	"iter"
	"time"
)

// Universe is a mutable set of items. It is the only component that
// creates or destroys items; indices borrow it and follow its changes
// through the Observer notifications.
//
// Erased slots are recycled, newest first. A recycled item is a new item:
// every attached index sees OnErase for the old one and OnAdd for the new.
//
// Universe is not safe for concurrent use.
type Universe struct {
	live []bool
	free []Item
	n    int
	subs []*Subscription

	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty universe.
func New(optFns ...Option) *Universe {
	o := applyOptions(optFns)
	return &Universe{
		live:    make([]bool, 0, o.capacity),
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
}

// Logger returns the logger indices derive their component loggers from.
func (u *Universe) Logger() *Logger {
	return u.logger
}

// Len returns the number of live items.
func (u *Universe) Len() int {
	return u.n
}

// Cap returns one past the highest slot number ever handed out since the
// last Clear or Resize. Per-item tables are sized by it.
func (u *Universe) Cap() int {
	return len(u.live)
}

// Valid reports whether item is currently live.
func (u *Universe) Valid(item Item) bool {
	return item >= 0 && int(item) < len(u.live) && u.live[item]
}

// ID returns the external id of a live item. It is meant for diagnostics
// and is unrelated to the dense ids assigned by the rangeid package.
func (u *Universe) ID(item Item) int {
	return int(item)
}

// All iterates the live items in ascending slot order.
func (u *Universe) All() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for i, ok := range u.live {
			if ok && !yield(Item(i)) {
				return
			}
		}
	}
}

// Items returns the live items in ascending slot order.
func (u *Universe) Items() []Item {
	out := make([]Item, 0, u.n)
	for item := range u.All() {
		out = append(out, item)
	}
	return out
}

// Add creates one item and notifies OnAdd.
func (u *Universe) Add() Item {
	item := u.alloc()

	start := time.Now()
	u.notifyAdd(item)
	u.metrics.RecordAdd(1, time.Since(start))

	return item
}

// AddMany creates n items and notifies OnAddMany once.
func (u *Universe) AddMany(n int) ([]Item, error) {
	if n < 0 {
		return nil, ErrInvalidCount
	}
	items := make([]Item, n)
	for i := range items {
		items[i] = u.alloc()
	}

	start := time.Now()
	u.notifyAddMany(items)
	u.metrics.RecordAdd(n, time.Since(start))

	return items, nil
}

// Erase removes a live item. Observers see OnErase while the item is still
// live.
func (u *Universe) Erase(item Item) error {
	if !u.Valid(item) {
		return &ErrItemNotLive{Item: item}
	}

	start := time.Now()
	u.notifyErase(item)
	u.metrics.RecordErase(1, time.Since(start))

	u.release(item)
	return nil
}

// EraseMany removes several live items with a single OnEraseMany. The
// batch is rejected as a whole if any item is dead or listed twice.
func (u *Universe) EraseMany(items []Item) error {
	seen := NewItemSet()
	for _, item := range items {
		if !u.Valid(item) || seen.Contains(item) {
			err := &ErrItemNotLive{Item: item}
			u.logger.LogEraseMany(context.Background(), len(items), err)
			return err
		}
		seen.Add(item)
	}

	start := time.Now()
	u.notifyEraseMany(items)
	u.metrics.RecordErase(len(items), time.Since(start))

	for _, item := range items {
		u.release(item)
	}
	u.logger.LogEraseMany(context.Background(), len(items), nil)
	return nil
}

// Clear removes every item. Observers see OnClear while the items are
// still live. Slot numbering restarts at zero.
func (u *Universe) Clear() {
	dropped := u.n

	start := time.Now()
	u.notifyClear()
	u.metrics.RecordClear(dropped, time.Since(start))

	u.reset()
	u.logger.LogClear(context.Background(), dropped)
}

// Resize replaces the whole universe with n fresh items. It is the bulk
// rebuild path: observers see OnClear followed by OnBuild, and no per-item
// add notifications fire.
func (u *Universe) Resize(n int) ([]Item, error) {
	if n < 0 {
		return nil, ErrInvalidCount
	}
	u.Clear()

	items := make([]Item, n)
	for i := range items {
		items[i] = u.alloc()
	}

	start := time.Now()
	u.notifyBuild()
	u.metrics.RecordBuild(n, time.Since(start))

	u.logger.LogBuild(context.Background(), n)
	return items, nil
}

func (u *Universe) alloc() Item {
	var item Item
	if last := len(u.free) - 1; last >= 0 {
		item = u.free[last]
		u.free = u.free[:last]
		u.live[item] = true
	} else {
		item = Item(len(u.live))
		u.live = append(u.live, true)
	}
	u.n++
	return item
}

func (u *Universe) release(item Item) {
	u.live[item] = false
	u.free = append(u.free, item)
	u.n--
}

func (u *Universe) reset() {
	clear(u.live)
	u.live = u.live[:0]
	u.free = u.free[:0]
	u.n = 0
}

// First returns the live item with the lowest slot, or Invalid.
func (u *Universe) First() Item {
	return u.Next(Invalid)
}

// Next returns the live item following item in slot order, or Invalid.
// Next(Invalid) is First.
func (u *Universe) Next(item Item) Item {
	for i := max(int(item)+1, 0); i < len(u.live); i++ {
		if u.live[i] {
			return Item(i)
		}
	}
	return Invalid
}
