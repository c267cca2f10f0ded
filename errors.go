package graphmaps

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLive is returned when an operation names an item that is not
	// currently part of the universe.
	ErrNotLive = errors.New("item is not live")

	// ErrInvalidCount is returned when a bulk operation is asked for a
	// negative number of items.
	ErrInvalidCount = errors.New("count must not be negative")
)

// ErrItemNotLive indicates that a specific item is dead, invalid or was
// never created by the universe.
//
// It matches ErrNotLive via errors.Is.
type ErrItemNotLive struct {
	Item Item
}

func (e *ErrItemNotLive) Error() string {
	if e.Item == Invalid {
		return "item is not live: invalid item"
	}
	return fmt.Sprintf("item is not live: %d", int(e.Item))
}

func (e *ErrItemNotLive) Unwrap() error { return ErrNotLive }
