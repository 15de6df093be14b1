package loot

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded indicates a request for more results than the
	// command's buffer holds.
	ErrCapacityExceeded = errors.New("loot: result buffer capacity exceeded")
	// ErrInvalidCount indicates a negative draw count.
	ErrInvalidCount = errors.New("loot: draw count must be non-negative")
)

// Buffer is an append-only result sequence with a fixed capacity. It lives
// for the duration of one request.
type Buffer[T any] struct {
	items []T
}

// NewBuffer returns an empty buffer holding at most capacity values.
func NewBuffer[T any](capacity int) *Buffer[T] {
	return &Buffer[T]{items: make([]T, 0, capacity)}
}

// Append adds v, failing once the buffer is full.
func (b *Buffer[T]) Append(v T) error {
	if len(b.items) == cap(b.items) {
		return fmt.Errorf("%w (%d)", ErrCapacityExceeded, cap(b.items))
	}
	b.items = append(b.items, v)
	return nil
}

func (b *Buffer[T]) Len() int      { return len(b.items) }
func (b *Buffer[T]) Capacity() int { return cap(b.items) }

// Items returns the buffered values in append order.
func (b *Buffer[T]) Items() []T { return b.items }

// checkCount applies the default of one draw and the buffer bound.
func checkCount(count *int, capacity int) (int, error) {
	n := 1
	if count != nil {
		n = *count
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	if n > capacity {
		return 0, fmt.Errorf("%w: %d > %d", ErrCapacityExceeded, n, capacity)
	}
	return n, nil
}
