// Package watch provides a single-writer, multi-reader broadcast value cell.
// A Cell always holds a latest value, replays it to late subscribers, and
// delivers updates to each subscriber in production order. A lagging
// subscriber is conflated: the oldest undelivered value is dropped so the
// stream always converges on the latest snapshot.
package watch

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// Cell holds the latest value of an observed collection or scalar.
type Cell[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]chan T
	next  int
}

// NewCell returns a cell seeded with initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  make(map[int]chan T),
	}
}

// Get returns the latest value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set publishes v to all subscribers and stores it as the latest value.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	for _, ch := range c.subs {
		c.push(ch, v)
	}
}

// Update atomically applies fn to the latest value and publishes the result.
// The read-compute-publish sequence holds the cell lock, so two concurrent
// updates never interleave partially-written state.
func (c *Cell[T]) Update(fn func(T) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = fn(c.value)
	for _, ch := range c.subs {
		c.push(ch, c.value)
	}
	return c.value
}

// UpdateIf applies fn under the cell lock and broadcasts only when fn reports
// a change. Lets a no-op mutation (e.g. a lost trip-accept race) leave
// subscribers undisturbed.
func (c *Cell[T]) UpdateIf(fn func(T) (T, bool)) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, changed := fn(c.value)
	if !changed {
		return c.value
	}
	c.value = next
	for _, ch := range c.subs {
		c.push(ch, c.value)
	}
	return c.value
}

// push delivers without blocking the writer; on a full buffer the oldest
// pending value is discarded (conflation, order preserved).
func (c *Cell[T]) push(ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Subscribe returns a stream that immediately replays the latest value and
// then receives every subsequent update until ctx is cancelled, at which point
// the channel is closed.
func (c *Cell[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, subscriberBuffer)
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = ch
	ch <- c.value
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
		close(ch)
	}()
	return ch
}
