package state

import (
	"context"
	"sync"

	"mandi-core/internal/watch"
)

// Tracker owns the observable Async state of one logical operation slot and
// keeps re-invocation safe: each Run claims a generation, publishes Loading
// immediately, and only the newest generation may publish a terminal state.
// A stale in-flight result, or one whose context was cancelled (screen torn
// down), is discarded without touching the observable state.
type Tracker[T any] struct {
	// mu guards gen and every publish, so claiming a generation and writing
	// a terminal state are a single atomic step; a stale run can never slip
	// its result in after a newer run settled.
	mu   sync.Mutex
	gen  uint64
	cell *watch.Cell[Async[T]]
}

// NewTracker returns a tracker whose initial observable state is Loading.
func NewTracker[T any]() *Tracker[T] {
	return &Tracker[T]{
		cell: watch.NewCell(Loading[T]()),
	}
}

// Observe returns a replay-latest stream of the tracked state.
func (t *Tracker[T]) Observe(ctx context.Context) <-chan Async[T] {
	return t.cell.Subscribe(ctx)
}

// Latest returns the current state without subscribing.
func (t *Tracker[T]) Latest() Async[T] {
	return t.cell.Get()
}

// Run executes op, publishing Loading first and exactly one terminal state
// when op settles — unless a newer Run started meanwhile or ctx was cancelled,
// in which case the result is dropped (last-writer-wins). The lock is not
// held while op runs.
func (t *Tracker[T]) Run(ctx context.Context, op func(context.Context) (T, error)) {
	t.mu.Lock()
	t.gen++
	mine := t.gen
	t.cell.Set(Loading[T]())
	t.mu.Unlock()

	v, err := op(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	if ctx.Err() != nil || t.gen != mine {
		return
	}
	if err != nil {
		t.cell.Set(Error[T](err.Error()))
		return
	}
	t.cell.Set(Success(v))
}
