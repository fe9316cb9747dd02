// Package state defines the tri-state container used for every asynchronous
// result in the system, and a tracker that drives it safely from concurrent,
// re-entrant operations.
package state

// Phase enumerates the three reachable states of an async result.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseSuccess
	PhaseError
)

// Async wraps an asynchronously produced value. Exactly three states are
// reachable: Loading, Success(value) and Error(message).
type Async[T any] struct {
	phase   Phase
	value   T
	message string
}

// Loading returns the loading state.
func Loading[T any]() Async[T] {
	return Async[T]{phase: PhaseLoading}
}

// Success returns a terminal success state carrying v.
func Success[T any](v T) Async[T] {
	return Async[T]{phase: PhaseSuccess, value: v}
}

// Error returns a terminal error state carrying a human-readable message.
func Error[T any](message string) Async[T] {
	return Async[T]{phase: PhaseError, message: message}
}

// Phase returns the current phase for exhaustive switching.
func (a Async[T]) Phase() Phase { return a.phase }

// Value returns the success value; ok is false unless the phase is Success.
func (a Async[T]) Value() (v T, ok bool) {
	if a.phase != PhaseSuccess {
		var zero T
		return zero, false
	}
	return a.value, true
}

// Err returns the error message; ok is false unless the phase is Error.
func (a Async[T]) Err() (message string, ok bool) {
	if a.phase != PhaseError {
		return "", false
	}
	return a.message, true
}

// IsLoading reports whether the value is still pending.
func (a Async[T]) IsLoading() bool { return a.phase == PhaseLoading }
