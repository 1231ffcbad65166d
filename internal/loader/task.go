// Package loader loads the session's assets off the render loop.
package loader

import "context"

// Result is the outcome of a finished Task.
type Result[T any] struct {
	Value T
	Err   error
}

// Task runs a load on its own goroutine. The owner polls it from its
// loop, so whatever consumes the value does so on the owner's goroutine.
type Task[T any] struct {
	done chan struct{}
	res  Result[T]
}

// Start runs fn on a new goroutine. fn should stop early when ctx is done.
func Start[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.res.Value, t.res.Err = fn(ctx)
	}()
	return t
}

// Done is closed once the task has finished.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Poll returns the result and true once the task has finished, or
// false while it is still running. It never blocks.
func (t *Task[T]) Poll() (Result[T], bool) {
	select {
	case <-t.done:
		return t.res, true
	default:
		return Result[T]{}, false
	}
}

// Wait blocks until the task finishes or ctx is done.
func (t *Task[T]) Wait(ctx context.Context) (Result[T], error) {
	select {
	case <-t.done:
		return t.res, nil
	case <-ctx.Done():
		return Result[T]{}, ctx.Err()
	}
}
