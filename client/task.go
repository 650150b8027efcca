package client

import (
	"context"
	"sync"
)

// Task is a handle to an in-flight or completed call.
type Task[T any] struct {
	done   chan struct{}
	once   sync.Once
	result T
	err    error
	cancel context.CancelFunc
}

// Done returns a channel that is closed when the call completes.
func (t *Task[T]) Done() <-chan struct{} { return t.done }

// Wait blocks until the call completes and returns its outcome.
func (t *Task[T]) Wait() (T, error) {
	<-t.done
	return t.result, t.err
}

// Err blocks until the call completes and returns its error.
func (t *Task[T]) Err() error {
	<-t.done
	return t.err
}

// Cancel cancels the call's context. A call that has not completed yet
// resolves with [context.Canceled].
func (t *Task[T]) Cancel() {
	t.cancel()
}

// resolve records the outcome once; later calls are ignored.
func (t *Task[T]) resolve(result T, err error) {
	t.once.Do(func() {
		t.result = result
		t.err = err
		close(t.done)
	})
}

// startTask runs fn on its own goroutine. The task resolves with fn's
// outcome or with the context error, whichever comes first.
func startTask[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer cancel()
		t.resolve(fn(ctx))
	}()

	go func() {
		select {
		case <-ctx.Done():
			var zero T
			t.resolve(zero, ctx.Err())
		case <-t.done:
		}
	}()

	return t
}

// failedTask returns a task already resolved with err.
func failedTask[T any](err error) *Task[T] {
	t := &Task[T]{
		done:   make(chan struct{}),
		cancel: func() {},
	}
	var zero T
	t.resolve(zero, err)
	return t
}
