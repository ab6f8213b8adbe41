// Package future provides a single-assignment asynchronous result.
//
// A Future settles exactly once: with a value, with an error, or as
// cancelled. Derived futures built with Then and ThenAsync settle after
// their source; errors and cancellation pass through without running the
// continuation, and cancelling a derived future cancels its source.
package future

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/arthur-debert/modpick/pkg/errors"
)

// ErrCancelled is the error reported by a cancelled future.
var ErrCancelled = errors.New(errors.ErrCancelled, "cancelled")

// Future is the eventual result of an asynchronous step.
type Future[T any] struct {
	once     sync.Once
	done     chan struct{}
	value    T
	err      error
	onCancel func()
}

// New returns an unsettled future.
func New[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future already completed with v.
func Resolved[T any](v T) *Future[T] {
	f := New[T]()
	f.Complete(v)
	return f
}

// Failed returns a future already failed with err.
func Failed[T any](err error) *Future[T] {
	f := New[T]()
	f.Fail(err)
	return f
}

// Cancelled returns a future already in the cancelled state.
func Cancelled[T any]() *Future[T] {
	f := New[T]()
	f.Cancel()
	return f
}

func (f *Future[T]) settle(v T, err error) bool {
	settled := false
	f.once.Do(func() {
		f.value = v
		f.err = err
		settled = true
		close(f.done)
	})
	return settled
}

// Complete settles the future with v. It reports false if the future had
// already settled.
func (f *Future[T]) Complete(v T) bool {
	return f.settle(v, nil)
}

// Fail settles the future with err. A nil err is treated as an internal
// error so a failed future never looks successful.
func (f *Future[T]) Fail(err error) bool {
	if err == nil {
		err = errors.New(errors.ErrInternal, "future failed without an error")
	}
	var zero T
	return f.settle(zero, err)
}

// Cancel settles the future as cancelled and cancels any source it was
// derived from.
func (f *Future[T]) Cancel() bool {
	var zero T
	ok := f.settle(zero, ErrCancelled)
	if ok && f.onCancel != nil {
		f.onCancel()
	}
	return ok
}

// Done is closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsCancelled reports whether the future settled as cancelled.
func (f *Future[T]) IsCancelled() bool {
	select {
	case <-f.done:
		return IsCancelled(f.err)
	default:
		return false
	}
}

// Await blocks until the future settles or ctx is done. When ctx ends
// first the future is cancelled and ErrCancelled returned.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
	case <-ctx.Done():
		f.Cancel()
		<-f.done
	}
	return f.value, f.err
}

// IsCancelled reports whether err marks a cancelled future.
func IsCancelled(err error) bool {
	return stderrors.Is(err, ErrCancelled)
}

// Then derives a future that completes with fn applied to f's value.
// fn runs only when f completes successfully.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	return ThenAsync(f, func(v T) *Future[U] {
		u, err := fn(v)
		if err != nil {
			return Failed[U](err)
		}
		return Resolved(u)
	})
}

// ThenAsync derives a future that settles like the future returned by fn,
// which runs only when f completes successfully.
func ThenAsync[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	out := New[U]()

	var mu sync.Mutex
	var pending *Future[U]
	out.onCancel = func() {
		f.Cancel()
		mu.Lock()
		next := pending
		mu.Unlock()
		if next != nil {
			next.Cancel()
		}
	}

	run := func() {
		if f.err != nil {
			forward(out, f.err)
			return
		}
		next := fn(f.value)
		if next == nil {
			out.Fail(errors.New(errors.ErrInternal, "continuation returned no future"))
			return
		}
		mu.Lock()
		pending = next
		mu.Unlock()
		if out.IsCancelled() {
			next.Cancel()
			return
		}
		chain(next, out)
	}

	select {
	case <-f.done:
		run()
	default:
		go func() {
			<-f.done
			run()
		}()
	}
	return out
}

func chain[U any](next, out *Future[U]) {
	settle := func() {
		if next.err != nil {
			forward(out, next.err)
			return
		}
		out.Complete(next.value)
	}
	select {
	case <-next.done:
		settle()
	default:
		go func() {
			<-next.done
			settle()
		}()
	}
}

func forward[U any](out *Future[U], err error) {
	if IsCancelled(err) {
		out.Cancel()
		return
	}
	out.Fail(err)
}
