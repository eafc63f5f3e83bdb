// File: future/future.go
// Package future implements single-assignment asynchronous result cells.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A Promise is the write side, resolved exactly once with a value or an
// error; the Future is its read-only view. Observation is safe from any
// goroutine; resolution is intended to happen on the owning event loop.

package future

import "sync"

// Future is the read-only view of a promise's eventual resolution.
type Future[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	value     T
	err       error
	resolved  bool
	callbacks []func(T, error)
}

// Promise is the write side of a Future. Resolving twice is a programmer
// error and panics.
type Promise[T any] struct {
	f *Future[T]
}

// New creates an unresolved promise.
func New[T any]() *Promise[T] {
	return &Promise[T]{f: &Future[T]{done: make(chan struct{})}}
}

// Succeeded returns an already-successful future carrying v.
func Succeeded[T any](v T) *Future[T] {
	p := New[T]()
	p.Succeed(v)
	return p.Future()
}

// Failed returns an already-failed future carrying err.
func Failed[T any](err error) *Future[T] {
	p := New[T]()
	p.Fail(err)
	return p.Future()
}

// Future returns the read side of the promise.
func (p *Promise[T]) Future() *Future[T] { return p.f }

// Succeed resolves the promise with a value.
func (p *Promise[T]) Succeed(v T) { p.f.resolve(v, nil) }

// Fail resolves the promise with an error.
func (p *Promise[T]) Fail(err error) {
	var zero T
	p.f.resolve(zero, err)
}

func (f *Future[T]) resolve(v T, err error) {
	f.mu.Lock()
	if f.resolved {
		f.mu.Unlock()
		panic("future: promise resolved twice")
	}
	f.value, f.err = v, err
	f.resolved = true
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range callbacks {
		fn(v, err)
	}
}

// Done returns a channel closed once the future is resolved.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// IsResolved reports whether the future already carries a result.
func (f *Future[T]) IsResolved() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolved
}

// Value returns the success value. Only meaningful after Done is closed.
func (f *Future[T]) Value() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Err returns the failure cause, or nil. Only meaningful after Done is closed.
func (f *Future[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Sync blocks until resolution and returns the outcome.
func (f *Future[T]) Sync() (T, error) {
	<-f.done
	return f.value, f.err
}

// OnComplete registers an observer. Observers registered after resolution
// are invoked immediately on the calling goroutine; earlier observers run
// on the resolving goroutine, in registration order.
func (f *Future[T]) OnComplete(fn func(T, error)) {
	f.mu.Lock()
	if f.resolved {
		v, err := f.value, f.err
		f.mu.Unlock()
		fn(v, err)
		return
	}
	f.callbacks = append(f.callbacks, fn)
	f.mu.Unlock()
}
