package task

import (
	"github.com/exascience/forkjoin/internal"
)

// A Handle refers to the eventual result of a computation submitted with
// Async. It has a single producer and is meant for a single consumer.
type Handle[T any] struct {
	done   chan struct{}
	result T
	p      interface{}
}

// Schedule submits fn to exec without a way to observe its completion.
// fn may run after, or concurrently with, the caller's remaining code, so
// it must not depend on variables the caller goes on to modify.
func Schedule(exec Executor, fn func()) {
	exec.Submit(fn)
}

// Async submits fn to exec and returns a handle to its result.
//
// If fn panics, the panic is recovered in the executing goroutine and
// re-raised, with the original stack trace attached, by Wait.
func Async[T any](exec Executor, fn func() T) *Handle[T] {
	h := &Handle[T]{done: make(chan struct{})}
	exec.Submit(func() {
		defer func() {
			h.p = internal.WrapPanic(recover())
			close(h.done)
		}()
		h.result = fn()
	})
	return h
}

// join blocks until the computation has finished and returns its result
// and recovered panic, if any, without re-raising it.
func (h *Handle[T]) join() (T, interface{}) {
	<-h.done
	return h.result, h.p
}

// Wait blocks until the computation has finished and returns its result.
// There is no timeout and no cancellation.
func (h *Handle[T]) Wait() T {
	result, p := h.join()
	if p != nil {
		panic(p)
	}
	return result
}

// Done returns a channel that is closed once the computation has
// finished.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}
