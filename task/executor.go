/*
Package task provides the asynchronous execution seam used by the
fork-join primitives in this module.

Work is handed to an Executor, which decides where it runs. A Handle
refers to the eventual result of one submitted computation, and a
Group joins a batch of submissions before its owner continues. None of
these types own a pool of threads: lifecycle management stays with the
Executor implementation.
*/
package task

import (
	"fmt"

	"golang.org/x/sync/semaphore"
)

// An Executor runs submitted work, either on the calling goroutine or
// concurrently with it. Submit must not block until the work completes,
// except when the work runs inline.
type Executor interface {
	Submit(work func())
}

type (
	inline     struct{}
	goroutines struct{}
)

func (inline) Submit(work func()) { work() }

func (goroutines) Submit(work func()) { go work() }

func (inline) String() string { return "inline" }

func (goroutines) String() string { return "goroutines" }

var (
	// Inline runs every submission synchronously on the submitting
	// goroutine.
	Inline Executor = inline{}

	// Goroutines runs every submission in its own goroutine.
	Goroutines Executor = goroutines{}
)

// Bounded is an Executor that runs at most a fixed number of
// submissions concurrently. When all slots are taken, the submission
// runs inline on the submitter, so nested fork-join code cannot
// deadlock waiting for a slot held by its own ancestor.
type Bounded struct {
	limit int64
	sem   *semaphore.Weighted
}

// NewBounded returns a Bounded executor with the given number of slots.
//
// NewBounded panics if limit < 1.
func NewBounded(limit int) *Bounded {
	if limit < 1 {
		panic(fmt.Sprintf("invalid executor limit: %v", limit))
	}
	return &Bounded{
		limit: int64(limit),
		sem:   semaphore.NewWeighted(int64(limit)),
	}
}

// Limit returns the maximum number of concurrently running submissions.
func (b *Bounded) Limit() int {
	return int(b.limit)
}

func (b *Bounded) Submit(work func()) {
	if !b.sem.TryAcquire(1) {
		work()
		return
	}
	go func() {
		defer b.sem.Release(1)
		work()
	}()
}

func (b *Bounded) String() string {
	return fmt.Sprintf("bounded(%d)", b.limit)
}
