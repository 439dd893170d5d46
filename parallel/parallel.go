// Package parallel provides parallel for loops, a parallel fill, and a
// deterministic parallel reduce over index domains.
//
// Every function receives a forkjoin.Config and an explicit
// forkjoin.ExecutionPolicy. With forkjoin.Serial, the whole domain is
// processed inline. With forkjoin.Parallel, the domain is divided with
// partition.Split according to the configured worker count, each slice is
// processed by its own task, and the function returns only when all tasks
// have terminated.
//
// If one or more tasks panic, the panics are recovered, and the function
// eventually panics with the left-most recovered panic value once all
// tasks have terminated.
package parallel

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/exascience/forkjoin"
	"github.com/exascience/forkjoin/partition"
	"github.com/exascience/forkjoin/task"
)

// plan resolves the worker count for policy and divides [start, end)
// accordingly. It panics on an invalid policy, even for empty domains.
func plan[I constraints.Integer](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	op string,
	start, end I,
) []partition.Range[I] {
	workers := cfg.Workers(policy)
	slices := partition.Split(start, end, workers)
	if ce := cfg.Logger().Check(zap.DebugLevel, "partitioned domain"); ce != nil {
		ce.Write(
			zap.String("op", op),
			zap.Stringer("policy", policy),
			zap.Any("start", start),
			zap.Any("end", end),
			zap.Int("workers", workers),
			zap.Int("partitions", len(slices)),
		)
	}
	return slices
}

// execute invokes f for every slice of the plan, passing its position in
// the plan. A plan with a single slice runs inline.
func execute[I constraints.Integer](
	cfg forkjoin.Config,
	slices []partition.Range[I],
	f func(k int, r partition.Range[I]),
) {
	switch len(slices) {
	case 0:
		return
	case 1:
		f(0, slices[0])
		return
	}
	g := task.NewGroup(cfg.Executor())
	for k, r := range slices {
		g.Go(func() { f(k, r) })
	}
	g.Wait()
}

// For invokes f for every index in the half-open interval from start to
// end. An empty or inverted interval is a no-op.
//
// With forkjoin.Parallel, every task applies f sequentially to the indices
// of its own slice.
func For[I constraints.Integer](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	start, end I,
	f func(i I),
) {
	execute(cfg, plan(cfg, policy, "For", start, end), func(_ int, r partition.Range[I]) {
		for i := r.Begin; i < r.End; i++ {
			f(i)
		}
	})
}

// ForRange invokes f once per slice of the half-open interval from start
// to end, with low <= high, which lets f amortize per-slice setup. An
// empty or inverted interval is a no-op.
func ForRange[I constraints.Integer](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	start, end I,
	f func(low, high I),
) {
	execute(cfg, plan(cfg, policy, "ForRange", start, end), func(_ int, r partition.Range[I]) {
		f(r.Begin, r.End)
	})
}

// ForRangeErr is like ForRange, but f returns an error value or nil. All
// slices are processed regardless of errors, and the non-nil errors are
// combined in slice order.
func ForRangeErr[I constraints.Integer](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	start, end I,
	f func(low, high I) error,
) error {
	slices := plan(cfg, policy, "ForRangeErr", start, end)
	errs := make([]error, len(slices))
	execute(cfg, slices, func(k int, r partition.Range[I]) {
		errs[k] = f(r.Begin, r.End)
	})
	return multierr.Combine(errs...)
}

// Fill assigns value to every element of dst.
func Fill[T any](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	dst []T,
	value T,
) {
	For(cfg, policy, 0, len(dst), func(i int) {
		dst[i] = value
	})
}
