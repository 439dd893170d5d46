package parallel

import (
	"golang.org/x/exp/constraints"

	"github.com/exascience/forkjoin"
	"github.com/exascience/forkjoin/partition"
)

// Reduce divides the half-open interval from start to end into slices and
// computes one partial result per slice with reduce, which receives the
// slice bounds and identity as the seed for its own fold. Once all slices
// have been processed, the partial results are combined from left to
// right, starting from identity:
//
//	acc = join(partial[0], identity)
//	acc = join(partial[1], acc)
//	...
//
// The combination order depends only on the slice order, never on the
// order in which tasks finish, so the result is deterministic.
//
// For an empty or inverted interval, Reduce returns identity.
func Reduce[I constraints.Integer, V any](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	start, end I,
	identity V,
	reduce func(low, high I, identity V) V,
	join func(partial, acc V) V,
) V {
	slices := plan(cfg, policy, "Reduce", start, end)
	partials := make([]V, len(slices))
	execute(cfg, slices, func(k int, r partition.Range[I]) {
		partials[k] = reduce(r.Begin, r.End, identity)
	})
	acc := identity
	for _, partial := range partials {
		acc = join(partial, acc)
	}
	return acc
}

type Addable interface {
	constraints.Integer | constraints.Float | constraints.Complex | ~string
}

// ReduceSum is like Reduce with the zero value as identity, where the
// partial results are added together.
func ReduceSum[I constraints.Integer, V Addable](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	start, end I,
	reduce func(low, high I) V,
) V {
	var zero V
	return Reduce(cfg, policy, start, end, zero,
		func(low, high I, _ V) V { return reduce(low, high) },
		func(partial, acc V) V { return acc + partial },
	)
}
