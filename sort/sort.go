/*
Package sort provides a parallel merge sort and a parallel sortedness
check for slices.
*/
package sort

import (
	"golang.org/x/exp/constraints"

	"github.com/exascience/forkjoin"
	"github.com/exascience/forkjoin/parallel"
)

// Less is the default comparator of SortOrdered and IsSortedOrdered.
func Less[T constraints.Ordered](x, y T) bool {
	return x < y
}

// SortOrdered sorts data in increasing order. See Sort.
func SortOrdered[T constraints.Ordered](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	data []T,
) {
	Sort(cfg, policy, data, Less[T])
}

/*
IsSorted determines whether data is sorted in the order defined by less.

With forkjoin.Parallel, every slice of the index range is checked by
its own task, including the boundary to the element that precedes the
slice.
*/
func IsSorted[T any](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	data []T,
	less func(x, y T) bool,
) bool {
	return parallel.Reduce(cfg, policy, 1, len(data), true,
		func(low, high int, sorted bool) bool {
			for i := low; sorted && i < high; i++ {
				sorted = !less(data[i], data[i-1])
			}
			return sorted
		},
		func(partial, acc bool) bool { return partial && acc },
	)
}

// IsSortedOrdered determines whether data is sorted in increasing order.
func IsSortedOrdered[T constraints.Ordered](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	data []T,
) bool {
	return IsSorted(cfg, policy, data, Less[T])
}
