package sort

import (
	"sort"

	"go.uber.org/zap"

	"github.com/exascience/forkjoin"
	"github.com/exascience/forkjoin/parallel"
	"github.com/exascience/forkjoin/task"
)

// merge merges the sorted halves a[:mid] and a[mid:] into temp, and then
// copies temp back over a with a parallel loop using the given number of
// workers. When neither element is less than the other, the element of the
// left half is taken first, which keeps the merge stable.
func merge[T any](cfg forkjoin.Config, a, temp []T, mid, workers int, less func(x, y T) bool) {
	i1, i2, k := 0, mid, 0
	for i1 < mid && i2 < len(a) {
		if less(a[i2], a[i1]) {
			temp[k] = a[i2]
			i2++
		} else {
			temp[k] = a[i1]
			i1++
		}
		k++
	}
	k += copy(temp[k:], a[i1:mid])
	copy(temp[k:], a[i2:])

	parallel.ForRange(cfg.WithWorkers(workers), forkjoin.Parallel, 0, len(a), func(low, high int) {
		copy(a[low:high], temp[low:high])
	})
}

// mergeSort sorts a using temp, which has the same length, as scratch
// space. The worker budget is split between the two halves, the left half
// getting workers/2 and the right half the rest, until it reaches 1, where
// the sub-slice is sorted sequentially.
func mergeSort[T any](cfg forkjoin.Config, a, temp []T, workers int, less func(x, y T) bool) {
	if workers <= 1 || len(a) <= 1 {
		sort.SliceStable(a, func(i, j int) bool {
			return less(a[i], a[j])
		})
		return
	}
	mid := len(a) / 2
	half := workers / 2
	g := task.NewGroup(cfg.Executor())
	g.Go(func() { mergeSort(cfg, a[:mid], temp[:mid], half, less) })
	g.Go(func() { mergeSort(cfg, a[mid:], temp[mid:], workers-half, less) })
	g.Wait()
	merge(cfg, a, temp, mid, workers, less)
}

/*
Sort sorts data in the order defined by less, which reports whether x
must sort before y.

With forkjoin.Parallel, Sort uses a fork-join merge sort: both halves of
the data are sorted concurrently, each with half of the worker budget,
and then merged. Once the budget of a sub-slice reaches a single worker,
it is sorted sequentially. With forkjoin.Serial, data is sorted
sequentially right away.

Sort is stable, so it produces the same result for both policies.

Sort needs a scratch buffer of the same length as data, which is
allocated before data is modified.
*/
func Sort[T any](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	data []T,
	less func(x, y T) bool,
) {
	workers := cfg.Workers(policy)
	if len(data) <= 1 {
		return
	}
	var temp []T
	if workers > 1 {
		temp = make([]T, len(data))
	}
	if ce := cfg.Logger().Check(zap.DebugLevel, "merge sort"); ce != nil {
		ce.Write(
			zap.Stringer("policy", policy),
			zap.Int("size", len(data)),
			zap.Int("workers", workers),
		)
	}
	mergeSort(cfg, data, temp, workers, less)
}
