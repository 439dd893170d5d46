// Package forkjoin provides fork-join primitives for expressing parallel
// algorithms over index domains and slices. It partitions a domain into
// disjoint contiguous sub-ranges, hands the work for each sub-range to an
// executor, and combines the results in a deterministic order.
//
// The package itself only defines what every entry point shares: the
// ExecutionPolicy, which selects between inline and partitioned execution,
// and the Config, which carries the worker hint, the executor and the logger
// explicitly instead of through process-wide state.
//
// Forkjoin provides the following subpackages:
//
// forkjoin/task provides the executor seam, handles for asynchronous
// results, and scoped task groups.
//
// forkjoin/partition divides an index domain into contiguous slices sized
// from a worker hint.
//
// forkjoin/parallel provides parallel for loops in one, two and three
// dimensions, a parallel fill, and a deterministic parallel reduce.
//
// forkjoin/sort provides a fork-join merge sort and a parallel sortedness
// check.
//
// A panic in any task is recovered, all sibling tasks are joined, and the
// panic of the left-most failing task is then re-raised in the goroutine that
// called the entry point.
package forkjoin
