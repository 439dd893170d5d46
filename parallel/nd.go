package parallel

import (
	"golang.org/x/exp/constraints"

	"github.com/exascience/forkjoin"
)

// For2D invokes f for every pair (i, j) with beginX <= i < endX and
// beginY <= j < endY.
//
// Only the j dimension is partitioned. Each task runs the full i loop for
// every j of its own slice.
func For2D[I constraints.Integer](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	beginX, endX, beginY, endY I,
	f func(i, j I),
) {
	ForRange(cfg, policy, beginY, endY, func(jBegin, jEnd I) {
		for j := jBegin; j < jEnd; j++ {
			for i := beginX; i < endX; i++ {
				f(i, j)
			}
		}
	})
}

// ForRange2D invokes f once per slice of the j dimension, always passing
// the full i range.
func ForRange2D[I constraints.Integer](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	beginX, endX, beginY, endY I,
	f func(beginX, endX, beginY, endY I),
) {
	ForRange(cfg, policy, beginY, endY, func(jBegin, jEnd I) {
		f(beginX, endX, jBegin, jEnd)
	})
}

// For3D invokes f for every triple (i, j, k) in the given box.
//
// Only the k dimension is partitioned. Each task runs the full j and i
// loops for every k of its own slice.
func For3D[I constraints.Integer](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	beginX, endX, beginY, endY, beginZ, endZ I,
	f func(i, j, k I),
) {
	ForRange(cfg, policy, beginZ, endZ, func(kBegin, kEnd I) {
		for k := kBegin; k < kEnd; k++ {
			for j := beginY; j < endY; j++ {
				for i := beginX; i < endX; i++ {
					f(i, j, k)
				}
			}
		}
	})
}

// ForRange3D invokes f once per slice of the k dimension, always passing
// the full i and j ranges.
func ForRange3D[I constraints.Integer](
	cfg forkjoin.Config,
	policy forkjoin.ExecutionPolicy,
	beginX, endX, beginY, endY, beginZ, endZ I,
	f func(beginX, endX, beginY, endY, beginZ, endZ I),
) {
	ForRange(cfg, policy, beginZ, endZ, func(kBegin, kEnd I) {
		f(beginX, endX, beginY, endY, kBegin, kEnd)
	})
}
