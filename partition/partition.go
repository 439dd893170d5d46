// Package partition divides ordered index domains into contiguous,
// disjoint slices.
package partition

import (
	"math"

	"golang.org/x/exp/constraints"
)

// A Range is the half-open interval [Begin, End) over an index type, with
// Begin <= End.
type Range[I constraints.Integer] struct {
	Begin, End I
}

// Len returns the number of indices in r.
func (r Range[I]) Len() I {
	if r.End < r.Begin {
		return 0
	}
	return r.End - r.Begin
}

// Empty reports whether r contains no indices.
func (r Range[I]) Empty() bool {
	return r.End <= r.Begin
}

// SliceSize returns the size of the slices Split cuts [start, end) into
// for a worker hint n: the rounded quotient of end - start + 1 and n, but
// at least 1. A hint below 1 counts as 1. The size of the domain must be
// representable in I.
func SliceSize[I constraints.Integer](start, end I, n int) I {
	if start >= end {
		return 1
	}
	if n < 1 {
		n = 1
	}
	size := math.Round((float64(end-start) + 1) / float64(n))
	if size < 1 {
		return 1
	}
	if size >= float64(end-start) {
		return end - start
	}
	return I(size)
}

// advance steps i by slice, without passing end.
func advance[I constraints.Integer](i, slice, end I) I {
	if end-i <= slice {
		return end
	}
	return i + slice
}

/*
Split divides the domain [start, end) into at most n contiguous slices
of SliceSize(start, end, n) indices each, walking forward from start.
The last slice absorbs any remainder and always ends at end, so the
slices are disjoint, ordered, and their union is exactly the domain.

If start >= end, Split returns nil. If n <= 1, Split returns the whole
domain as a single slice.
*/
func Split[I constraints.Integer](start, end I, n int) []Range[I] {
	if start >= end {
		return nil
	}
	if n <= 1 {
		return []Range[I]{{start, end}}
	}
	slice := SliceSize(start, end, n)
	capacity := n
	if size := float64(end - start); size < float64(n) {
		capacity = int(size)
	}
	plan := make([]Range[I], 0, capacity)
	i1 := start
	i2 := advance(start, slice, end)
	for k := 0; k+1 < n && i1 < end; k++ {
		plan = append(plan, Range[I]{i1, i2})
		i1 = i2
		i2 = advance(i2, slice, end)
	}
	if i1 < end {
		plan = append(plan, Range[I]{i1, end})
	}
	return plan
}
