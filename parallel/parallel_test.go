package parallel_test

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/floats"

	"github.com/exascience/forkjoin"
	"github.com/exascience/forkjoin/parallel"
	"github.com/exascience/forkjoin/task"
)

var policies = []forkjoin.ExecutionPolicy{forkjoin.Serial, forkjoin.Parallel}

func configs() map[string]forkjoin.Config {
	var cfg forkjoin.Config
	return map[string]forkjoin.Config{
		"hint0":     cfg.WithHint(func() int { return 0 }),
		"hint1":     cfg.WithHint(func() int { return 1 }),
		"workers3":  cfg.WithWorkers(3),
		"workers16": cfg.WithWorkers(16),
		"inline":    cfg.WithWorkers(4).WithExecutor(task.Inline),
		"bounded":   cfg.WithWorkers(8).WithExecutor(task.NewBounded(2)),
	}
}

func TestForVisitsEachIndexOnce(t *testing.T) {
	for name, cfg := range configs() {
		for _, policy := range policies {
			t.Run(name+"/"+policy.String(), func(t *testing.T) {
				for _, size := range []int{0, 1, 2, 7, 100, 1001} {
					counts := make([]int32, size+10)
					parallel.For(cfg, policy, 5, 5+size, func(i int) {
						atomic.AddInt32(&counts[i], 1)
					})
					for i, c := range counts {
						want := int32(0)
						if i >= 5 && i < 5+size {
							want = 1
						}
						require.Equal(t, want, c, "index %v, size %v", i, size)
					}
				}
			})
		}
	}
}

func TestForInvertedRange(t *testing.T) {
	var cfg forkjoin.Config
	parallel.For(cfg, forkjoin.Parallel, 10, 3, func(int) {
		t.Error("f invoked for inverted range")
	})
	parallel.For[uint](cfg, forkjoin.Parallel, 10, 3, func(uint) {
		t.Error("f invoked for inverted range")
	})
}

func TestForSquares(t *testing.T) {
	out := make([]int, 10)
	parallel.For(forkjoin.Config{}, forkjoin.Serial, 0, 10, func(i int) {
		out[i] = i * i
	})
	assert.Equal(t, []int{0, 1, 4, 9, 16, 25, 36, 49, 64, 81}, out)
}

func TestInvalidPolicy(t *testing.T) {
	assert.PanicsWithValue(t, "invalid execution policy: ExecutionPolicy(0)", func() {
		parallel.For(forkjoin.Config{}, 0, 0, 10, func(int) {})
	})
}

func TestForRangeSlices(t *testing.T) {
	var calls atomic.Int32
	covered := make([]int32, 100)
	parallel.ForRange(forkjoin.Config{}.WithWorkers(8), forkjoin.Parallel, 0, 100, func(low, high int) {
		calls.Add(1)
		for i := low; i < high; i++ {
			atomic.AddInt32(&covered[i], 1)
		}
	})
	assert.EqualValues(t, 8, calls.Load())
	for i, c := range covered {
		assert.EqualValues(t, 1, c, "index %v", i)
	}

	calls.Store(0)
	parallel.ForRange(forkjoin.Config{}.WithWorkers(8), forkjoin.Serial, 0, 100, func(low, high int) {
		calls.Add(1)
		assert.Equal(t, 0, low)
		assert.Equal(t, 100, high)
	})
	assert.EqualValues(t, 1, calls.Load())
}

func TestForRangeErr(t *testing.T) {
	errOdd := errors.New("odd slice")
	cfg := forkjoin.Config{}.WithWorkers(4)

	err := parallel.ForRangeErr(cfg, forkjoin.Parallel, 0, 40, func(low, high int) error {
		return nil
	})
	assert.NoError(t, err)

	err = parallel.ForRangeErr(cfg, forkjoin.Parallel, 0, 40, func(low, high int) error {
		if (low/10)%2 == 1 {
			return fmt.Errorf("slice %d: %w", low, errOdd)
		}
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errOdd)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "slice 10")
	assert.Contains(t, errs[1].Error(), "slice 30")
}

func TestPanicPropagation(t *testing.T) {
	errBoom := errors.New("boom")
	var finished atomic.Int32
	p := func() (p interface{}) {
		defer func() { p = recover() }()
		parallel.ForRange(forkjoin.Config{}.WithWorkers(4), forkjoin.Parallel, 0, 4, func(low, high int) {
			if low == 1 {
				panic(errBoom)
			}
			finished.Add(1)
		})
		return nil
	}()
	err, ok := p.(error)
	require.True(t, ok, "expected error panic, got %v", p)
	assert.ErrorIs(t, err, errBoom)
	assert.EqualValues(t, 3, finished.Load())
}

func TestFill(t *testing.T) {
	for name, cfg := range configs() {
		for _, policy := range policies {
			s := make([]string, 123)
			parallel.Fill(cfg, policy, s, "x")
			for i, v := range s {
				require.Equal(t, "x", v, "%v/%v index %v", name, policy, i)
			}
		}
	}
	parallel.Fill(forkjoin.Config{}, forkjoin.Parallel, []int(nil), 1)
}

func TestFor2D(t *testing.T) {
	for _, policy := range policies {
		grid := make([][]int32, 7)
		for j := range grid {
			grid[j] = make([]int32, 5)
		}
		parallel.For2D(forkjoin.Config{}.WithWorkers(3), policy, 1, 4, 2, 7, func(i, j int) {
			atomic.AddInt32(&grid[j][i], 1)
		})
		for j := range grid {
			for i := range grid[j] {
				want := int32(0)
				if i >= 1 && i < 4 && j >= 2 && j < 7 {
					want = 1
				}
				assert.Equal(t, want, grid[j][i], "%v (%v,%v)", policy, i, j)
			}
		}
	}
}

func TestForRange2D(t *testing.T) {
	var cells atomic.Int32
	parallel.ForRange2D(forkjoin.Config{}.WithWorkers(4), forkjoin.Parallel, 0, 3, 0, 8,
		func(beginX, endX, beginY, endY int) {
			assert.Equal(t, 0, beginX)
			assert.Equal(t, 3, endX)
			cells.Add(int32((endX - beginX) * (endY - beginY)))
		})
	assert.EqualValues(t, 24, cells.Load())
}

func TestFor3D(t *testing.T) {
	const nx, ny, nz = 4, 3, 5
	var box [nz][ny][nx]int32
	parallel.For3D(forkjoin.Config{}.WithWorkers(2), forkjoin.Parallel, 0, nx, 0, ny, 0, nz, func(i, j, k int) {
		atomic.AddInt32(&box[k][j][i], 1)
	})
	for k := range box {
		for j := range box[k] {
			for i := range box[k][j] {
				assert.EqualValues(t, 1, box[k][j][i])
			}
		}
	}

	var cells atomic.Int32
	parallel.ForRange3D(forkjoin.Config{}.WithWorkers(2), forkjoin.Parallel, 0, nx, 0, ny, 0, nz,
		func(beginX, endX, beginY, endY, beginZ, endZ int) {
			cells.Add(int32((endX - beginX) * (endY - beginY) * (endZ - beginZ)))
		})
	assert.EqualValues(t, nx*ny*nz, cells.Load())
}

func sumRange(low, high int, acc int) int {
	for i := low; i < high; i++ {
		acc += i
	}
	return acc
}

func add(partial, acc int) int { return partial + acc }

func TestReduceSum(t *testing.T) {
	got := parallel.Reduce(forkjoin.Config{}, forkjoin.Parallel, 0, 100, 0, sumRange, add)
	assert.Equal(t, 4950, got)

	for name, cfg := range configs() {
		for _, policy := range policies {
			assert.Equal(t, 4950, parallel.Reduce(cfg, policy, 0, 100, 0, sumRange, add), "%v/%v", name, policy)
		}
	}
}

func TestReduceEmpty(t *testing.T) {
	assert.Equal(t, -1, parallel.Reduce(forkjoin.Config{}, forkjoin.Parallel, 5, 5, -1, sumRange, add))
	assert.Equal(t, -1, parallel.Reduce(forkjoin.Config{}, forkjoin.Parallel, 9, 5, -1, sumRange, add))
}

func TestReduceSingleElement(t *testing.T) {
	mapFn := func(low, high int, identity string) string {
		return identity + "<" + strconv.Itoa(low) + ">"
	}
	combine := func(partial, acc string) string { return "(" + partial + "," + acc + ")" }
	for _, policy := range policies {
		got := parallel.Reduce(forkjoin.Config{}, policy, 7, 8, "id", mapFn, combine)
		assert.Equal(t, combine(mapFn(7, 8, "id"), "id"), got)
	}
}

func TestReducePartitionOrder(t *testing.T) {
	// A non-commutative join exposes the combination order: each partial
	// is prepended to the accumulator.
	cfg := forkjoin.Config{}.WithWorkers(4)
	got := parallel.Reduce(cfg, forkjoin.Parallel, 0, 10, "",
		func(low, high int, _ string) string { return fmt.Sprintf("[%d,%d)", low, high) },
		func(partial, acc string) string { return partial + acc },
	)
	assert.Equal(t, "[9,10)[6,9)[3,6)[0,3)", got)
}

func TestReduceDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	data := make([]float64, 100000)
	for i := range data {
		data[i] = r.NormFloat64() * 1e6
	}
	cfg := forkjoin.Config{}.WithWorkers(16)
	sum := func() float64 {
		return parallel.ReduceSum(cfg, forkjoin.Parallel, 0, len(data), func(low, high int) float64 {
			return floats.Sum(data[low:high])
		})
	}
	first := sum()
	for i := 0; i < 20; i++ {
		require.Equal(t, first, sum(), "run %v", i)
	}
	assert.InDelta(t, floats.Sum(data), first, 1e-3)
}

func TestReduceSumStrings(t *testing.T) {
	got := parallel.ReduceSum(forkjoin.Config{}.WithWorkers(3), forkjoin.Parallel, 0, 9, func(low, high int) string {
		var s string
		for i := low; i < high; i++ {
			s += strconv.Itoa(i)
		}
		return s
	})
	assert.Equal(t, "012345678", got)
}

func TestDebugLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	cfg := forkjoin.Config{}.WithWorkers(4).WithLogger(zap.New(core))
	parallel.For(cfg, forkjoin.Parallel, 0, 100, func(int) {})
	entries := logs.FilterMessage("partitioned domain").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "For", fields["op"])
	assert.EqualValues(t, 4, fields["partitions"])
}

func BenchmarkReduce(b *testing.B) {
	data := make([]float64, 1<<20)
	for i := range data {
		data[i] = float64(i)
	}
	for _, policy := range policies {
		b.Run(policy.String(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				parallel.ReduceSum(forkjoin.Config{}, policy, 0, len(data), func(low, high int) float64 {
					return floats.Sum(data[low:high])
				})
			}
		})
	}
}
