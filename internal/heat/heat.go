// Package heat implements a simplified heat distribution simulation on a
// square plate, based on an implementation by Wilfried Verachtert. It
// serves as a realistic consumer of the parallel primitives.
//
// See https://en.wikipedia.org/wiki/Heat_equation for some theoretical
// background.
package heat

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/exascience/forkjoin"
	"github.com/exascience/forkjoin/parallel"
)

// Borders holds the fixed temperatures of the four edges of the plate.
type Borders struct {
	Top, Right, Bottom, Left float64
}

// A Simulation holds two grids with a one-cell border, which are updated
// alternately.
type Simulation struct {
	cfg    forkjoin.Config
	policy forkjoin.ExecutionPolicy
	u, v   *mat.Dense
}

// New returns a simulation of an m by n plate with the given initial
// temperature and border temperatures.
func New(cfg forkjoin.Config, policy forkjoin.ExecutionPolicy, m, n int, init float64, b Borders) *Simulation {
	// ensure a border
	m += 2
	n += 2

	data := make([]float64, m*n)
	parallel.Fill(cfg, policy, data, init)
	u := mat.NewDense(m, n, data)

	for i := 0; i < n; i++ {
		u.Set(0, i, b.Top)
		u.Set(m-1, i, b.Bottom)
	}
	for i := 0; i < m; i++ {
		u.Set(i, 0, b.Left)
		u.Set(i, n-1, b.Right)
	}

	v := mat.NewDense(m, n, nil)
	v.Copy(u)
	return &Simulation{cfg: cfg, policy: policy, u: u, v: v}
}

// step computes one Jacobi iteration from v into u, row slices in
// parallel.
func (s *Simulation) step(u, v *mat.Dense) {
	rows, cols := u.Dims()
	parallel.ForRange2D(s.cfg, s.policy, 1, cols-1, 1, rows-1, func(colLow, colHigh, rowLow, rowHigh int) {
		for row := rowLow; row < rowHigh; row++ {
			uRow := u.RawRowView(row)
			vRow := v.RawRowView(row)
			vRowUp := v.RawRowView(row - 1)
			vRowDn := v.RawRowView(row + 1)
			for col := colLow; col < colHigh; col++ {
				uRow[col] = (vRowUp[col] + vRowDn[col] + vRow[col-1] + vRow[col+1]) / 4.0
			}
		}
	})
}

// Step runs the given number of iteration pairs.
func (s *Simulation) Step(pairs int) {
	for i := 0; i < pairs; i++ {
		s.step(s.v, s.u)
		s.step(s.u, s.v)
	}
}

// MaxDiff returns the largest absolute difference between the interior
// cells of the two grids.
func (s *Simulation) MaxDiff() float64 {
	rows, cols := s.u.Dims()
	return parallel.Reduce(s.cfg, s.policy, 1, rows-1, 0.0,
		func(low, high int, result float64) float64 {
			for row := low; row < high; row++ {
				r1 := s.u.RawRowView(row)
				r2 := s.v.RawRowView(row)
				for col := 1; col < cols-1; col++ {
					result = math.Max(result, math.Abs(r1[col]-r2[col]))
				}
			}
			return result
		},
		math.Max,
	)
}

// At returns the current temperature of cell (i, j) of the interior,
// counting from 0.
func (s *Simulation) At(i, j int) float64 {
	return s.u.At(i+1, j+1)
}

// Run iterates until the maximum difference between two iterations drops
// below epsilon, checking every batch iteration pairs, and returns the
// number of iterations performed and the final difference. It stops after
// maxIterations if that is positive.
func (s *Simulation) Run(epsilon float64, batch, maxIterations int) (iterations int, delta float64) {
	for delta = epsilon + 1; delta >= epsilon; {
		s.Step(batch)
		iterations += 2 * batch
		delta = s.MaxDiff()
		if maxIterations > 0 && iterations >= maxIterations {
			break
		}
	}
	return
}
