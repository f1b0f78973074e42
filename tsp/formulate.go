// SPDX-License-Identifier: MIT

package tsp

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/liam-crow/stats-blog/matrix"
	"github.com/liam-crow/stats-blog/milp"
)

// anchor is the vertex that fixes the MTZ ordering.
const anchor = 0

// Formulation is the MTZ model of one instance together with the maps
// between model variables and arcs.
type Formulation struct {
	model *milp.Model
	n     int
	obj   Objective

	xIdx []int // n×n row-major, -1 on the diagonal
	uIdx []int // per vertex, -1 for the anchor
	arcs []Arc // variable index -> arc, valid for x variables only
}

// Formulate builds the MTZ model of dist under obj.
//
// Variables are created in row-major order of (i, j) for x, followed by
// u[1..n-1]. Rows: n out-degree rows, n in-degree rows, then one MTZ row
// per ordered pair of non-anchor vertices.
//
// Errors:
//   - ErrInvalidInput for an invalid matrix or objective,
//   - ErrInfeasible for n < 3.
//
// Complexity: O(n²) variables and rows.
func Formulate(dist matrix.Matrix, obj Objective) (*Formulation, error) {
	if err := validateObjective(obj); err != nil {
		return nil, err
	}
	n, err := validateDist(dist)
	if err != nil {
		return nil, err
	}
	if n < 3 {
		return nil, errors.Annotatef(ErrInfeasible, "n=%d, a tour needs at least 3 vertices", n)
	}

	f := &Formulation{
		model: milp.NewModel(fmt.Sprintf("tsp-mtz-%s-%d", obj, n), obj.sense()),
		n:     n,
		obj:   obj,
		xIdx:  make([]int, n*n),
		uIdx:  make([]int, n),
	}

	var (
		i, j int
		k    int
		d    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				f.xIdx[i*n+j] = -1
				continue
			}
			if d, err = dist.At(i, j); err != nil {
				return nil, errors.Trace(err)
			}
			if k, err = f.model.AddVar(fmt.Sprintf("x_%d_%d", i, j), 0, 1, milp.Binary, d); err != nil {
				return nil, errors.Trace(err)
			}
			f.xIdx[i*n+j] = k
			f.setArc(k, Arc{From: i, To: j})
		}
	}
	f.uIdx[anchor] = -1
	for i = 1; i < n; i++ {
		if k, err = f.model.AddVar(fmt.Sprintf("u_%d", i), 2, float64(n), milp.Continuous, 0); err != nil {
			return nil, errors.Trace(err)
		}
		f.uIdx[i] = k
	}

	if err = f.addDegreeRows(); err != nil {
		return nil, err
	}
	if err = f.addMTZRows(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *Formulation) setArc(k int, a Arc) {
	for len(f.arcs) <= k {
		f.arcs = append(f.arcs, Arc{From: -1, To: -1})
	}
	f.arcs[k] = a
}

// addDegreeRows adds Σ_j x[i][j] = 1 and Σ_i x[i][j] = 1.
func (f *Formulation) addDegreeRows() error {
	var (
		n     = f.n
		i, j  int
		terms = make([]milp.Term, 0, n-1)
	)
	for i = 0; i < n; i++ {
		terms = terms[:0]
		for j = 0; j < n; j++ {
			if i != j {
				terms = append(terms, milp.Term{Var: f.xIdx[i*n+j], Coef: 1})
			}
		}
		if _, err := f.model.AddConstraint(fmt.Sprintf("out_%d", i), terms, milp.Equal, 1); err != nil {
			return errors.Trace(err)
		}
	}
	for j = 0; j < n; j++ {
		terms = terms[:0]
		for i = 0; i < n; i++ {
			if i != j {
				terms = append(terms, milp.Term{Var: f.xIdx[i*n+j], Coef: 1})
			}
		}
		if _, err := f.model.AddConstraint(fmt.Sprintf("in_%d", j), terms, milp.Equal, 1); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// addMTZRows adds u[i] − u[j] + (n−1)·x[i][j] ≤ n−2 for i ≠ j, both non-anchor.
func (f *Formulation) addMTZRows() error {
	var (
		n    = f.n
		bigM = float64(n - 1)
		i, j int
	)
	for i = 1; i < n; i++ {
		for j = 1; j < n; j++ {
			if i == j {
				continue
			}
			terms := []milp.Term{
				{Var: f.uIdx[i], Coef: 1},
				{Var: f.uIdx[j], Coef: -1},
				{Var: f.xIdx[i*n+j], Coef: bigM},
			}
			if _, err := f.model.AddConstraint(fmt.Sprintf("mtz_%d_%d", i, j), terms, milp.LessEq, float64(n-2)); err != nil {
				return errors.Trace(err)
			}
		}
	}
	return nil
}

// Model returns the underlying MILP.
func (f *Formulation) Model() *milp.Model { return f.model }

// N returns the number of vertices.
func (f *Formulation) N() int { return f.n }

// Objective returns the direction the model was built with.
func (f *Formulation) Objective() Objective { return f.obj }

// Anchor returns the vertex without an ordering variable.
func (f *Formulation) Anchor() int { return anchor }

// XIndex returns the variable index of x[i][j], or -1 for i == j or an
// out-of-range pair.
func (f *Formulation) XIndex(i, j int) int {
	if i < 0 || j < 0 || i >= f.n || j >= f.n {
		return -1
	}
	return f.xIdx[i*f.n+j]
}

// UIndex returns the variable index of u[i], or -1 for the anchor or an
// out-of-range vertex.
func (f *Formulation) UIndex(i int) int {
	if i < 0 || i >= f.n {
		return -1
	}
	return f.uIdx[i]
}

// ArcOf maps a variable index back to its arc. ok is false for u variables.
func (f *Formulation) ArcOf(k int) (a Arc, ok bool) {
	if k < 0 || k >= len(f.arcs) || f.arcs[k].From < 0 {
		return Arc{}, false
	}
	return f.arcs[k], true
}

// SelectedArcs returns the arcs whose x value exceeds 0.5, in variable order.
func (f *Formulation) SelectedArcs(values []float64) []Arc {
	out := make([]Arc, 0, f.n)
	for k, a := range f.arcs {
		if a.From < 0 || k >= len(values) {
			continue
		}
		if values[k] > 0.5 {
			out = append(out, a)
		}
	}
	return out
}
