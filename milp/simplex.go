// SPDX-License-Identifier: MIT

// Package milp - bounded-variable dual simplex for node relaxations.
//
// Every model row i becomes an equation a_i·x − r_i = 0 over one extra
// "activity" column r_i whose bounds carry the relation:
//   - LessEq:    r_i ∈ (−∞, rhs],
//   - GreaterEq: r_i ∈ [rhs, +∞),
//   - Equal:     r_i ∈ [rhs, rhs] (one row, no slack pair).
//
// The activity columns form the starting basis, so the working matrix
// always has full row rank. Each nonbasic column sits at one of its
// bounds on the side its reduced cost prefers, which makes the slack
// basis dual feasible from the start; the dual simplex then repairs
// primal feasibility. Structural columns without an upper bound get an
// artificial one (lo+artBound); an optimum that rests on it means the
// LP is unbounded.
//
// Design:
//   - Dense tableau T = B⁻¹A with an explicit reduced-cost row d.
//   - Bound changes and appended rows keep d intact, so a child node or
//     a new cut resumes from the parent basis with a few dual pivots.
//   - Harris ratio test; Bland's rule after a run of degenerate pivots.
//   - Iteration cap per call (ErrNumerical) and a context/deadline check
//     every checkEvery pivots (ErrLimitReached).
//   - Periodic refactorisation from the original rows limits drift.
package milp

import (
	"context"
	"math"
	"time"

	"github.com/juju/errors"
	"gonum.org/v1/gonum/floats"
)

const (
	artBound      = 1e7   // artificial width for columns with Hi = +Inf
	pivTol        = 1e-9  // smallest usable |T_rq|
	dualTol       = 1e-9  // Harris slack on reduced costs
	degenLimit    = 50    // degenerate pivots before switching to Bland
	checkEvery    = 64    // pivots between limit checks
	refactorEvery = 2000  // pivots between refactorisations
	singularTol   = 1e-11 // pivot floor during refactorisation
)

// Column states.
const (
	atLower int8 = iota
	atUpper
	basic
)

// sparseRow is one original row over all columns, activity column included.
type sparseRow struct {
	idx []int
	val []float64
}

// simplex is the LP of one search node. The zero value is not usable;
// build it with newSimplex and copy it with clone.
type simplex struct {
	nx  int     // structural columns; activity column of row i is nx+i
	tol float64 // primal feasibility tolerance

	cost   []float64 // minimisation costs per column
	lo, hi []float64
	art    []bool // hi is artificial
	state  []int8
	val    []float64 // current value of every column

	head []int       // head[i]: basic column of row i
	tab  [][]float64 // B⁻¹A, one dense row per constraint
	d    []float64   // reduced costs

	rows   []sparseRow
	pivots int // since the last refactorisation
	cuts   int // pool cuts appended to this LP
}

// newSimplex builds the slack-basis LP of m under its own bounds.
func newSimplex(m *Model, tol float64) *simplex {
	nv := len(m.vars)
	sign := 1.0
	if m.sense == Maximize {
		sign = -1
	}
	s := &simplex{
		nx:    nv,
		tol:   tol,
		cost:  make([]float64, nv, nv+len(m.cons)),
		lo:    make([]float64, nv, nv+len(m.cons)),
		hi:    make([]float64, nv, nv+len(m.cons)),
		art:   make([]bool, nv, nv+len(m.cons)),
		state: make([]int8, nv, nv+len(m.cons)),
		val:   make([]float64, nv, nv+len(m.cons)),
		d:     make([]float64, nv, nv+len(m.cons)),
	}
	for k, v := range m.vars {
		s.cost[k] = sign * v.Obj
		s.d[k] = s.cost[k]
		s.setBounds(k, v.Lo, v.Hi)
	}
	for _, c := range m.cons {
		s.addRow(c.Terms, c.Rel, c.RHS)
	}
	return s
}

// clone returns an independent copy.
func (s *simplex) clone() *simplex {
	c := *s
	c.cost = append([]float64(nil), s.cost...)
	c.lo = append([]float64(nil), s.lo...)
	c.hi = append([]float64(nil), s.hi...)
	c.art = append([]bool(nil), s.art...)
	c.state = append([]int8(nil), s.state...)
	c.val = append([]float64(nil), s.val...)
	c.head = append([]int(nil), s.head...)
	c.d = append([]float64(nil), s.d...)
	c.tab = make([][]float64, len(s.tab))
	for i, r := range s.tab {
		c.tab[i] = append([]float64(nil), r...)
	}
	// Original rows are never mutated after creation.
	c.rows = append([]sparseRow(nil), s.rows...)
	return &c
}

// setBounds moves column k to [lo, hi]. A nonbasic column follows its
// bound and the basic values are updated; a basic column may become
// primal infeasible, which the next solve repairs.
func (s *simplex) setBounds(k int, lo, hi float64) {
	s.art[k] = false
	if math.IsInf(hi, 1) {
		hi, s.art[k] = lo+artBound, true
	}
	s.lo[k], s.hi[k] = lo, hi

	var target float64
	switch {
	case len(s.head) == 0 && s.state[k] != basic:
		// Initial placement, before any row exists.
		if s.cost[k] < 0 {
			s.state[k], s.val[k] = atUpper, hi
		} else {
			s.state[k], s.val[k] = atLower, lo
		}
		return
	case s.state[k] == atLower:
		target = lo
	case s.state[k] == atUpper:
		target = hi
	default:
		return
	}
	delta := target - s.val[k]
	if delta == 0 {
		return
	}
	for i, b := range s.head {
		if a := s.tab[i][k]; a != 0 {
			s.val[b] -= a * delta
		}
	}
	s.val[k] = target
}

// addRow appends Σ terms rel rhs with a fresh basic activity column.
func (s *simplex) addRow(terms []Term, rel Relation, rhs float64) {
	j := len(s.cost)
	for i := range s.tab {
		s.tab[i] = append(s.tab[i], 0)
	}
	lo, hi := math.Inf(-1), math.Inf(1)
	switch rel {
	case LessEq:
		hi = rhs
	case GreaterEq:
		lo = rhs
	case Equal:
		lo, hi = rhs, rhs
	}
	s.cost = append(s.cost, 0)
	s.lo = append(s.lo, lo)
	s.hi = append(s.hi, hi)
	s.art = append(s.art, false)
	s.state = append(s.state, basic)
	s.val = append(s.val, 0)
	s.d = append(s.d, 0)

	orig := sparseRow{idx: make([]int, 0, len(terms)+1), val: make([]float64, 0, len(terms)+1)}
	row := make([]float64, j+1)
	for _, t := range terms {
		row[t.Var] += t.Coef
		orig.idx = append(orig.idx, t.Var)
		orig.val = append(orig.val, t.Coef)
	}
	row[j] = -1
	orig.idx = append(orig.idx, j)
	orig.val = append(orig.val, -1)
	s.rows = append(s.rows, orig)

	// Express the row in the current basis.
	for i, b := range s.head {
		if a := row[b]; a != 0 {
			floats.AddScaled(row, -a, s.tab[i])
			row[b] = 0
		}
	}
	floats.Scale(-1, row)
	s.tab = append(s.tab, row)
	s.head = append(s.head, j)
	s.val[j] = -floats.Dot(row, s.val)
}

// solve runs dual simplex pivots until the basis is primal feasible.
func (s *simplex) solve(ctx context.Context, deadline time.Time) error {
	maxIter := 50*(len(s.head)+len(s.cost)) + 1000
	degenerate := 0
	bland := false
	fresh := false // basic values were just recomputed
	for it := 0; ; it++ {
		if it%checkEvery == checkEvery-1 {
			if err := ctx.Err(); err != nil {
				return errors.Annotatef(ErrLimitReached, "context: %v", err)
			}
			if !deadline.IsZero() && time.Now().After(deadline) {
				return errors.Annotate(ErrLimitReached, "time limit inside LP")
			}
		}
		if it >= maxIter {
			return errors.Annotatef(ErrNumerical, "no convergence after %d pivots", it)
		}
		if s.pivots >= refactorEvery {
			if err := s.refactor(); err != nil {
				return err
			}
		}

		r, below := s.leaving(bland)
		if r < 0 && fresh {
			return nil
		}
		if r < 0 {
			// Confirm against freshly computed basic values.
			s.recompute()
			fresh = true
			continue
		}
		q := s.entering(r, below, bland)
		if q < 0 && fresh {
			return ErrInfeasible
		}
		if q < 0 {
			s.recompute()
			fresh = true
			continue
		}
		fresh = false
		if math.Abs(s.d[q]) <= dualTol*math.Abs(s.tab[r][q]) {
			degenerate++
			if degenerate > degenLimit {
				bland = true
			}
		} else {
			degenerate, bland = 0, false
		}
		s.pivot(r, q, below)
	}
}

// leaving picks the basic row with the largest bound violation, or the
// lowest violating column under Bland's rule. It returns -1 when the
// basis is primal feasible.
func (s *simplex) leaving(bland bool) (int, bool) {
	best, bestViol, below := -1, 0.0, false
	for i, b := range s.head {
		v := s.val[b]
		var viol float64
		var under bool
		if t := s.lo[b]; v < t-s.tol*(1+math.Abs(t)) {
			viol, under = t-v, true
		} else if t = s.hi[b]; v > t+s.tol*(1+math.Abs(t)) {
			viol = v - t
		} else {
			continue
		}
		if bland {
			if best < 0 || b < s.head[best] {
				best, below = i, under
			}
			continue
		}
		if viol > bestViol {
			best, bestViol, below = i, viol, under
		}
	}
	return best, below
}

// entering runs the Harris ratio test on row r. below says the leaving
// column must rise to its lower bound.
func (s *simplex) entering(r int, below, bland bool) int {
	row := s.tab[r]
	dir := 1.0
	if !below {
		dir = -1
	}
	// eligible returns the sign-corrected |d_j| and |T_rj| of a candidate.
	eligible := func(j int) (float64, float64, bool) {
		if s.state[j] == basic || s.lo[j] == s.hi[j] {
			return 0, 0, false
		}
		a := dir * row[j]
		switch {
		case s.state[j] == atLower && a < -pivTol:
			return math.Max(s.d[j], 0), -a, true
		case s.state[j] == atUpper && a > pivTol:
			return -math.Min(s.d[j], 0), a, true
		}
		return 0, 0, false
	}

	bound := math.Inf(1)
	for j := range row {
		if dj, a, ok := eligible(j); ok {
			bound = math.Min(bound, (dj+dualTol)/a)
		}
	}
	if math.IsInf(bound, 1) {
		return -1
	}

	q, qa := -1, 0.0
	for j := range row {
		dj, a, ok := eligible(j)
		if !ok || dj/a > bound {
			continue
		}
		if bland {
			// Columns are scanned in index order.
			return j
		}
		if a > qa {
			q, qa = j, a
		}
	}
	return q
}

// pivot brings q into the basis at row r; the leaving column settles on
// the bound it violated.
func (s *simplex) pivot(r, q int, below bool) {
	leave := s.head[r]
	target := s.hi[leave]
	s.state[leave] = atUpper
	if below {
		target = s.lo[leave]
		s.state[leave] = atLower
	}

	alpha := s.tab[r][q]
	delta := (s.val[leave] - target) / alpha
	for i, b := range s.head {
		if a := s.tab[i][q]; a != 0 {
			s.val[b] -= a * delta
		}
	}
	s.val[q] += delta
	s.val[leave] = target

	prow := s.tab[r]
	floats.Scale(1/alpha, prow)
	prow[q] = 1
	for i, row := range s.tab {
		if i == r {
			continue
		}
		if f := row[q]; f != 0 {
			floats.AddScaled(row, -f, prow)
			row[q] = 0
		}
	}
	if f := s.d[q]; f != 0 {
		floats.AddScaled(s.d, -f, prow)
		s.d[q] = 0
	}

	s.head[r] = q
	s.state[q] = basic
	s.pivots++
}

// recompute snaps nonbasic columns onto their bounds and derives the
// basic values from them.
func (s *simplex) recompute() {
	for j, st := range s.state {
		switch st {
		case atLower:
			s.val[j] = s.lo[j]
		case atUpper:
			s.val[j] = s.hi[j]
		}
	}
	for i, b := range s.head {
		var sum float64
		for j, a := range s.tab[i] {
			if a != 0 && s.state[j] != basic {
				sum += a * s.val[j]
			}
		}
		s.val[b] = -sum
	}
}

// refactor rebuilds the tableau and reduced costs of the current basis
// from the original rows by Gauss–Jordan elimination.
func (s *simplex) refactor() error {
	m, nc := len(s.rows), len(s.cost)
	tab := make([][]float64, m)
	for i, r := range s.rows {
		tab[i] = make([]float64, nc)
		for k, j := range r.idx {
			tab[i][j] += r.val[k]
		}
	}

	head := make([]int, m)
	done := make([]bool, m)
	for _, col := range s.head {
		p, pa := -1, singularTol
		for i := range tab {
			if a := math.Abs(tab[i][col]); !done[i] && a > pa {
				p, pa = i, a
			}
		}
		if p < 0 {
			return errors.Annotatef(ErrNumerical, "singular basis at column %d", col)
		}
		prow := tab[p]
		floats.Scale(1/prow[col], prow)
		prow[col] = 1
		for i, row := range tab {
			if i == p {
				continue
			}
			if f := row[col]; f != 0 {
				floats.AddScaled(row, -f, prow)
				row[col] = 0
			}
		}
		done[p], head[p] = true, col
	}

	d := append([]float64(nil), s.cost...)
	for i, b := range head {
		if c := s.cost[b]; c != 0 {
			floats.AddScaled(d, -c, tab[i])
		}
	}
	for _, b := range head {
		d[b] = 0
	}

	s.tab, s.head, s.d = tab, head, d
	s.pivots = 0
	s.recompute()
	return nil
}

// primal returns the structural values clipped into their bounds, or
// ErrUnbounded when a column rests on its artificial bound.
func (s *simplex) primal() ([]float64, error) {
	x := make([]float64, s.nx)
	for k := range x {
		v := s.val[k]
		if s.art[k] && v > s.lo[k]+artBound/2 {
			return nil, errors.Annotatef(ErrUnbounded, "column %d", k)
		}
		x[k] = math.Max(v, s.lo[k])
		if !s.art[k] {
			x[k] = math.Min(x[k], s.hi[k])
		}
	}
	return x, nil
}
