// SPDX-License-Identifier: MIT

// Package tsp - subtour elimination cuts for the MTZ search.
//
// The MTZ rows already make every integer point a single tour, but their
// LP bound is weak. SubtourCuts separates the classic rows
//
//	Σ_{i,j ∈ S, i≠j} x[i][j] ≤ |S| − 1,   2 ≤ |S| ≤ n−1,
//
// which hold for every tour, from a fractional relaxation point:
//   - 2-cycles: x[i][j] + x[j][i] > 1,
//   - disconnected support: one row per connected component,
//   - otherwise a global minimum cut (Stoer–Wagner) on the symmetric
//     weights x[i][j] + x[j][i] below 2.
//
// Design:
//   - Each row is written over the smaller side of the cut.
//   - O(n³) per call; no state is kept between calls.
package tsp

import (
	"fmt"
	"math"

	"github.com/liam-crow/stats-blog/milp"
)

// sepEps is the violation below which a cut is not reported.
const sepEps = 1e-6

// SubtourCuts returns subtour elimination rows violated by the relaxation
// point x (one value per model variable). It satisfies milp.Separator.
func (f *Formulation) SubtourCuts(x []float64) []milp.Constraint {
	n := f.n
	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := x[f.xIdx[i*n+j]] + x[f.xIdx[j*n+i]]
			w[i][j], w[j][i] = s, s
		}
	}

	var cuts []milp.Constraint
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if w[i][j] > 1+sepEps {
				cuts = append(cuts, f.subtourRow([]int{i, j}))
			}
		}
	}

	if comps := components(w); len(comps) > 1 {
		for _, c := range comps {
			cuts = append(cuts, f.subtourRow(c))
		}
		return cuts
	}

	if value, side := minCut(w); value < 2-sepEps {
		cuts = append(cuts, f.subtourRow(side))
	}
	return cuts
}

// subtourRow writes the row for S, or for its complement when smaller.
func (f *Formulation) subtourRow(s []int) milp.Constraint {
	if 2*len(s) > f.n {
		in := make([]bool, f.n)
		for _, v := range s {
			in[v] = true
		}
		rest := make([]int, 0, f.n-len(s))
		for v := 0; v < f.n; v++ {
			if !in[v] {
				rest = append(rest, v)
			}
		}
		s = rest
	}
	terms := make([]milp.Term, 0, len(s)*(len(s)-1))
	for _, i := range s {
		for _, j := range s {
			if i != j {
				terms = append(terms, milp.Term{Var: f.xIdx[i*f.n+j], Coef: 1})
			}
		}
	}
	return milp.Constraint{
		Name:  fmt.Sprintf("sec_%v", s),
		Terms: terms,
		Rel:   milp.LessEq,
		RHS:   float64(len(s) - 1),
	}
}

// components returns the connected components of the support of w.
func components(w [][]float64) [][]int {
	n := len(w)
	seen := make([]bool, n)
	var out [][]int
	for s := 0; s < n; s++ {
		if seen[s] {
			continue
		}
		comp := []int{s}
		seen[s] = true
		for q := 0; q < len(comp); q++ {
			u := comp[q]
			for v := 0; v < n; v++ {
				if !seen[v] && w[u][v] > sepEps {
					seen[v] = true
					comp = append(comp, v)
				}
			}
		}
		out = append(out, comp)
	}
	return out
}

// minCut is Stoer–Wagner on the symmetric weights w. It returns the cut
// value and the vertices of one side.
//
// Complexity: O(n³) time, O(n²) space.
func minCut(w [][]float64) (float64, []int) {
	n := len(w)
	g := make([][]float64, n)
	groups := make([][]int, n)
	active := make([]int, n)
	for i := range g {
		g[i] = append([]float64(nil), w[i]...)
		groups[i] = []int{i}
		active[i] = i
	}

	best := math.Inf(1)
	var side []int
	added := make([]bool, n)
	conn := make([]float64, n)
	for len(active) > 1 {
		for _, v := range active {
			added[v], conn[v] = false, 0
		}
		// Maximum adjacency order; the last two vertices are merged.
		prev, last := -1, -1
		for k := 0; k < len(active); k++ {
			sel := -1
			for _, v := range active {
				if !added[v] && (sel < 0 || conn[v] > conn[sel]) {
					sel = v
				}
			}
			added[sel] = true
			prev, last = last, sel
			for _, v := range active {
				if !added[v] {
					conn[v] += g[sel][v]
				}
			}
		}

		if conn[last] < best {
			best = conn[last]
			side = append([]int(nil), groups[last]...)
		}
		groups[prev] = append(groups[prev], groups[last]...)
		for _, v := range active {
			g[prev][v] += g[last][v]
			g[v][prev] = g[prev][v]
		}
		g[prev][prev] = 0

		for k, v := range active {
			if v == last {
				active = append(active[:k], active[k+1:]...)
				break
			}
		}
	}
	return best, side
}
