// SPDX-License-Identifier: MIT

package tsp

import "github.com/juju/errors"

// Reconstruct turns the selected arcs of a solution into a closed tour.
//
// The walk starts at arcs[0].From and follows the unique outgoing arc of
// each vertex until it returns. The result has length n+1 with
// tour[0] == tour[n] == arcs[0].From.
//
// ErrMalformedSolution is returned when len(arcs) != n, an endpoint is
// out of range, an arc is a self-loop, some vertex has out- or in-degree
// other than 1, or the walk closes before visiting all n vertices.
//
// Complexity: O(n) time, O(n) space.
func Reconstruct(arcs []Arc, n int) ([]int, error) {
	if n <= 0 {
		return nil, errors.Annotatef(ErrMalformedSolution, "n=%d", n)
	}
	if len(arcs) != n {
		return nil, errors.Annotatef(ErrMalformedSolution, "%d arcs selected for %d vertices", len(arcs), n)
	}

	var (
		next = make([]int, n)
		in   = make([]int, n)
		v    int
	)
	for v = range next {
		next[v] = -1
	}
	for _, a := range arcs {
		if a.From < 0 || a.From >= n || a.To < 0 || a.To >= n {
			return nil, errors.Annotatef(ErrMalformedSolution, "arc %d->%d out of range [0,%d)", a.From, a.To, n)
		}
		if a.From == a.To {
			return nil, errors.Annotatef(ErrMalformedSolution, "self arc at %d", a.From)
		}
		if next[a.From] >= 0 {
			return nil, errors.Annotatef(ErrMalformedSolution, "vertex %d has out-degree > 1", a.From)
		}
		next[a.From] = a.To
		in[a.To]++
		if in[a.To] > 1 {
			return nil, errors.Annotatef(ErrMalformedSolution, "vertex %d has in-degree > 1", a.To)
		}
	}
	for v = 0; v < n; v++ {
		if next[v] < 0 || in[v] != 1 {
			return nil, errors.Annotatef(ErrMalformedSolution, "vertex %d is not on the cycle", v)
		}
	}

	start := arcs[0].From
	tour := make([]int, 1, n+1)
	tour[0] = start
	for v = next[start]; v != start; v = next[v] {
		tour = append(tour, v)
	}
	if len(tour) != n {
		return nil, errors.Annotatef(ErrMalformedSolution, "sub-tour of %d vertices through %d, want %d", len(tour), start, n)
	}

	return append(tour, start), nil
}
