// SPDX-License-Identifier: MIT

// Package tsp - tour utilities shared by the MTZ decoder and Held–Karp.
//
// These helpers operate on closed tours (index sequences with
// tour[0] == tour[n]) and never look at distances:
//   - ValidateTour: enforce the Hamiltonian cycle invariants.
//   - RotateTourToStart: cyclic shift so the tour starts/ends at a vertex.
//   - CanonicalOrientation: fix the direction by the neighbours of the start.
//   - EqualToursModuloRotation / EqualToursUndirected: tour comparisons.
//   - TourArcs: the n arcs of a closed tour.
//   - DebugString: compact printable form for logs and tests.
//
// Design:
//   - No logging, no panics on user input; only sentinel errors.
//   - O(n) time; inputs are never mutated.
package tsp

import (
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// ValidateTour checks the closed-tour invariants:
//
//	len(tour) == n+1, tour[0] == tour[n] == start,
//	every vertex of [0, n) appears exactly once in tour[0:n].
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(tour []int, n, start int) error {
	if n <= 0 || len(tour) != n+1 {
		return errors.Annotatef(ErrInvalidInput, "tour length %d for n=%d", len(tour), n)
	}
	if start < 0 || start >= n {
		return errors.Annotatef(ErrInvalidInput, "start %d out of range [0,%d)", start, n)
	}
	if tour[0] != start || tour[n] != start {
		return errors.Annotatef(ErrInvalidInput, "tour must start and end at %d", start)
	}

	seen := make([]bool, n)
	for i, v := range tour[:n] {
		if v < 0 || v >= n {
			return errors.Annotatef(ErrInvalidInput, "tour[%d]=%d out of range", i, v)
		}
		if seen[v] {
			return errors.Annotatef(ErrInvalidInput, "vertex %d visited twice", v)
		}
		seen[v] = true
	}
	return nil
}

// RotateTourToStart returns a fresh closed tour shifted so that it starts
// and ends at start. The input may be closed (first == last) or an open
// vertex sequence.
//
// Complexity: O(n).
func RotateTourToStart(tour []int, start int) ([]int, error) {
	if len(tour) == 0 {
		return nil, errors.Annotate(ErrInvalidInput, "empty tour")
	}
	n := len(tour)
	if n > 1 && tour[0] == tour[n-1] {
		n--
	}

	pivot := -1
	for i, v := range tour[:n] {
		if v == start {
			pivot = i
			break
		}
	}
	if pivot < 0 {
		return nil, errors.Annotatef(ErrInvalidInput, "start %d not on tour", start)
	}

	out := make([]int, n+1)
	for i := 0; i < n; i++ {
		out[i] = tour[(pivot+i)%n]
	}
	out[n] = start
	return out, nil
}

// CanonicalOrientation returns a copy of a closed tour whose successor of
// the start is the smaller of its two neighbours. Two tours of the same
// undirected cycle with the same start map to the same slice.
func CanonicalOrientation(tour []int) []int {
	out := append([]int(nil), tour...)
	n := len(out) - 1
	if n < 3 || out[0] != out[n] {
		return out
	}
	if out[1] > out[n-1] {
		for i, k := 1, n-1; i < k; i, k = i+1, k-1 {
			out[i], out[k] = out[k], out[i]
		}
	}
	return out
}

// EqualToursModuloRotation reports whether two closed tours describe the
// same directed cycle.
//
// Complexity: O(n).
func EqualToursModuloRotation(a, b []int) bool {
	if len(a) != len(b) || len(a) < 2 {
		return false
	}
	n := len(a) - 1
	if a[0] != a[n] || b[0] != b[n] {
		return false
	}
	p := -1
	for j, v := range b[:n] {
		if v == a[0] {
			p = j
			break
		}
	}
	if p < 0 {
		return false
	}
	for i := 0; i < n; i++ {
		if a[i] != b[(p+i)%n] {
			return false
		}
	}
	return true
}

// EqualToursUndirected reports whether two closed tours describe the same
// cycle in either direction.
func EqualToursUndirected(a, b []int) bool {
	if EqualToursModuloRotation(a, b) {
		return true
	}
	rev := make([]int, len(b))
	for i, v := range b {
		rev[len(b)-1-i] = v
	}
	return EqualToursModuloRotation(a, rev)
}

// TourArcs lists the arcs tour[i]→tour[i+1] of a closed tour.
func TourArcs(tour []int) []Arc {
	if len(tour) < 2 {
		return nil
	}
	out := make([]Arc, len(tour)-1)
	for i := range out {
		out[i] = Arc{From: tour[i], To: tour[i+1]}
	}
	return out
}

// DebugString renders a closed tour as "[0 3 1 2 | 0]", the bar marking
// the closing vertex.
func DebugString(tour []int) string {
	if len(tour) == 0 {
		return "[]"
	}
	var (
		sb strings.Builder
		n  = len(tour) - 1
	)
	sb.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(tour[i]))
	}
	sb.WriteString(" | ")
	sb.WriteString(strconv.Itoa(tour[n]))
	sb.WriteByte(']')
	return sb.String()
}
