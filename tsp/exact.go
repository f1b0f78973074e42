// SPDX-License-Identifier: MIT

// Package tsp - Held–Karp oracle.
//
// ExactHeldKarp is the independent exact solver behind Options.Verify
// and the solver tests. It shares nothing with the MTZ path except the
// matrix validation and the cost routine, so agreement between the two
// is meaningful.
//
// Design:
//   - Subsets are bitmasks over the non-anchor vertices, parents are
//     int8, which bounds n by MaxHeldKarpN.
//   - Both objectives run the same recurrence with a flipped comparison.
package tsp

import (
	"math"

	"github.com/juju/errors"
	"github.com/liam-crow/stats-blog/matrix"
)

// MaxHeldKarpN is the largest instance ExactHeldKarp accepts.
const MaxHeldKarpN = 18

// ExactHeldKarp solves dist exactly with the Held–Karp dynamic program,
// minimising or maximising the tour length.
//
// Subsets range over the non-anchor vertices 1..n-1 only:
//
//	dp[S][j] = best length of a path 0 → … → j visiting exactly S, j ∈ S.
//
// The tour is closed by the arc j→0 and rebuilt from the parent table.
//
// Errors: ErrInvalidInput, ErrInfeasible for n < 3, ErrTooLarge for
// n > MaxHeldKarpN.
//
// Complexity: O(n²·2ⁿ) time, O(n·2ⁿ) memory.
func ExactHeldKarp(dist matrix.Matrix, obj Objective) (Result, error) {
	if err := validateObjective(obj); err != nil {
		return Result{}, err
	}
	n, err := validateDist(dist)
	if err != nil {
		return Result{}, err
	}
	if n < 3 {
		return Result{}, errors.Annotatef(ErrInfeasible, "n=%d", n)
	}
	if n > MaxHeldKarpN {
		return Result{}, errors.Annotatef(ErrTooLarge, "n=%d exceeds %d", n, MaxHeldKarpN)
	}

	// Cache the matrix; the DP reads each entry many times.
	d := make([]float64, n*n)
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if d[i*n+j], err = dist.At(i, j); err != nil {
				return Result{}, errors.Trace(err)
			}
		}
	}

	// Non-anchor vertex v ∈ [1,n) is bit v-1; column c = v-1.
	var (
		m      = n - 1
		full   = 1<<m - 1
		worst  = math.Inf(1)
		dp     = make([]float64, (full+1)*m)
		parent = make([]int8, (full+1)*m)
	)
	if obj == MaximizeDistance {
		worst = math.Inf(-1)
	}
	for k = range dp {
		dp[k] = worst
		parent[k] = -1
	}
	for j = 0; j < m; j++ {
		dp[(1<<j)*m+j] = d[j+1]
	}

	var (
		s, prev  int
		cur, cnd float64
	)
	for s = 1; s <= full; s++ {
		for j = 0; j < m; j++ {
			if s&(1<<j) == 0 {
				continue
			}
			prev = s ^ (1 << j)
			if prev == 0 {
				continue
			}
			cur = dp[s*m+j]
			for k = 0; k < m; k++ {
				if prev&(1<<k) == 0 {
					continue
				}
				cnd = dp[prev*m+k] + d[(k+1)*n+(j+1)]
				if obj.better(cnd, cur) {
					cur = cnd
					parent[s*m+j] = int8(k)
				}
			}
			dp[s*m+j] = cur
		}
	}

	best, last := worst, -1
	for j = 0; j < m; j++ {
		cnd = dp[full*m+j] + d[(j+1)*n]
		if obj.better(cnd, best) {
			best, last = cnd, j
		}
	}
	if last < 0 {
		return Result{}, errors.Annotate(ErrInfeasible, "no Hamiltonian cycle")
	}

	tour := make([]int, n+1)
	s, j = full, last
	for i = n - 1; i >= 1; i-- {
		tour[i] = j + 1
		k = int(parent[s*m+j])
		s ^= 1 << j
		j = k
	}

	cost, err := TourCost(dist, tour)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Tour:      tour,
		Arcs:      TourArcs(tour),
		Cost:      cost,
		Objective: obj,
		Verified:  true,
	}, nil
}
