// SPDX-License-Identifier: MIT

package tsp

import "github.com/juju/errors"

// Sentinel errors. Match with errors.Is; messages carry the "tsp:" prefix.
var (
	// ErrInvalidInput signals a distance matrix, tour or argument that
	// cannot describe a TSP instance.
	ErrInvalidInput = errors.New("tsp: invalid input")

	// ErrInfeasible signals that no Hamiltonian cycle exists (n < 3, or
	// the MILP proved infeasibility).
	ErrInfeasible = errors.New("tsp: no feasible tour")

	// ErrSolver wraps any solver failure other than infeasibility: limits,
	// numerical trouble, an unexpected status or a failed verification.
	ErrSolver = errors.New("tsp: solver failure")

	// ErrMalformedSolution signals that the selected arcs do not form one
	// Hamiltonian cycle, or that the tour cost disagrees with the objective.
	ErrMalformedSolution = errors.New("tsp: malformed solution")

	// ErrTooLarge is returned by ExactHeldKarp above MaxHeldKarpN vertices.
	ErrTooLarge = errors.New("tsp: instance too large")
)
