// SPDX-License-Identifier: MIT

// Package tsp solves the symmetric or asymmetric Travelling Salesman
// Problem exactly on a small distance matrix.
//
// The main path formulates the tour as a mixed-integer linear program with
// Miller–Tucker–Zemlin sub-tour elimination and hands it to package milp:
//
//	x[i][j] ∈ {0,1}      arc i→j is used (i ≠ j)
//	u[i]    ∈ [2, n]     visit order of i, for i = 1..n-1
//	Σ_j x[i][j] = 1      leave every vertex once
//	Σ_i x[i][j] = 1      enter every vertex once
//	u[i] − u[j] + (n−1)·x[i][j] ≤ n−2    for i ≠ j in 1..n-1
//
// Vertex 0 is the anchor of the MTZ ordering and carries no u variable;
// every returned tour starts and ends there.
//
// The solver output is never trusted blindly: Reconstruct walks the
// selected arcs and rejects anything that is not a single Hamiltonian
// cycle, and the recomputed tour cost must match the solver objective.
// With Options.Verify the optimum is additionally cross-checked against
// the Held–Karp dynamic program (ExactHeldKarp) for n ≤ MaxHeldKarpN.
//
// HamiltonianCycles reports the size of the search space, (n−1)!/2.
//
// Nothing in this package logs; all failures are sentinel errors from
// errors.go annotated with context.
package tsp
