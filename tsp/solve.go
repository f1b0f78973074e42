// SPDX-License-Identifier: MIT

package tsp

import (
	"context"
	"math"

	"github.com/juju/errors"
	"github.com/liam-crow/stats-blog/matrix"
	"github.com/liam-crow/stats-blog/milp"
)

// Solve finds an optimal tour of dist under opts.Objective by solving the
// MTZ formulation with milp.Solve. With opts.Cuts the search also
// separates subtour elimination rows, see SubtourCuts.
//
// The returned tour starts and ends at vertex 0. A partial or unproven
// tour is never returned.
//
// Errors:
//   - ErrInvalidInput for an invalid matrix or objective,
//   - ErrInfeasible for n < 3 or a model proven infeasible,
//   - ErrSolver for limits, cancellation, numerical failure, or a
//     Held–Karp mismatch under opts.Verify,
//   - ErrMalformedSolution when the solver values do not decode to one
//     Hamiltonian cycle of the reported length.
func Solve(ctx context.Context, dist matrix.Matrix, opts Options) (Result, error) {
	f, err := Formulate(dist, opts.Objective)
	if err != nil {
		return Result{}, err
	}

	so := opts.Solver
	if opts.Cuts {
		so.Separator = f.SubtourCuts
	}
	sol, err := milp.Solve(ctx, f.Model(), so)
	switch {
	case errors.Is(err, milp.ErrInfeasible):
		return Result{}, errors.Annotatef(ErrInfeasible, "n=%d: %v", f.N(), err)
	case err != nil:
		return Result{}, errors.Annotatef(ErrSolver, "%v", err)
	case !sol.IsOptimal():
		return Result{}, errors.Annotatef(ErrSolver, "status %v", sol.Status)
	}

	res, err := f.Decode(dist, sol)
	if err != nil {
		return Result{}, err
	}

	if opts.Verify && f.N() <= MaxHeldKarpN {
		if err = verify(dist, &res); err != nil {
			return Result{}, err
		}
	}

	return res, nil
}

// Decode rebuilds the anchored tour from a solver solution and checks that
// its recomputed length equals the solver objective.
func (f *Formulation) Decode(dist matrix.Matrix, sol milp.Solution) (Result, error) {
	arcs := f.SelectedArcs(sol.Values)
	tour, err := Reconstruct(arcs, f.n)
	if err != nil {
		return Result{}, err
	}
	if tour, err = RotateTourToStart(tour, anchor); err != nil {
		return Result{}, errors.Annotatef(ErrMalformedSolution, "%v", err)
	}
	cost, err := TourCost(dist, tour)
	if err != nil {
		return Result{}, err
	}
	if math.Abs(cost-sol.Objective) > costTol(cost) {
		return Result{}, errors.Annotatef(ErrMalformedSolution,
			"tour length %.9f differs from objective %.9f", cost, sol.Objective)
	}

	return Result{
		Tour:      tour,
		Arcs:      arcs,
		Cost:      cost,
		Nodes:     sol.Nodes,
		Objective: f.obj,
	}, nil
}

// verify compares res against the Held–Karp optimum and marks it Verified.
func verify(dist matrix.Matrix, res *Result) error {
	hk, err := ExactHeldKarp(dist, res.Objective)
	if err != nil {
		return errors.Annotatef(ErrSolver, "verification: %v", err)
	}
	if math.Abs(hk.Cost-res.Cost) > costTol(hk.Cost) {
		return errors.Annotatef(ErrSolver, "verification: milp %.9f, held-karp %.9f", res.Cost, hk.Cost)
	}
	res.Verified = true
	return nil
}
