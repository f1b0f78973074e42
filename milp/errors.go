// SPDX-License-Identifier: MIT

package milp

import "github.com/juju/errors"

var (
	// ErrInvalidModel marks a malformed variable or constraint definition.
	ErrInvalidModel = errors.New("milp: invalid model")

	// ErrUnknownVar is returned when a term references a variable index
	// that was never added.
	ErrUnknownVar = errors.New("milp: unknown variable")

	// ErrInfeasible is returned when no integer-feasible point exists.
	ErrInfeasible = errors.New("milp: problem is infeasible")

	// ErrUnbounded is returned when the relaxation is unbounded in the
	// optimisation direction.
	ErrUnbounded = errors.New("milp: problem is unbounded")

	// ErrLimitReached is returned when the node limit, time limit or the
	// context stops the search before optimality is proven.
	ErrLimitReached = errors.New("milp: search limit reached before optimality")

	// ErrNumerical is returned when an LP stops converging (pivot cap)
	// or its basis turns singular.
	ErrNumerical = errors.New("milp: numerical failure in LP relaxation")
)
