// SPDX-License-Identifier: MIT

package milp

import (
	"fmt"
	"time"
)

// Default numeric policy.
const (
	DefaultIntTol = 1e-6  // |x − round(x)| below this counts as integral
	DefaultTol    = 1e-9  // primal feasibility tolerance of the simplex
	DefaultGap    = 1e-9  // relative pruning gap against the incumbent
)

// Options configures Solve.
//
//	IntTol    – integrality tolerance (> 0).
//	Tol       – simplex primal feasibility tolerance, scaled by
//	            1+|bound|; 0 selects DefaultTol.
//	Gap       – relative gap; a node is pruned when its bound cannot beat
//	            the incumbent by more than Gap·max(1,|incumbent|).
//	MaxNodes  – node budget, 0 means unlimited.
//	TimeLimit – wall-clock budget, 0 means unlimited. It is also checked
//	            inside each LP, so a long relaxation cannot overrun it.
//	Separator – optional cut generator, see Separator.
type Options struct {
	IntTol    float64
	Tol       float64
	Gap       float64
	MaxNodes  int
	TimeLimit time.Duration
	Separator Separator
}

// Separator inspects the optimum x of a node relaxation and returns rows
// that x violates. Every returned row must hold for all integer-feasible
// points of the model; Solve keeps it for the rest of the search.
// Returning nil ends separation at that node.
type Separator func(x []float64) []Constraint

// DefaultOptions returns the default numeric policy with no limits.
func DefaultOptions() Options {
	return Options{
		IntTol: DefaultIntTol,
		Tol:    DefaultTol,
		Gap:    DefaultGap,
	}
}

// Status is the outcome of Solve.
type Status int

const (
	// StatusError means the solve failed before producing a verdict.
	StatusError Status = iota
	// StatusOptimal means Values is a proven optimum.
	StatusOptimal
	// StatusInfeasible means no integer-feasible point exists.
	StatusInfeasible
	// StatusUnbounded means the objective is unbounded.
	StatusUnbounded
	// StatusLimitReached means the search stopped early; Values, if set,
	// is the best incumbent and is NOT proven optimal.
	StatusLimitReached
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusLimitReached:
		return "limit-reached"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Solution is the result of Solve.
type Solution struct {
	Status    Status
	Values    []float64 // one value per model variable, integers rounded
	Objective float64   // objective of Values in the model's sense
	Nodes     int       // branch-and-bound nodes processed
}

// IsOptimal reports whether the solution is a proven optimum.
func (s Solution) IsOptimal() bool { return s.Status == StatusOptimal }

// Value returns the value of variable i, or 0 when out of range.
func (s Solution) Value(i int) float64 {
	if i < 0 || i >= len(s.Values) {
		return 0
	}
	return s.Values[i]
}
