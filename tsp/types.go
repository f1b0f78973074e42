// SPDX-License-Identifier: MIT

package tsp

import (
	"fmt"

	"github.com/liam-crow/stats-blog/milp"
)

// Objective selects the optimisation direction of the tour length.
type Objective int

const (
	// MinimizeDistance finds the shortest tour.
	MinimizeDistance Objective = iota
	// MaximizeDistance finds the longest tour.
	MaximizeDistance
)

// String implements fmt.Stringer.
func (o Objective) String() string {
	switch o {
	case MinimizeDistance:
		return "min"
	case MaximizeDistance:
		return "max"
	default:
		return fmt.Sprintf("Objective(%d)", int(o))
	}
}

func (o Objective) valid() bool {
	return o == MinimizeDistance || o == MaximizeDistance
}

func (o Objective) sense() milp.Sense {
	if o == MaximizeDistance {
		return milp.Maximize
	}
	return milp.Minimize
}

// better reports whether a beats b under o.
func (o Objective) better(a, b float64) bool {
	if o == MaximizeDistance {
		return a > b
	}
	return a < b
}

// Arc is a directed edge From→To of a tour, by matrix index.
type Arc struct {
	From, To int
}

// Options configures Solve.
type Options struct {
	Objective Objective
	// Solver is passed through to milp.Solve.
	Solver milp.Options
	// Verify cross-checks the optimum with ExactHeldKarp when
	// n ≤ MaxHeldKarpN; larger instances are returned unverified.
	Verify bool
	// Cuts tightens node relaxations with SubtourCuts. The MTZ rows
	// alone stay a complete model; cuts only shrink the search.
	Cuts bool
}

// DefaultOptions minimises with the default milp policy and subtour
// cuts, without verification.
func DefaultOptions() Options {
	return Options{
		Objective: MinimizeDistance,
		Solver:    milp.DefaultOptions(),
		Cuts:      true,
	}
}

// Result is an optimal tour.
type Result struct {
	// Tour is closed and anchored: len(Tour) == n+1, Tour[0] == Tour[n] == 0.
	Tour []int
	// Arcs are the selected arcs in solver variable order.
	Arcs []Arc
	// Cost is the total length of Tour.
	Cost float64
	// Nodes is the number of branch-and-bound nodes (0 for ExactHeldKarp).
	Nodes     int
	Objective Objective
	// Verified is set when ExactHeldKarp confirmed Cost.
	Verified bool
}
