// SPDX-License-Identifier: MIT

// Package milp is a small mixed-integer linear programming toolkit.
//
// A Model is built explicitly: variables carry (name, bounds, kind,
// objective coefficient) and constraints carry a sparse list of terms, a
// relation and a right-hand side. Solve runs an exact depth-first
// branch-and-bound over LP relaxations solved by a bounded-variable
// dual simplex (simplex.go). Row arithmetic uses gonum's floats kernels.
//
// Relaxation layout:
//   - each row gets one activity column whose bounds encode ≤, ≥ or =,
//     so an equality is a single row with a fixed activity,
//   - variable bounds stay bounds and are never turned into rows,
//   - a child node copies its parent's LP, tightens one bound and
//     re-optimises from the parent basis,
//   - rows returned by Options.Separator join a pool shared by all
//     nodes.
//
// Solve never reports a partial search as optimal: node limits, time
// limits and context cancellation surface as ErrLimitReached, also from
// inside a running LP.
package milp
