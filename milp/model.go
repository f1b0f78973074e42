// SPDX-License-Identifier: MIT

// Package milp - model construction and checking.
//
// Provided:
//   - Kind, Relation, Sense: variable domains, row relations, direction.
//   - Model.AddVar: bounds normalised per kind (binary clamp, integer
//     rounding inwards), finite lower bounds only.
//   - Model.AddConstraint: duplicate terms merged, zero terms dropped.
//   - Model.Evaluate / Model.Feasible: objective and tolerance checks
//     used by the search and by callers validating a Solution.
//
// Design:
//   - Construction errors are sentinel errors from errors.go, annotated
//     with the offending variable or row.
//   - A Model is never mutated by Solve.
package milp

import (
	"fmt"
	"math"

	"github.com/juju/errors"
)

// Kind is the domain of a variable.
type Kind int

const (
	// Continuous variables take any value in [Lo, Hi].
	Continuous Kind = iota
	// Integer variables take integral values in [Lo, Hi].
	Integer
	// Binary variables take 0 or 1.
	Binary
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Relation is the comparison of a constraint row against its RHS.
type Relation int

const (
	// LessEq means Σ a·x ≤ rhs.
	LessEq Relation = iota
	// GreaterEq means Σ a·x ≥ rhs.
	GreaterEq
	// Equal means Σ a·x = rhs.
	Equal
)

// String implements fmt.Stringer.
func (r Relation) String() string {
	switch r {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	case Equal:
		return "="
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// Sense is the optimisation direction.
type Sense int

const (
	// Minimize the objective.
	Minimize Sense = iota
	// Maximize the objective.
	Maximize
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	if s == Maximize {
		return "max"
	}
	return "min"
}

// Var describes one decision variable.
type Var struct {
	Name string
	Lo   float64 // finite lower bound
	Hi   float64 // upper bound, may be +Inf
	Kind Kind
	Obj  float64 // objective coefficient
}

// Term is one coefficient of a constraint row.
type Term struct {
	Var  int
	Coef float64
}

// Constraint is a linear row Σ Terms rel RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Rel   Relation
	RHS   float64
}

// Model is a MILP under construction. The zero value is not usable;
// call NewModel.
type Model struct {
	name  string
	sense Sense
	vars  []Var
	cons  []Constraint
}

// NewModel returns an empty model.
func NewModel(name string, sense Sense) *Model {
	return &Model{name: name, sense: sense}
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Sense returns the optimisation direction.
func (m *Model) Sense() Sense { return m.sense }

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of constraint rows as added
// (an Equal counts once).
func (m *Model) NumConstraints() int { return len(m.cons) }

// Var returns variable i.
func (m *Model) Var(i int) Var { return m.vars[i] }

// Constraint returns constraint i.
func (m *Model) Constraint(i int) Constraint { return m.cons[i] }

// AddVar appends a variable and returns its index.
//
// Binary variables are clamped to [0,1]; integer bounds are rounded
// inwards. lo must be finite and not exceed hi; obj must be finite.
func (m *Model) AddVar(name string, lo, hi float64, kind Kind, obj float64) (int, error) {
	switch kind {
	case Continuous, Integer, Binary:
	default:
		return 0, errors.Annotatef(ErrInvalidModel, "var %q: kind %v", name, kind)
	}
	if kind == Binary {
		lo = math.Max(lo, 0)
		hi = math.Min(hi, 1)
	}
	if kind != Continuous {
		lo = math.Ceil(lo)
		if !math.IsInf(hi, 1) {
			hi = math.Floor(hi)
		}
	}
	if math.IsNaN(lo) || math.IsInf(lo, 0) {
		return 0, errors.Annotatef(ErrInvalidModel, "var %q: lower bound %v must be finite", name, lo)
	}
	if math.IsNaN(hi) || hi < lo {
		return 0, errors.Annotatef(ErrInvalidModel, "var %q: bounds [%v, %v]", name, lo, hi)
	}
	if math.IsNaN(obj) || math.IsInf(obj, 0) {
		return 0, errors.Annotatef(ErrInvalidModel, "var %q: objective coefficient %v", name, obj)
	}
	m.vars = append(m.vars, Var{Name: name, Lo: lo, Hi: hi, Kind: kind, Obj: obj})

	return len(m.vars) - 1, nil
}

// AddConstraint appends a row and returns its index. Terms on the same
// variable are merged; zero coefficients are dropped.
func (m *Model) AddConstraint(name string, terms []Term, rel Relation, rhs float64) (int, error) {
	switch rel {
	case LessEq, GreaterEq, Equal:
	default:
		return 0, errors.Annotatef(ErrInvalidModel, "row %q: relation %v", name, rel)
	}
	if math.IsNaN(rhs) || math.IsInf(rhs, 0) {
		return 0, errors.Annotatef(ErrInvalidModel, "row %q: rhs %v", name, rhs)
	}

	merged := make([]Term, 0, len(terms))
	pos := make(map[int]int, len(terms))
	for _, t := range terms {
		if t.Var < 0 || t.Var >= len(m.vars) {
			return 0, errors.Annotatef(ErrUnknownVar, "row %q: var %d", name, t.Var)
		}
		if math.IsNaN(t.Coef) || math.IsInf(t.Coef, 0) {
			return 0, errors.Annotatef(ErrInvalidModel, "row %q: coefficient %v on var %d", name, t.Coef, t.Var)
		}
		if p, ok := pos[t.Var]; ok {
			merged[p].Coef += t.Coef
			continue
		}
		pos[t.Var] = len(merged)
		merged = append(merged, t)
	}
	out := merged[:0]
	for _, t := range merged {
		if t.Coef != 0 {
			out = append(out, t)
		}
	}
	m.cons = append(m.cons, Constraint{Name: name, Terms: out, Rel: rel, RHS: rhs})

	return len(m.cons) - 1, nil
}

// Evaluate returns the objective value of x.
func (m *Model) Evaluate(x []float64) float64 {
	var sum float64
	for k, v := range m.vars {
		sum += v.Obj * x[k]
	}
	return sum
}

// Feasible reports whether x satisfies every bound, integrality and row
// within tol (absolute, scaled by 1+|rhs| for rows).
func (m *Model) Feasible(x []float64, tol float64) bool {
	if len(x) != len(m.vars) {
		return false
	}
	for k, v := range m.vars {
		if x[k] < v.Lo-tol || x[k] > v.Hi+tol {
			return false
		}
		if v.Kind != Continuous && math.Abs(x[k]-math.Round(x[k])) > tol {
			return false
		}
	}
	for _, c := range m.cons {
		var lhs float64
		for _, t := range c.Terms {
			lhs += t.Coef * x[t.Var]
		}
		slack := tol * (1 + math.Abs(c.RHS))
		switch c.Rel {
		case LessEq:
			if lhs > c.RHS+slack {
				return false
			}
		case GreaterEq:
			if lhs < c.RHS-slack {
				return false
			}
		case Equal:
			if math.Abs(lhs-c.RHS) > slack {
				return false
			}
		}
	}

	return true
}
