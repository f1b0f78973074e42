// SPDX-License-Identifier: MIT

// Package milp - depth-first branch-and-bound.
//
// Search loop (run):
//   - pop a node, sync its LP with the cut pool, solve it (relax),
//   - prune on infeasibility or a bound that cannot beat the incumbent,
//   - accept an integral point, or branch on the most fractional
//     integer variable: the down child gets a copy of the LP, the up
//     child reuses it and is explored first.
//
// Design:
//   - Limits are checked between nodes here and between pivots in the
//     LP, so a deadline never waits for a whole relaxation.
//   - Incumbents are re-checked against the original rows after
//     rounding; separated cuts never decide feasibility.
package milp

import (
	"context"
	"math"
	"time"

	"github.com/juju/errors"
)

// Cut rounds per node; the root gets more.
const (
	rootCutRounds = 50
	nodeCutRounds = 8
	cutViolation  = 1e-6
)

// bbNode is one subproblem. Its LP already carries the node bounds and
// the optimal basis of its parent.
type bbNode struct {
	lp    *simplex
	depth int
}

// bbEngine holds the search state of one Solve call. Nothing in it is
// shared across calls.
type bbEngine struct {
	m    *Model
	opts Options
	ctx  context.Context

	useDeadline bool
	deadline    time.Time

	nodes int
	pool  []Constraint // separated cuts, valid at every node

	// Incumbent.
	found   bool
	best    []float64
	bestObj float64
}

// Solve finds a proven optimum of m with depth-first branch-and-bound.
//
// Branching picks the integer variable whose relaxation value is most
// fractional (lowest index on ties) and explores the "up" child first.
// A node is pruned when its relaxation bound cannot improve the
// incumbent by more than the relative Gap. Children start from their
// parent's optimal basis. When Options.Separator is set, each node
// relaxation is tightened with the rows it returns before branching.
//
// Errors:
//   - ErrInvalidModel for a nil model or invalid Options,
//   - ErrInfeasible when no integer point exists,
//   - ErrUnbounded when a relaxation is unbounded,
//   - ErrLimitReached when MaxNodes, TimeLimit or ctx stops the search
//     (the returned Solution then has StatusLimitReached),
//   - ErrNumerical when the LP backend fails.
func Solve(ctx context.Context, m *Model, opts Options) (Solution, error) {
	if m == nil {
		return Solution{Status: StatusError}, errors.Annotate(ErrInvalidModel, "nil model")
	}
	if err := validateOptions(opts); err != nil {
		return Solution{Status: StatusError}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Tol == 0 {
		opts.Tol = DefaultTol
	}

	e := &bbEngine{m: m, opts: opts, ctx: ctx}
	if opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(opts.TimeLimit)
	}

	err := e.run(bbNode{lp: newSimplex(m, opts.Tol)})
	sol := Solution{Nodes: e.nodes}
	if e.found {
		sol.Values = e.best
		sol.Objective = e.bestObj
	}

	switch {
	case err == nil && e.found:
		sol.Status = StatusOptimal
		return sol, nil
	case err == nil:
		sol.Status = StatusInfeasible
		return sol, errors.Annotatef(ErrInfeasible, "model %q after %d nodes", m.name, e.nodes)
	case errors.Is(err, ErrLimitReached):
		sol.Status = StatusLimitReached
	case errors.Is(err, ErrUnbounded):
		sol.Status = StatusUnbounded
	default:
		sol.Status = StatusError
	}

	return sol, errors.Annotatef(err, "model %q", m.name)
}

func validateOptions(o Options) error {
	if !(o.IntTol > 0) || o.IntTol >= 0.5 {
		return errors.Annotatef(ErrInvalidModel, "IntTol %v must be in (0, 0.5)", o.IntTol)
	}
	if o.Tol < 0 || o.Gap < 0 || o.MaxNodes < 0 || o.TimeLimit < 0 {
		return errors.Annotate(ErrInvalidModel, "Tol, Gap, MaxNodes and TimeLimit must be non-negative")
	}
	return nil
}

// run drains an explicit LIFO stack of nodes.
func (e *bbEngine) run(root bbNode) error {
	stack := []bbNode{root}
	for len(stack) > 0 {
		if err := e.checkLimits(); err != nil {
			return err
		}
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		e.nodes++

		x, obj, err := e.relax(node)
		if errors.Is(err, ErrInfeasible) {
			continue
		}
		if err != nil {
			return err
		}
		if e.found && !e.improves(obj) {
			continue
		}

		k, v := e.branchVar(x)
		if k < 0 {
			e.accept(x)
			continue
		}

		lp := node.lp
		down := lp.clone()
		down.setBounds(k, down.lo[k], math.Floor(v))
		hi := lp.hi[k]
		if lp.art[k] {
			hi = math.Inf(1)
		}
		lp.setBounds(k, math.Ceil(v), hi)
		// LIFO: the up child is explored first.
		stack = append(stack,
			bbNode{lp: down, depth: node.depth + 1},
			bbNode{lp: lp, depth: node.depth + 1})
	}

	return nil
}

// relax solves the node LP, then alternates separation and re-solves
// until no violated cut is found or the node can be pruned.
func (e *bbEngine) relax(node bbNode) ([]float64, float64, error) {
	lp := node.lp
	for ; lp.cuts < len(e.pool); lp.cuts++ {
		c := e.pool[lp.cuts]
		lp.addRow(c.Terms, c.Rel, c.RHS)
	}
	rounds := nodeCutRounds
	if node.depth == 0 {
		rounds = rootCutRounds
	}

	for round := 0; ; round++ {
		if err := lp.solve(e.ctx, e.deadline); err != nil {
			return nil, 0, err
		}
		x, err := lp.primal()
		if err != nil {
			return nil, 0, err
		}
		obj := e.m.Evaluate(x)
		if e.opts.Separator == nil || round >= rounds || (e.found && !e.improves(obj)) {
			return x, obj, nil
		}

		added := 0
		for _, c := range e.opts.Separator(x) {
			ok, err := e.violated(c, x)
			if err != nil {
				return nil, 0, err
			}
			if !ok {
				continue
			}
			e.pool = append(e.pool, c)
			lp.addRow(c.Terms, c.Rel, c.RHS)
			lp.cuts++
			added++
		}
		if added == 0 {
			return x, obj, nil
		}
	}
}

// violated checks a separated row and reports whether x breaks it.
func (e *bbEngine) violated(c Constraint, x []float64) (bool, error) {
	if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
		return false, errors.Annotatef(ErrInvalidModel, "cut %q: rhs %v", c.Name, c.RHS)
	}
	var lhs float64
	for _, t := range c.Terms {
		if t.Var < 0 || t.Var >= len(e.m.vars) {
			return false, errors.Annotatef(ErrUnknownVar, "cut %q: var %d", c.Name, t.Var)
		}
		lhs += t.Coef * x[t.Var]
	}
	slack := cutViolation * (1 + math.Abs(c.RHS))
	switch c.Rel {
	case LessEq:
		return lhs > c.RHS+slack, nil
	case GreaterEq:
		return lhs < c.RHS-slack, nil
	case Equal:
		return math.Abs(lhs-c.RHS) > slack, nil
	}
	return false, errors.Annotatef(ErrInvalidModel, "cut %q: relation %v", c.Name, c.Rel)
}

// checkLimits turns the context, node budget and deadline into ErrLimitReached.
func (e *bbEngine) checkLimits() error {
	if err := e.ctx.Err(); err != nil {
		return errors.Annotatef(ErrLimitReached, "context: %v", err)
	}
	if e.opts.MaxNodes > 0 && e.nodes >= e.opts.MaxNodes {
		return errors.Annotatef(ErrLimitReached, "node limit %d", e.opts.MaxNodes)
	}
	if e.useDeadline && time.Now().After(e.deadline) {
		return errors.Annotatef(ErrLimitReached, "time limit %v", e.opts.TimeLimit)
	}
	return nil
}

// improves reports whether bound can beat the incumbent by more than the gap.
func (e *bbEngine) improves(bound float64) bool {
	gap := e.opts.Gap * math.Max(1, math.Abs(e.bestObj))
	if e.m.sense == Maximize {
		return bound > e.bestObj+gap
	}
	return bound < e.bestObj-gap
}

// branchVar returns the most fractional integer variable, or -1.
func (e *bbEngine) branchVar(x []float64) (int, float64) {
	var (
		best     = -1
		bestFrac float64
	)
	for k, v := range e.m.vars {
		if v.Kind == Continuous {
			continue
		}
		f := math.Abs(x[k] - math.Round(x[k]))
		if f > e.opts.IntTol && f > bestFrac {
			best, bestFrac = k, f
		}
	}
	if best < 0 {
		return -1, 0
	}
	return best, x[best]
}

// accept rounds the integer part of an integral relaxation and keeps it
// when it is feasible and better than the incumbent.
func (e *bbEngine) accept(x []float64) {
	cand := make([]float64, len(x))
	copy(cand, x)
	for k, v := range e.m.vars {
		if v.Kind != Continuous {
			cand[k] = math.Round(cand[k])
		}
	}
	// Rounding moves each row by at most |coef|·IntTol.
	if !e.m.Feasible(cand, math.Max(10*e.opts.IntTol, 1e-6)) {
		return
	}
	obj := e.m.Evaluate(cand)
	if e.found && !e.improves(obj) {
		return
	}
	e.found, e.best, e.bestObj = true, cand, obj
}
