package milp_test

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/liam-crow/stats-blog/milp"
	"github.com/stretchr/testify/require"
)

const epsObj = 1e-7

// fractionalRoot: max x+y, −x+y ≤ 1, 3x+2y ≤ 12, 2x+3y ≤ 12, x,y ∈ ℤ≥0.
// The LP optimum is (2.4, 2.4) with value 4.8; the integer optimum is 4.
func fractionalRoot(t *testing.T) *milp.Model {
	t.Helper()
	m := milp.NewModel("fractional-root", milp.Maximize)
	x, err := m.AddVar("x", 0, math.Inf(1), milp.Integer, 1)
	require.NoError(t, err)
	y, err := m.AddVar("y", 0, math.Inf(1), milp.Integer, 1)
	require.NoError(t, err)
	rows := []struct {
		a, b, rhs float64
	}{{-1, 1, 1}, {3, 2, 12}, {2, 3, 12}}
	for _, r := range rows {
		_, err = m.AddConstraint("", []milp.Term{{x, r.a}, {y, r.b}}, milp.LessEq, r.rhs)
		require.NoError(t, err)
	}
	return m
}

func TestSolve_IntegerOptimumBelowRelaxation(t *testing.T) {
	m := fractionalRoot(t)
	sol, err := milp.Solve(context.Background(), m, milp.DefaultOptions())
	require.NoError(t, err)
	require.True(t, sol.IsOptimal())
	require.InDelta(t, 4, sol.Objective, epsObj)
	require.True(t, m.Feasible(sol.Values, 1e-9))
	require.Greater(t, sol.Nodes, 1, "root relaxation is fractional, branching is required")
}

func TestSolve_PureLP(t *testing.T) {
	// max 5a+4b+3c, 2a+3b+c ≤ 5, 4a+b+2c ≤ 11, 3a+4b+2c ≤ 8; optimum 13 at (2,0,1).
	m := milp.NewModel("lp", milp.Maximize)
	a, _ := m.AddVar("a", 0, math.Inf(1), milp.Continuous, 5)
	b, _ := m.AddVar("b", 0, math.Inf(1), milp.Continuous, 4)
	c, _ := m.AddVar("c", 0, math.Inf(1), milp.Continuous, 3)
	for _, r := range [][4]float64{{2, 3, 1, 5}, {4, 1, 2, 11}, {3, 4, 2, 8}} {
		_, err := m.AddConstraint("", []milp.Term{{a, r[0]}, {b, r[1]}, {c, r[2]}}, milp.LessEq, r[3])
		require.NoError(t, err)
	}

	sol, err := milp.Solve(context.Background(), m, milp.DefaultOptions())
	require.NoError(t, err)
	require.InDelta(t, 13, sol.Objective, epsObj)
	require.InDelta(t, 2, sol.Value(a), 1e-7)
	require.InDelta(t, 0, sol.Value(b), 1e-7)
	require.InDelta(t, 1, sol.Value(c), 1e-7)
	require.Equal(t, 1, sol.Nodes)
	require.Zero(t, sol.Value(99))
}

func TestSolve_BinaryKnapsack(t *testing.T) {
	// max 10a+13b+7c+8d, 3a+4b+2c+3d ≤ 7; optimum 23 with {a,b}.
	m := milp.NewModel("knapsack", milp.Maximize)
	values := []float64{10, 13, 7, 8}
	weights := []float64{3, 4, 2, 3}
	terms := make([]milp.Term, len(values))
	for i := range values {
		k, err := m.AddVar("", 0, 1, milp.Binary, values[i])
		require.NoError(t, err)
		terms[i] = milp.Term{Var: k, Coef: weights[i]}
	}
	_, err := m.AddConstraint("capacity", terms, milp.LessEq, 7)
	require.NoError(t, err)

	sol, err := milp.Solve(context.Background(), m, milp.DefaultOptions())
	require.NoError(t, err)
	require.InDelta(t, 23, sol.Objective, epsObj)
	require.Equal(t, []float64{1, 1, 0, 0}, sol.Values)
}

func TestSolve_EqualityAndMinimize(t *testing.T) {
	// min x+2y, x+y = 3, x ≤ 2, integers: x=2, y=1.
	m := milp.NewModel("eq", milp.Minimize)
	x, _ := m.AddVar("x", 0, 2, milp.Integer, 1)
	y, _ := m.AddVar("y", 0, math.Inf(1), milp.Integer, 2)
	_, err := m.AddConstraint("sum", []milp.Term{{x, 1}, {y, 1}}, milp.Equal, 3)
	require.NoError(t, err)

	sol, err := milp.Solve(context.Background(), m, milp.DefaultOptions())
	require.NoError(t, err)
	require.InDelta(t, 4, sol.Objective, epsObj)
	require.Equal(t, []float64{2, 1}, sol.Values)
}

func TestSolve_Assignment(t *testing.T) {
	// 3×3 assignment; the cheapest permutation costs 1+2+2 = 5.
	cost := [3][3]float64{{1, 4, 5}, {3, 2, 6}, {4, 5, 2}}
	m := milp.NewModel("assignment", milp.Minimize)
	var idx [3][3]int
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			k, err := m.AddVar("", 0, 1, milp.Binary, cost[i][j])
			require.NoError(t, err)
			idx[i][j] = k
		}
	}
	for i := 0; i < 3; i++ {
		row := make([]milp.Term, 0, 3)
		col := make([]milp.Term, 0, 3)
		for j := 0; j < 3; j++ {
			row = append(row, milp.Term{Var: idx[i][j], Coef: 1})
			col = append(col, milp.Term{Var: idx[j][i], Coef: 1})
		}
		_, err := m.AddConstraint("", row, milp.Equal, 1)
		require.NoError(t, err)
		_, err = m.AddConstraint("", col, milp.Equal, 1)
		require.NoError(t, err)
	}

	sol, err := milp.Solve(context.Background(), m, milp.DefaultOptions())
	require.NoError(t, err)
	require.InDelta(t, 5, sol.Objective, epsObj)
	for i := 0; i < 3; i++ {
		require.Equal(t, 1.0, sol.Value(idx[i][i]))
	}
}

func TestSolve_Infeasible(t *testing.T) {
	t.Run("relaxation", func(t *testing.T) {
		m := milp.NewModel("lp-infeasible", milp.Minimize)
		x, _ := m.AddVar("x", 0, 1, milp.Binary, 1)
		_, err := m.AddConstraint("", []milp.Term{{x, 1}}, milp.GreaterEq, 2)
		require.NoError(t, err)

		sol, err := milp.Solve(context.Background(), m, milp.DefaultOptions())
		require.ErrorIs(t, err, milp.ErrInfeasible)
		require.Equal(t, milp.StatusInfeasible, sol.Status)
	})
	t.Run("integrality", func(t *testing.T) {
		// 2x = 1 has the LP solution x = 0.5 but no integer one.
		m := milp.NewModel("int-infeasible", milp.Minimize)
		x, _ := m.AddVar("x", 0, 5, milp.Integer, 1)
		_, err := m.AddConstraint("", []milp.Term{{x, 2}}, milp.Equal, 1)
		require.NoError(t, err)

		_, err = milp.Solve(context.Background(), m, milp.DefaultOptions())
		require.ErrorIs(t, err, milp.ErrInfeasible)
	})
}

func TestSolve_Unbounded(t *testing.T) {
	m := milp.NewModel("unbounded", milp.Maximize)
	x, _ := m.AddVar("x", 0, math.Inf(1), milp.Continuous, 1)
	y, _ := m.AddVar("y", 0, math.Inf(1), milp.Continuous, 1)
	_, err := m.AddConstraint("", []milp.Term{{x, 1}, {y, -1}}, milp.LessEq, 1)
	require.NoError(t, err)

	sol, err := milp.Solve(context.Background(), m, milp.DefaultOptions())
	require.ErrorIs(t, err, milp.ErrUnbounded)
	require.Equal(t, milp.StatusUnbounded, sol.Status)

	free := milp.NewModel("free", milp.Maximize)
	_, _ = free.AddVar("z", 0, math.Inf(1), milp.Continuous, 1)
	_, err = milp.Solve(context.Background(), free, milp.DefaultOptions())
	require.ErrorIs(t, err, milp.ErrUnbounded)
}

func TestSolve_UnconstrainedVariablesFollowObjective(t *testing.T) {
	m := milp.NewModel("free", milp.Minimize)
	_, _ = m.AddVar("up", 2, 5, milp.Integer, -1)
	_, _ = m.AddVar("down", 2, 5, milp.Integer, 1)

	sol, err := milp.Solve(context.Background(), m, milp.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, []float64{5, 2}, sol.Values)
	require.InDelta(t, -3, sol.Objective, epsObj)
}

func TestSolve_Limits(t *testing.T) {
	t.Run("node limit", func(t *testing.T) {
		opts := milp.DefaultOptions()
		opts.MaxNodes = 1
		sol, err := milp.Solve(context.Background(), fractionalRoot(t), opts)
		require.ErrorIs(t, err, milp.ErrLimitReached)
		require.Equal(t, milp.StatusLimitReached, sol.Status)
		require.False(t, sol.IsOptimal())
	})
	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		sol, err := milp.Solve(ctx, fractionalRoot(t), milp.DefaultOptions())
		require.ErrorIs(t, err, milp.ErrLimitReached)
		require.Zero(t, sol.Nodes)
	})
}

func TestSolve_InvalidOptions(t *testing.T) {
	opts := milp.DefaultOptions()
	opts.IntTol = 0
	_, err := milp.Solve(context.Background(), fractionalRoot(t), opts)
	require.ErrorIs(t, err, milp.ErrInvalidModel)

	_, err = milp.Solve(context.Background(), nil, milp.DefaultOptions())
	require.ErrorIs(t, err, milp.ErrInvalidModel)
}

func TestSolve_SeparatorCuts(t *testing.T) {
	m := fractionalRoot(t)
	x, y := 0, 1
	calls := 0
	opts := milp.DefaultOptions()
	opts.Separator = func(v []float64) []milp.Constraint {
		calls++
		// x+y ≤ 4 holds for every integer point of the model.
		return []milp.Constraint{{
			Name:  "sum",
			Terms: []milp.Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}},
			Rel:   milp.LessEq,
			RHS:   4,
		}}
	}

	sol, err := milp.Solve(context.Background(), m, opts)
	require.NoError(t, err)
	require.InDelta(t, 4, sol.Objective, epsObj)
	require.True(t, m.Feasible(sol.Values, 1e-9))
	require.Positive(t, calls)

	opts.Separator = func([]float64) []milp.Constraint {
		return []milp.Constraint{{Terms: []milp.Term{{Var: 7, Coef: 1}}, Rel: milp.LessEq, RHS: 0}}
	}
	_, err = milp.Solve(context.Background(), fractionalRoot(t), opts)
	require.ErrorIs(t, err, milp.ErrUnknownVar)
}

// bestByEnumeration scores every 0/1 point of a pure binary model.
func bestByEnumeration(m *milp.Model) (float64, bool) {
	n := m.NumVars()
	x := make([]float64, n)
	best, found := 0.0, false
	for mask := 0; mask < 1<<n; mask++ {
		for k := range x {
			x[k] = float64(mask >> k & 1)
		}
		if !m.Feasible(x, 1e-9) {
			continue
		}
		obj := m.Evaluate(x)
		if !found || (m.Sense() == milp.Maximize && obj > best) || (m.Sense() == milp.Minimize && obj < best) {
			best, found = obj, true
		}
	}
	return best, found
}

func TestSolve_RandomBinaryProgramsMatchEnumeration(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	rels := []milp.Relation{milp.LessEq, milp.GreaterEq, milp.Equal}
	for trial := 0; trial < 60; trial++ {
		sense := milp.Minimize
		if trial%2 == 1 {
			sense = milp.Maximize
		}
		m := milp.NewModel("random", sense)
		for k := 0; k < 8; k++ {
			_, err := m.AddVar("", 0, 1, milp.Binary, float64(rng.Intn(21)-10))
			require.NoError(t, err)
		}
		for r := 0; r < 4; r++ {
			terms := make([]milp.Term, 0, 8)
			var sum float64
			for k := 0; k < 8; k++ {
				if c := float64(rng.Intn(7) - 3); c != 0 {
					terms = append(terms, milp.Term{Var: k, Coef: c})
					sum += math.Abs(c)
				}
			}
			rel := rels[rng.Intn(2)]
			if r == 3 && trial%3 == 0 {
				rel = milp.Equal
			}
			rhs := math.Round(rng.Float64()*sum) - math.Round(sum/2)
			_, err := m.AddConstraint("", terms, rel, rhs)
			require.NoError(t, err)
		}

		want, ok := bestByEnumeration(m)
		sol, err := milp.Solve(context.Background(), m, milp.DefaultOptions())
		if !ok {
			require.ErrorIs(t, err, milp.ErrInfeasible, "trial %d", trial)
			continue
		}
		require.NoError(t, err, "trial %d", trial)
		require.InDelta(t, want, sol.Objective, epsObj, "trial %d", trial)
		require.True(t, m.Feasible(sol.Values, 1e-9), "trial %d", trial)
	}
}

func TestSolve_TimeLimitInsideRelaxation(t *testing.T) {
	// A dense LP large enough that its first relaxation outlives 1ms.
	rng := rand.New(rand.NewSource(3))
	m := milp.NewModel("dense", milp.Maximize)
	const n = 150
	for k := 0; k < n; k++ {
		_, err := m.AddVar("", 0, 10, milp.Integer, 1+rng.Float64())
		require.NoError(t, err)
	}
	for r := 0; r < n; r++ {
		terms := make([]milp.Term, n)
		for k := range terms {
			terms[k] = milp.Term{Var: k, Coef: 1 + 9*rng.Float64()}
		}
		_, err := m.AddConstraint("", terms, milp.LessEq, 100+rng.Float64()*100)
		require.NoError(t, err)
	}

	opts := milp.DefaultOptions()
	opts.TimeLimit = time.Millisecond
	start := time.Now()
	sol, err := milp.Solve(context.Background(), m, opts)
	require.ErrorIs(t, err, milp.ErrLimitReached)
	require.Equal(t, milp.StatusLimitReached, sol.Status)
	require.Less(t, time.Since(start), 2*time.Second)
}
