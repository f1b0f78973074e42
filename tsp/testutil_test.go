package tsp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/liam-crow/stats-blog/matrix"
	"github.com/stretchr/testify/require"
)

const epsCost = 1e-6

// unitSquare is the square with side 1, visited in the order 0,1,2,3.
func unitSquare(t testing.TB) *matrix.Dense {
	t.Helper()
	s := math.Sqrt2
	d, err := matrix.NewDenseFrom([][]float64{
		{0, 1, s, 1},
		{1, 0, 1, s},
		{s, 1, 0, 1},
		{1, s, 1, 0},
	})
	require.NoError(t, err)
	return d
}

// randomPlane returns the Euclidean distance table of n random points in
// the unit square.
func randomPlane(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i], ys[i] = rng.Float64(), rng.Float64()
	}
	d, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				require.NoError(t, d.Set(i, j, math.Hypot(xs[i]-xs[j], ys[i]-ys[j])))
			}
		}
	}
	return d
}

// uniform returns an n×n table with every off-diagonal entry set to w.
func uniform(t testing.TB, n int, w float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				require.NoError(t, d.Set(i, j, w))
			}
		}
	}
	return d
}
