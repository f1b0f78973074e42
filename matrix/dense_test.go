// Package matrix_test contains unit tests for the Dense and Symmetric
// storages of the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/liam-crow/stats-blog/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrIndexOutOfBounds on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)

	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)

	err = m.Set(2, 0, 1.23)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
}

func TestNewDenseFrom(t *testing.T) {
	m, err := matrix.NewDenseFrom([][]float64{{0, 1, 2}, {3, 0, 4}})
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 4.0, v)
	require.Equal(t, "[0, 1, 2]\n[3, 0, 4]\n", m.String())

	_, err = matrix.NewDenseFrom([][]float64{{0, 1}, {1}})
	require.ErrorIs(t, err, matrix.ErrRaggedRows)

	_, err = matrix.NewDenseFrom(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestCloneIndependence verifies that modifying a clone does not affect the original.
func TestCloneIndependence(t *testing.T) {
	orig, err := matrix.NewDenseFrom([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	cp := orig.Clone()
	require.NoError(t, cp.Set(0, 0, 9))

	v, _ := orig.At(0, 0)
	require.Equal(t, 1.0, v)
	v, _ = cp.At(0, 0)
	require.Equal(t, 9.0, v)
}

func TestSymmetric_MirrorsWrites(t *testing.T) {
	const n = 5
	s, err := matrix.NewSymmetric(n)
	require.NoError(t, err)

	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			require.NoError(t, s.SetSym(j, i, float64(10*i+j)))
		}
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			a, err := s.At(i, j)
			require.NoError(t, err)
			b, err := s.At(j, i)
			require.NoError(t, err)
			require.Equal(t, a, b, "a[%d][%d] vs a[%d][%d]", i, j, j, i)
			if i == j {
				require.Zero(t, a)
			}
		}
	}
	v, _ := s.At(3, 1)
	require.Equal(t, 13.0, v)

	d := s.Dense()
	v, _ = d.At(1, 3)
	require.Equal(t, 13.0, v)
	require.True(t, matrix.IsSymmetric(d, 0))
}

func TestSymmetric_Errors(t *testing.T) {
	_, err := matrix.NewSymmetric(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	s, err := matrix.NewSymmetric(2)
	require.NoError(t, err)
	require.NoError(t, s.SetSym(1, 1, 0))
	require.ErrorIs(t, s.SetSym(1, 1, 3), matrix.ErrDiagonalWrite)
	require.ErrorIs(t, s.SetSym(0, 2, 1), matrix.ErrIndexOutOfBounds)
	_, err = s.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
}

func TestValidateDistance(t *testing.T) {
	cases := []struct {
		name string
		rows [][]float64
		want error
	}{
		{"ok", [][]float64{{0, 1}, {1, 0}}, nil},
		{"non-square", [][]float64{{0, 1, 2}, {1, 0, 2}}, matrix.ErrNonSquare},
		{"diagonal", [][]float64{{0, 1}, {1, 0.5}}, matrix.ErrNonZeroDiagonal},
		{"negative", [][]float64{{0, -1}, {1, 0}}, matrix.ErrNegative},
		{"inf", [][]float64{{0, math.Inf(1)}, {1, 0}}, matrix.ErrNaNInf},
		{"nan", [][]float64{{0, 1}, {math.NaN(), 0}}, matrix.ErrNaNInf},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := matrix.NewDenseFrom(tc.rows)
			require.NoError(t, err)
			n, err := matrix.ValidateDistance(m, 1e-12)
			if tc.want == nil {
				require.NoError(t, err)
				require.Equal(t, len(tc.rows), n)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := matrix.ValidateDistance(nil, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestIsSymmetric(t *testing.T) {
	asym, err := matrix.NewDenseFrom([][]float64{{0, 1}, {2, 0}})
	require.NoError(t, err)
	require.False(t, matrix.IsSymmetric(asym, 1e-9))
	require.True(t, matrix.IsSymmetric(asym, 1.5))
	require.False(t, matrix.IsSymmetric(nil, 0))
}
