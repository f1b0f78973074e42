// SPDX-License-Identifier: MIT

package matrix

import (
	"math"

	"github.com/juju/errors"
)

// ValidateDistance checks that m can serve as a distance table:
//   - non-nil and square with n ≥ 1,
//   - |a_ii| ≤ tol,
//   - every entry finite and non-negative.
//
// Returns n on success.
//
// Complexity: O(n²).
func ValidateDistance(m Matrix, tol float64) (int, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	n := m.Rows()
	if n != m.Cols() || n <= 0 {
		return 0, errors.Annotatef(ErrNonSquare, "%dx%d", m.Rows(), m.Cols())
	}

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, errors.Trace(err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, errors.Annotatef(ErrNaNInf, "a[%d][%d]", i, j)
			}
			if i == j {
				if math.Abs(v) > tol {
					return 0, errors.Annotatef(ErrNonZeroDiagonal, "a[%d][%d]=%g", i, i, v)
				}
				continue
			}
			if v < 0 {
				return 0, errors.Annotatef(ErrNegative, "a[%d][%d]=%g", i, j, v)
			}
		}
	}

	return n, nil
}

// IsSymmetric reports whether |a_ij − a_ji| ≤ tol for every pair.
// Non-square or unreadable matrices are reported as not symmetric.
//
// Complexity: O(n²) over the upper triangle.
func IsSymmetric(m Matrix, tol float64) bool {
	if m == nil || m.Rows() != m.Cols() {
		return false
	}
	if _, ok := m.(*Symmetric); ok {
		return true
	}
	n := m.Rows()
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			a, err1 := m.At(i, j)
			b, err2 := m.At(j, i)
			if err1 != nil || err2 != nil || math.Abs(a-b) > tol {
				return false
			}
		}
	}

	return true
}
