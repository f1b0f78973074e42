// SPDX-License-Identifier: MIT

package matrix

import "github.com/juju/errors"

// Symmetric is an n×n matrix with an implicit zero diagonal that stores
// only the strict upper triangle, n(n-1)/2 values, row by row.
//
//	At(i,j) == At(j,i)  for all i, j
//	At(i,i) == 0        for all i
type Symmetric struct {
	n    int
	data []float64
}

var _ Matrix = (*Symmetric)(nil)

// NewSymmetric allocates an n×n zero matrix. n must be positive.
func NewSymmetric(n int) (*Symmetric, error) {
	if n <= 0 {
		return nil, errors.Annotatef(ErrInvalidDimensions, "NewSymmetric(%d)", n)
	}

	return &Symmetric{n: n, data: make([]float64, n*(n-1)/2)}, nil
}

// Rows returns n.
func (s *Symmetric) Rows() int { return s.n }

// Cols returns n.
func (s *Symmetric) Cols() int { return s.n }

// offset maps i<j into the packed triangle.
func (s *Symmetric) offset(i, j int) int {
	return i*s.n - i*(i+1)/2 + (j - i - 1)
}

// At returns the distance between i and j.
func (s *Symmetric) At(i, j int) (float64, error) {
	if i < 0 || i >= s.n || j < 0 || j >= s.n {
		return 0, errors.Annotatef(ErrIndexOutOfBounds, "Symmetric.At(%d,%d)", i, j)
	}
	if i == j {
		return 0, nil
	}
	if i > j {
		i, j = j, i
	}

	return s.data[s.offset(i, j)], nil
}

// SetSym assigns v to both (i,j) and (j,i).
// Writing zero on the diagonal is a no-op; any other diagonal write fails.
func (s *Symmetric) SetSym(i, j int, v float64) error {
	if i < 0 || i >= s.n || j < 0 || j >= s.n {
		return errors.Annotatef(ErrIndexOutOfBounds, "Symmetric.SetSym(%d,%d)", i, j)
	}
	if i == j {
		if v != 0 {
			return errors.Annotatef(ErrDiagonalWrite, "Symmetric.SetSym(%d,%d)=%g", i, j, v)
		}
		return nil
	}
	if i > j {
		i, j = j, i
	}
	s.data[s.offset(i, j)] = v

	return nil
}

// Dense expands the triangle into a full row-major copy.
// Complexity: O(n²).
func (s *Symmetric) Dense() *Dense {
	d := &Dense{r: s.n, c: s.n, data: make([]float64, s.n*s.n)}
	var i, j int
	for i = 0; i < s.n; i++ {
		for j = i + 1; j < s.n; j++ {
			v := s.data[s.offset(i, j)]
			d.data[i*s.n+j] = v
			d.data[j*s.n+i] = v
		}
	}

	return d
}
