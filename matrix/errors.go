// SPDX-License-Identifier: MIT

package matrix

import "github.com/juju/errors"

// Every message is prefixed with "matrix: ..." so it greps cleanly in logs.
// Context is added with errors.Annotatef at the call site; callers match
// with errors.Is.
var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
	ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrRaggedRows is returned by NewDenseFrom when rows differ in length.
	ErrRaggedRows = errors.New("matrix: ragged rows")

	// ErrNilMatrix indicates that a nil Matrix was passed to a validator.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNonZeroDiagonal signals a diagonal entry outside the tolerance.
	ErrNonZeroDiagonal = errors.New("matrix: diagonal not zero within eps")

	// ErrNaNInf signals a NaN or ±Inf value where a finite distance is required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNegative signals a negative distance.
	ErrNegative = errors.New("matrix: negative distance")

	// ErrDiagonalWrite is returned when SetSym targets the fixed zero diagonal
	// with a non-zero value.
	ErrDiagonalWrite = errors.New("matrix: symmetric diagonal is fixed at zero")
)
