// SPDX-License-Identifier: MIT

package tsp

import (
	"github.com/juju/errors"
	"github.com/liam-crow/stats-blog/matrix"
)

// diagTol is the structural tolerance for the zero diagonal.
const diagTol = 1e-12

// validateDist checks dist and returns its order n. Any matrix-level
// failure is reported as ErrInvalidInput.
//
// Complexity: O(n²).
func validateDist(dist matrix.Matrix) (int, error) {
	n, err := matrix.ValidateDistance(dist, diagTol)
	if err != nil {
		return 0, errors.Annotatef(ErrInvalidInput, "distance matrix: %v", err)
	}
	return n, nil
}

// validateObjective rejects unknown objective values.
func validateObjective(o Objective) error {
	if !o.valid() {
		return errors.Annotatef(ErrInvalidInput, "objective %v", o)
	}
	return nil
}

// costTol is the absolute tolerance used when comparing two tour lengths.
func costTol(scale float64) float64 {
	if scale < 0 {
		scale = -scale
	}
	if scale < 1 {
		scale = 1
	}
	return 1e-6 * scale
}
