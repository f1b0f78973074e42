// SPDX-License-Identifier: MIT

package tsp

import (
	"math"

	"github.com/juju/errors"
	"github.com/liam-crow/stats-blog/matrix"
)

// roundScale stabilises reported costs to 1e-9 so they compare equal
// across platforms.
const roundScale = 1e9

// TourCost sums dist along tour[i]→tour[i+1].
//
// Errors: ErrInvalidInput for a nil matrix, a tour shorter than 2, an
// index outside the matrix, or a NaN, infinite or negative weight.
//
// Complexity: O(len(tour)).
func TourCost(dist matrix.Matrix, tour []int) (float64, error) {
	if dist == nil || len(tour) < 2 {
		return 0, errors.Annotate(ErrInvalidInput, "tour cost needs a matrix and at least one arc")
	}
	var sum float64
	for i := 0; i+1 < len(tour); i++ {
		w, err := edgeCost(dist, tour[i], tour[i+1])
		if err != nil {
			return 0, err
		}
		sum += w
	}
	return round1e9(sum), nil
}

// edgeCost reads one arc weight with strict validation.
func edgeCost(m matrix.Matrix, u, v int) (float64, error) {
	w, err := m.At(u, v)
	if err != nil {
		return 0, errors.Annotatef(ErrInvalidInput, "arc %d->%d: %v", u, v, err)
	}
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0, errors.Annotatef(ErrInvalidInput, "arc %d->%d weight %v", u, v, w)
	}
	return w, nil
}

func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
