// SPDX-License-Identifier: MIT

package tsp

import (
	"math/big"

	"github.com/juju/errors"
)

// HamiltonianCycles returns (n−1)!/2, the number of distinct undirected
// Hamiltonian cycles of the complete graph on n vertices.
//
// Errors: ErrInvalidInput for n < 3.
func HamiltonianCycles(n int) (*big.Int, error) {
	if n < 3 {
		return nil, errors.Annotatef(ErrInvalidInput, "n=%d, need at least 3", n)
	}
	f := new(big.Int).MulRange(1, int64(n-1))
	return f.Rsh(f, 1), nil
}
