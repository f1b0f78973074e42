// SPDX-License-Identifier: MIT

// Package matrix holds the distance tables consumed by the tour solvers.
//
// Two storages implement the read-only Matrix interface:
//
//   - Dense: row-major n×m storage, mutable through Set. Used for
//     hand-written (possibly asymmetric) instances.
//   - Symmetric: packed upper triangle with an implicit zero diagonal.
//     Used by the great-circle builder; every SetSym writes both halves,
//     so D[i][j] == D[j][i] holds by construction.
//
// Validators (ValidateDistance, IsSymmetric) are pure O(n²) scans that
// return the sentinels declared in errors.go.
package matrix
