// SPDX-License-Identifier: MIT

package exciton

import "errors"

var (
	// ErrOutOfRange indicates a k-point, spin or band index outside the dataset.
	ErrOutOfRange = errors.New("exciton: index out of range")

	// ErrForeignStore indicates a store built from a different dataset.
	ErrForeignStore = errors.New("exciton: store does not belong to this engine")

	// ErrNilStore indicates a nil interaction store.
	ErrNilStore = errors.New("exciton: nil store")

	// ErrNoConvergence indicates the eigensolver failed.
	ErrNoConvergence = errors.New("exciton: eigendecomposition did not converge")
)
