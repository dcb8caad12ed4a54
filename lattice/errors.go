// SPDX-License-Identifier: MIT

package lattice

import "errors"

var (
	// ErrDegenerateBasis indicates that a1 and a2 are (numerically) collinear
	// or one of them is zero, so no 2D cell exists.
	ErrDegenerateBasis = errors.New("lattice: degenerate basis vectors")

	// ErrNonFinite indicates a NaN or ±Inf component in a basis vector.
	ErrNonFinite = errors.New("lattice: NaN or Inf component")

	// ErrBadGrid indicates a non-positive k-grid size.
	ErrBadGrid = errors.New("lattice: grid size must be > 0")
)
