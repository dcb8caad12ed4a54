// SPDX-License-Identifier: MIT

package fourier

import "errors"

var (
	// ErrBadMotif indicates a nil lattice or an empty motif.
	ErrBadMotif = errors.New("fourier: invalid motif")

	// ErrBadOrbitalMap indicates an orbital mapped to a non-existent atom.
	ErrBadOrbitalMap = errors.New("fourier: orbital-to-atom map out of range")

	// ErrDimensionMismatch indicates pair densities whose orbital dimension
	// differs from the assembler's.
	ErrDimensionMismatch = errors.New("fourier: dimension mismatch")
)
