// SPDX-License-Identifier: MIT

package conductivity

import "errors"

var (
	// ErrUnknownBroadening indicates a broadening name other than "lorentz"
	// or "gauss".
	ErrUnknownBroadening = errors.New("conductivity: unknown broadening function")

	// ErrInvalidWidth indicates a non-positive or non-finite broadening width.
	ErrInvalidWidth = errors.New("conductivity: broadening width must be finite and > 0")

	// ErrDimensionMismatch indicates vectors or operators of incompatible length.
	ErrDimensionMismatch = errors.New("conductivity: dimension mismatch")
)
