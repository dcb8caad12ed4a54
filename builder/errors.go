// SPDX-License-Identifier: MIT
// Package: excitontb/builder
//
// errors.go: sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Constructors attach the method name via builderErrorf.
//   • Option constructors panic instead (see options.go).

package builder

import (
	"errors"
	"fmt"
)

// ErrTooSmall indicates a size parameter below its documented minimum
// (supercell, grid divisions, band counts, orbital pattern entries).
var ErrTooSmall = errors.New("builder: parameter too small")

// ErrOutOfOrder indicates a constructor ran before the data it depends on
// existed (e.g. KGrid before Hexagonal, Bands before Orbitals).
var ErrOutOfOrder = errors.New("builder: constructor applied out of order")

// ErrBadBands indicates more bands than orbitals, or a non-finite energy
// returned by an EnergyFn.
var ErrBadBands = errors.New("builder: invalid band layout")

// ErrConstructFailed indicates Build could not produce a valid dataset
// (nil constructor, final validation failure).
var ErrConstructFailed = errors.New("builder: construction failed")

// ErrUnknownSample indicates a sample number other than 1, 2 or 3.
var ErrUnknownSample = errors.New("builder: unknown sample")

// builderErrorf prefixes a wrapped error with the constructor name:
// "<Method>: <message>". The format must contain one %w.
func builderErrorf(method, format string, args ...any) error {
	return fmt.Errorf(method+": "+format, args...)
}
