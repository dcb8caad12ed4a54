// SPDX-License-Identifier: MIT

package lattice

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Fold reduces v modulo the lattice.
//
// It returns the representative rem inside the half-open cell
// {f1·a1 + f2·a2 : 0 ≤ f1, f2 < 1} together with the integer multiples (m, n)
// that were subtracted, so that v = rem + m·a1 + n·a2 (up to rounding).
//
// Behavior highlights:
//   - Exact lattice vectors fold to the zero vector with their own (m, n).
//   - A fractional coordinate within Epsilon of an integer is snapped to it
//     before flooring, so a point on the upper face of the cell belongs to
//     the next cell and the fractional remainder of a non-snapped coordinate
//     always lies in [eps, 1-eps]. This makes Fold idempotent:
//     Fold(Fold(v).rem) returns the same rem with (0, 0).
//
// Complexity: O(1).
func (l *Lattice) Fold(v r2.Vec) (rem r2.Vec, m, n int) {
	f1, f2 := l.Fractional(v)
	f1, f2 = snap(f1, l.eps), snap(f2, l.eps)

	fm, fn := math.Floor(f1), math.Floor(f2)
	rem = l.Cartesian(f1-fm, f2-fn)

	return rem, int(fm), int(fn)
}

// IsLatticeVector reports whether v folds to a zero remainder.
func (l *Lattice) IsLatticeVector(v r2.Vec) bool {
	rem, _, _ := l.Fold(v)

	return rem.X == 0 && rem.Y == 0
}

// snap rounds f to the nearest integer when it is within eps of it.
func snap(f, eps float64) float64 {
	r := math.Round(f)
	if math.Abs(f-r) <= eps {
		return r
	}

	return f
}
