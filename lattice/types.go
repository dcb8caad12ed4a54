// SPDX-License-Identifier: MIT

package lattice

import "gonum.org/v1/gonum/spatial/r2"

// DefaultEpsilon is the tolerance used to snap fractional coordinates onto
// integers and to compare translation norms.
const DefaultEpsilon = 1e-9

const panicEpsilonInvalid = "lattice: WithEpsilon: eps must be finite and > 0"

// Lattice is an immutable 2D Bravais lattice spanned by A1 and A2.
// The inverse basis is cached at construction so folding is O(1).
type Lattice struct {
	a1, a2 r2.Vec
	inv    [4]float64 // row-major inverse of [a1 a2] (columns)
	eps    float64
}

// Translation is one lattice vector R = M·a1 + N·a2 with its cached norm.
type Translation struct {
	M, N int
	R    r2.Vec
	Norm float64
}

// Option tunes a Lattice at construction.
type Option func(*Lattice)

// WithEpsilon sets the snapping/tie tolerance. Panics on eps <= 0 or non-finite
// values (programmer error).
func WithEpsilon(eps float64) Option {
	if !(eps > 0) || isNonFinite(eps) {
		panic(panicEpsilonInvalid)
	}

	return func(l *Lattice) { l.eps = eps }
}
