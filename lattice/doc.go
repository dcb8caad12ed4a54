// SPDX-License-Identifier: MIT

// Package lattice provides the 2D Bravais-lattice geometry used by the exciton
// engine: periodic folding of displacements into the unit cell, enumeration of
// translation vectors inside a real-space radius, structure-factor phases and
// a square k-grid index helper.
//
// What & Why:
//
//	Every lattice sum in the interaction assembler iterates translations
//	R = m·a1 + n·a2, and every momentum-conservation test on a k-point
//	quartet folds a momentum balance into the reciprocal cell. Both must be
//	exact for lattice vectors and deterministic for everything else, so the
//	whole module reproduces identical matrix-element stores for identical
//	inputs.
//
// Conventions:
//
//   - Vectors are gonum r2.Vec values (X, Y in Cartesian length units).
//   - Fold uses the half-open parallelogram cell: fractional coordinates in
//     [0, 1). A coordinate within Epsilon of an integer is snapped to that
//     integer first, so exact lattice vectors fold to a zero remainder and a
//     point on the upper cell face belongs to the next cell.
//   - VectorsWithin yields translations ordered by norm quantized to Epsilon,
//     ties broken lexicographically on (m, n).
//
// Usage:
//
//	lat, err := lattice.New(r2.Vec{X: 3.19}, r2.Vec{X: 1.595, Y: -2.76262104})
//	if err != nil { ... }
//	rem, m, n := lat.Fold(v)
//	for t := range lat.VectorsWithin(10) {
//		_ = t.R
//	}
//
// Complexity:
//
//	Fold, Fractional, Cartesian: O(1).
//	VectorsWithin(r): O(K log K) with K ≈ π r² / |a1 × a2| translations.
package lattice
