// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// New builds a lattice from two in-plane basis vectors.
//
// Implementation:
//   - Stage 1: reject NaN/Inf components.
//   - Stage 2: reject degenerate bases (|a1 × a2| ≤ eps·|a1|·|a2|).
//   - Stage 3: invert the 2×2 basis matrix with gonum and cache the result.
//
// Errors: ErrNonFinite, ErrDegenerateBasis.
//
// Complexity: O(1).
func New(a1, a2 r2.Vec, opts ...Option) (*Lattice, error) {
	l := &Lattice{a1: a1, a2: a2, eps: DefaultEpsilon}
	for _, opt := range opts {
		opt(l)
	}

	// Stage 1: finite components only.
	for _, x := range []float64{a1.X, a1.Y, a2.X, a2.Y} {
		if isNonFinite(x) {
			return nil, ErrNonFinite
		}
	}

	// Stage 2: area check relative to the basis lengths.
	area := math.Abs(r2.Cross(a1, a2))
	if area <= l.eps*r2.Norm(a1)*r2.Norm(a2) || area == 0 {
		return nil, ErrDegenerateBasis
	}

	// Stage 3: cache the inverse of the column basis.
	basis := mat.NewDense(2, 2, []float64{
		a1.X, a2.X,
		a1.Y, a2.Y,
	})
	var inv mat.Dense
	if err := inv.Inverse(basis); err != nil {
		return nil, fmt.Errorf("lattice: invert basis: %v: %w", err, ErrDegenerateBasis)
	}
	l.inv = [4]float64{inv.At(0, 0), inv.At(0, 1), inv.At(1, 0), inv.At(1, 1)}

	return l, nil
}

// A1 returns the first basis vector.
func (l *Lattice) A1() r2.Vec { return l.a1 }

// A2 returns the second basis vector.
func (l *Lattice) A2() r2.Vec { return l.a2 }

// Epsilon returns the snapping tolerance in effect.
func (l *Lattice) Epsilon() float64 { return l.eps }

// Area returns the unit-cell area |a1 × a2|.
func (l *Lattice) Area() float64 { return math.Abs(r2.Cross(l.a1, l.a2)) }

// Fractional returns the coordinates (f1, f2) of v in the basis: v = f1·a1 + f2·a2.
func (l *Lattice) Fractional(v r2.Vec) (f1, f2 float64) {
	return l.inv[0]*v.X + l.inv[1]*v.Y, l.inv[2]*v.X + l.inv[3]*v.Y
}

// Cartesian maps fractional coordinates back to a Cartesian vector.
func (l *Lattice) Cartesian(f1, f2 float64) r2.Vec {
	return r2.Add(r2.Scale(f1, l.a1), r2.Scale(f2, l.a2))
}

// At returns the translation m·a1 + n·a2.
func (l *Lattice) At(m, n int) r2.Vec {
	return l.Cartesian(float64(m), float64(n))
}

// Reciprocal returns the reciprocal lattice b1, b2 with b_i·a_j = 2π δ_ij.
// The reciprocal of a valid lattice is always valid, so no error is returned.
func (l *Lattice) Reciprocal() *Lattice {
	b1 := r2.Vec{X: 2 * math.Pi * l.inv[0], Y: 2 * math.Pi * l.inv[1]}
	b2 := r2.Vec{X: 2 * math.Pi * l.inv[2], Y: 2 * math.Pi * l.inv[3]}
	// inverse of [b1 b2] is Aᵀ/2π
	return &Lattice{
		a1:  b1,
		a2:  b2,
		inv: [4]float64{l.a1.X / (2 * math.Pi), l.a1.Y / (2 * math.Pi), l.a2.X / (2 * math.Pi), l.a2.Y / (2 * math.Pi)},
		eps: l.eps,
	}
}

func isNonFinite(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
