// SPDX-License-Identifier: MIT

package conductivity

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// VelocityMatrixElement returns conj(cb)·(V vb).
//
// Errors: ErrDimensionMismatch.
//
// Complexity: O(O²).
func VelocityMatrixElement(vb, cb []complex128, v *mat.CDense) (complex128, error) {
	mv, err := apply(v, vb, len(cb))
	if err != nil {
		return 0, err
	}

	return cmplxs.Dot(cb, mv), nil
}

// ResidualTerm returns (ev − ec) · conj(vc)·(motifPol ∘ vv), the position
// matrix element of orbitals taken as point charges on their atoms.
//
// Errors: ErrDimensionMismatch.
func ResidualTerm(vc, vv []complex128, ec, ev float64, motifPol []complex128) (complex128, error) {
	if len(vc) != len(vv) || len(vv) != len(motifPol) {
		return 0, fmt.Errorf("vectors %d/%d, motif %d: %w", len(vc), len(vv), len(motifPol), ErrDimensionMismatch)
	}
	weighted := cmplxs.MulTo(make([]complex128, len(vv)), motifPol, vv)

	return complex(ev-ec, 0) * cmplxs.Dot(vc, weighted), nil
}

// PositionDipoleElement returns i (ev − ec) · conj(vc)·(D vv).
//
// Errors: ErrDimensionMismatch.
func PositionDipoleElement(vc, vv []complex128, ec, ev float64, d *mat.CDense) (complex128, error) {
	dv, err := apply(d, vv, len(vc))
	if err != nil {
		return 0, err
	}

	return complex(0, ev-ec) * cmplxs.Dot(vc, dv), nil
}

// apply returns m·x, checking that the result has length want.
func apply(m *mat.CDense, x []complex128, want int) ([]complex128, error) {
	if m == nil {
		return nil, fmt.Errorf("nil operator: %w", ErrDimensionMismatch)
	}
	r, c := m.Dims()
	if c != len(x) || r != want {
		return nil, fmt.Errorf("operator %dx%d, vectors %d/%d: %w", r, c, want, len(x), ErrDimensionMismatch)
	}
	out := make([]complex128, r)
	cblas128.Gemv(blas.NoTrans, 1, m.RawCMatrix(),
		cblas128.Vector{N: c, Inc: 1, Data: x}, 0,
		cblas128.Vector{N: r, Inc: 1, Data: out})

	return out, nil
}

// PolarisationVector maps "x", "y", "lh" and "rh" (any case) to the in-plane
// polarisation. Unknown names fall back to "x".
func PolarisationVector(name string) [2]complex128 {
	s2 := complex(math.Sqrt2, 0)
	switch strings.ToLower(name) {
	case "y":
		return [2]complex128{0, 1}
	case "lh":
		return [2]complex128{s2, complex(0, math.Sqrt2)}
	case "rh":
		return [2]complex128{s2, complex(0, -math.Sqrt2)}
	default:
		return [2]complex128{1, 0}
	}
}

// MotifPolarised projects every orbital position onto pol:
// p_o = pol[0]·x_o + pol[1]·y_o.
func MotifPolarised(pol [2]complex128, positions []r2.Vec) []complex128 {
	out := make([]complex128, len(positions))
	for i, p := range positions {
		out[i] = pol[0]*complex(p.X, 0) + pol[1]*complex(p.Y, 0)
	}

	return out
}
