// SPDX-License-Identifier: MIT

package fourier

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// ElectronDensity returns the pair-density rows conj(c_i)·c'_i for every
// (c, c') in left × right, c-major: row = a*len(right) + b.
// Every vector must have the same length (the orbital count).
//
// Complexity: O(|left|·|right|·O).
func ElectronDensity(left, right [][]complex128) *mat.CDense {
	return pairDensity(left, right, func(x, y complex128) complex128 { return cmplx.Conj(x) * y })
}

// HoleDensity returns the pair-density rows v_j·conj(v'_j) for every
// (v, v') in left × right, v-major.
func HoleDensity(left, right [][]complex128) *mat.CDense {
	return pairDensity(left, right, func(x, y complex128) complex128 { return x * cmplx.Conj(y) })
}

func pairDensity(left, right [][]complex128, f func(x, y complex128) complex128) *mat.CDense {
	if len(left) == 0 || len(right) == 0 {
		return nil
	}
	nOrb := len(left[0])
	out := mat.NewCDense(len(left)*len(right), nOrb, nil)
	for a, u := range left {
		for b, w := range right {
			r := a*len(right) + b
			for i := 0; i < nOrb; i++ {
				out.Set(r, i, f(u[i], w[i]))
			}
		}
	}

	return out
}

// Project returns scale · E · V_orb(q) · Hᵀ, the band-basis interaction for
// electron pair densities E (rows × O) and hole pair densities H (cols × O).
//
// Implementation:
//   - Stage 1: check that both densities span the assembler's orbitals.
//   - Stage 2: T = V_orb(q) · Hᵀ (O × cols) with cblas128.Gemm.
//   - Stage 3: W = scale · E · T (rows × cols).
//
// Errors: ErrDimensionMismatch.
func (a *Assembler) Project(q r2.Vec, electron, hole *mat.CDense, scale complex128) (*mat.CDense, error) {
	// Stage 1: shapes.
	if electron == nil || hole == nil {
		return nil, fmt.Errorf("nil pair density: %w", ErrDimensionMismatch)
	}
	nOrb := len(a.orbAtom)
	er, ec := electron.Dims()
	hr, hc := hole.Dims()
	if ec != nOrb || hc != nOrb {
		return nil, fmt.Errorf("densities have %d/%d orbitals, want %d: %w", ec, hc, nOrb, ErrDimensionMismatch)
	}
	vorb := a.OrbitalMatrix(q)

	// Stage 2: T = V·Hᵀ.
	tmp := mat.NewCDense(nOrb, hr, nil)
	cblas128.Gemm(blas.NoTrans, blas.Trans, 1, vorb.RawCMatrix(), hole.RawCMatrix(), 0, tmp.RawCMatrix())

	// Stage 3: W = scale·E·T.
	out := mat.NewCDense(er, hr, nil)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, scale, electron.RawCMatrix(), tmp.RawCMatrix(), 0, out.RawCMatrix())

	return out, nil
}
