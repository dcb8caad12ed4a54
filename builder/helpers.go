// SPDX-License-Identifier: MIT
// Package: excitontb/builder
//
// helpers.go: eigenvector generators shared by the band constructors.

package builder

import (
	"math"
	"math/cmplx"
	"math/rand"
)

const maxFloat = math.MaxFloat64

// unitVectors returns nb unit vectors e_b of length nOrbs (nb ≤ nOrbs).
// Complexity: O(nb·nOrbs).
func unitVectors(nb, nOrbs int) [][]complex128 {
	out := make([][]complex128, nb)
	for b := range out {
		out[b] = make([]complex128, nOrbs)
		out[b][b] = 1
	}

	return out
}

// randomOrthonormal draws nb orthonormal complex vectors of length nOrbs by
// modified Gram–Schmidt over Gaussian samples. nb ≤ nOrbs is required.
// Complexity: O(nb²·nOrbs).
func randomOrthonormal(rng *rand.Rand, nb, nOrbs int) [][]complex128 {
	out := make([][]complex128, 0, nb)
	for len(out) < nb {
		v := make([]complex128, nOrbs)
		for i := range v {
			v[i] = complex(rng.NormFloat64(), rng.NormFloat64())
		}
		for _, u := range out {
			var proj complex128
			for i := range u {
				proj += cmplx.Conj(u[i]) * v[i]
			}
			for i := range v {
				v[i] -= proj * u[i]
			}
		}
		var norm float64
		for _, z := range v {
			norm += real(z)*real(z) + imag(z)*imag(z)
		}
		norm = math.Sqrt(norm)
		// a nearly dependent draw is discarded and redrawn
		if norm < 1e-8 {
			continue
		}
		for i := range v {
			v[i] /= complex(norm, 0)
		}
		out = append(out, v)
	}

	return out
}
