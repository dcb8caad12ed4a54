// SPDX-License-Identifier: MIT

package conductivity

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ExcitonWeights returns the oscillator strength |Σ_t conj(A_tn) m_t|² of
// every exciton n, where column n of amplitudes is exciton n in the
// transition basis and elements holds one matrix element per transition.
//
// Errors: ErrDimensionMismatch.
//
// Complexity: O(T·N).
func ExcitonWeights(amplitudes mat.CMatrix, elements []complex128) ([]float64, error) {
	if amplitudes == nil {
		return nil, nil
	}
	rows, cols := amplitudes.Dims()
	if rows != len(elements) {
		return nil, fmt.Errorf("%d transitions, %d elements: %w", rows, len(elements), ErrDimensionMismatch)
	}
	out := make([]float64, cols)
	for n := 0; n < cols; n++ {
		var sum complex128
		for t, m := range elements {
			sum += cmplx.Conj(amplitudes.At(t, n)) * m
		}
		out[n] = real(sum)*real(sum) + imag(sum)*imag(sum)
	}

	return out, nil
}

// Spectrum evaluates Σ_n weights[n]·b(ω, energies[n]) at every frequency.
//
// Errors: ErrDimensionMismatch.
//
// Complexity: O(F·N).
func Spectrum(freqs, energies, weights []float64, b Broadening) ([]float64, error) {
	if len(energies) != len(weights) {
		return nil, fmt.Errorf("%d energies, %d weights: %w", len(energies), len(weights), ErrDimensionMismatch)
	}
	out := make([]float64, len(freqs))
	for i, w := range freqs {
		for n, e := range energies {
			out[i] += weights[n] * b(w, e)
		}
	}

	return out, nil
}

// Frequencies returns n evenly spaced points from lo to hi inclusive.
func Frequencies(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}

	return floats.Span(make([]float64, n), lo, hi)
}
