// SPDX-License-Identifier: MIT

package builder

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point identifies a k point handed to an EnergyFn.
type Point struct {
	Index int    // flat grid index i*NK + j
	K     r2.Vec // Cartesian crystal momentum
}

// EnergyFn returns the energy of band (0..NVal+NCon-1) at point p.
// It must be deterministic; Bands rejects non-finite results.
type EnergyFn func(p Point, band int) float64

// FlatBands uses the same levels at every k point: levels[band].
// Bands beyond len(levels) evaluate to NaN.
func FlatBands(levels ...float64) EnergyFn {
	cp := append([]float64(nil), levels...)
	return func(_ Point, band int) float64 {
		if band < 0 || band >= len(cp) {
			return math.NaN()
		}
		return cp[band]
	}
}

// PointLevels is FlatBands(base...) with per-point overrides keyed by the
// flat grid index.
func PointLevels(base []float64, at map[int][]float64) EnergyFn {
	def := FlatBands(base...)
	over := make(map[int]EnergyFn, len(at))
	for idx, levels := range at {
		over[idx] = FlatBands(levels...)
	}
	return func(p Point, band int) float64 {
		if fn, ok := over[p.Index]; ok {
			return fn(p, band)
		}
		return def(p, band)
	}
}

// Dispersive models nVal valence bands below zero and conduction bands
// starting at gap, spaced by step, with a smooth dispersion of the given
// width that is minimal (conduction) or maximal (valence) at Γ:
//
//	E_c(k) = gap + step·c + width·s(k),  E_v(k) = −step·(nVal−1−v) − width·s(k)
//	s(k)   = |k|²/(1+|k|²)
func Dispersive(nVal int, gap, step, width float64) EnergyFn {
	return func(p Point, band int) float64 {
		k2 := r2.Dot(p.K, p.K)
		s := width * k2 / (1 + k2)
		if band < nVal {
			return -step*float64(nVal-1-band) - s
		}
		return gap + step*float64(band-nVal) + s
	}
}
