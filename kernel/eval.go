// SPDX-License-Identifier: MIT

package kernel

import "math"

// Eval returns V(r) for the configured kernel.
//
// r is the in-plane separation and must be ≥ 0; r == 0 yields c.OnSite.
// Eval assumes a validated Config; an unknown Kind evaluates to NaN so a
// bypassed validation surfaces immediately in the sums.
//
// Complexity: O(1) for Coulomb/Yukawa; Keldysh costs one Struve quadrature.
func (c Config) Eval(r float64) float64 {
	if r <= 0 {
		return c.OnSite
	}
	switch c.Kind {
	case Coulomb:
		return 1 / (4 * math.Pi * c.Dielectric * r)
	case Yukawa:
		return math.Exp(-r/c.ScreeningLength) / (4 * math.Pi * c.Dielectric * r)
	case Keldysh:
		r0 := c.ScreeningLength
		return math.Pi / (2 * r0) * StruveH0MinusY0(r/r0) / c.Dielectric
	default:
		return math.NaN()
	}
}
