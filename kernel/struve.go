// SPDX-License-Identifier: MIT

package kernel

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/integrate/quad"
)

const (
	// struveAsymptoticFrom is the argument above which H0 − Y0 switches to its
	// asymptotic series; the truncation error there is below 1e-10 relative.
	struveAsymptoticFrom = 40.0

	// struveNodes is the Gauss–Legendre order for the integral representation.
	struveNodes = 96
)

var (
	struveOnce    sync.Once
	struveTheta   []float64
	struveWeights []float64
)

// struveRule lazily computes the Legendre nodes on [0, π/2] once.
func struveRule() ([]float64, []float64) {
	struveOnce.Do(func() {
		struveTheta = make([]float64, struveNodes)
		struveWeights = make([]float64, struveNodes)
		quad.Legendre{}.FixedLocations(struveTheta, struveWeights, 0, math.Pi/2)
	})

	return struveTheta, struveWeights
}

// StruveH0 evaluates the zeroth-order Struve function
//
//	H0(x) = (2/π) ∫₀^{π/2} sin(x cos θ) dθ
//
// with a fixed Gauss–Legendre rule. H0 is odd, so negative x is reflected.
func StruveH0(x float64) float64 {
	if x == 0 {
		return 0
	}
	if x < 0 {
		return -StruveH0(-x)
	}
	theta, w := struveRule()
	var sum float64
	for i, t := range theta {
		sum += w[i] * math.Sin(x*math.Cos(t))
	}

	return 2 / math.Pi * sum
}

// StruveH0MinusY0 returns H0(x) − Y0(x) for x > 0.
//
// For x ≥ 40 the difference is taken from its asymptotic expansion
//
//	(2/π) [1/x − 1/x³ + 9/x⁵ − 225/x⁷]
//
// which avoids cancellation between two O(x^{-1/2}) oscillating terms.
func StruveH0MinusY0(x float64) float64 {
	if x >= struveAsymptoticFrom {
		inv := 1 / x
		inv2 := inv * inv

		return 2 / math.Pi * inv * (1 - inv2*(1-9*inv2*(1-25*inv2)))
	}

	return StruveH0(x) - math.Y0(x)
}
