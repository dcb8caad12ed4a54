// SPDX-License-Identifier: MIT

package conductivity

import (
	"fmt"
	"math"
)

// Broadening is a normalized line shape centred at w0, evaluated at w.
type Broadening func(w, w0 float64) float64

// Gauss is the normal density with standard deviation sigma.
func Gauss(w, w0, sigma float64) float64 {
	x := (w - w0) / sigma

	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi) / sigma
}

// Lorentz is the Cauchy density with full width at half maximum sigma.
func Lorentz(w, w0, sigma float64) float64 {
	d := w - w0
	h := sigma / 2

	return h / (d*d + h*h) / math.Pi
}

// ParseBroadening binds sigma to the named line shape, "lorentz" or "gauss".
//
// Errors: ErrUnknownBroadening, ErrInvalidWidth.
func ParseBroadening(name string, sigma float64) (Broadening, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%s(σ=%v): %w", name, sigma, ErrInvalidWidth)
	}
	switch name {
	case "lorentz":
		return func(w, w0 float64) float64 { return Lorentz(w, w0, sigma) }, nil
	case "gauss":
		return func(w, w0 float64) float64 { return Gauss(w, w0, sigma) }, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownBroadening)
	}
}
