// SPDX-License-Identifier: MIT

package builder

// validateMin ensures got ≥ min, returning ErrTooSmall with context otherwise.
// Complexity: O(1).
func validateMin(method, what string, got, min int) error {
	if got < min {
		return builderErrorf(method, "%s must be ≥ %d, got %d: %w", what, min, got, ErrTooSmall)
	}

	return nil
}

// validateFinitePositive rejects x ≤ 0, NaN and +Inf.
func validateFinitePositive(method, what string, x float64) error {
	if !(x > 0) || x > maxFloat {
		return builderErrorf(method, "%s must be finite and > 0, got %v: %w", what, x, ErrTooSmall)
	}

	return nil
}
