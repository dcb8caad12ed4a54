// SPDX-License-Identifier: MIT
// Package: excitontb/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng        = nil   (unit eigenvectors, no noise)
//   • nSpins     = 1
//   • convention = 1     (atomic positions in the Bloch phase)
//   • noiseSigma = 0.0
//   • spinSplit  = 0.0

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	// RNG for eigenvector mixing and noise; nil means no randomness.
	rng *rand.Rand

	nSpins     int
	convention int
	noiseSigma float64 // >= 0
	spinSplit  float64 // energy offset per spin index
}

// newBuilderConfig applies options in order over the defaults (last wins).
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		nSpins:     defaultSpins,
		convention: defaultConvention,
		noiseSigma: defaultNoise,
		spinSplit:  defaultSplitting,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
