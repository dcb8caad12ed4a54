// SPDX-License-Identifier: MIT
// Package: excitontb/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors validate and panic on meaningless inputs.
//     Constructors and Build never panic.
//   • Randomness is opt-in: without WithSeed/WithRand eigenvectors are unit
//     vectors and energies are noiseless.

package builder

import (
	"math"
	"math/rand"
)

// BuilderOption customizes Build by mutating a builderConfig.
// Complexity: applying N options costs O(N).
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a seeded RNG. With an RNG present, Bands draws random
// orthonormal eigenvectors and applies WithNoise.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSpins sets the number of spin channels (≥ 1). Panics otherwise.
func WithSpins(n int) BuilderOption {
	if n < 1 {
		panic("builder: WithSpins(n<1)")
	}
	return func(c *builderConfig) {
		c.nSpins = n
	}
}

// WithConvention sets the eigenvector phase convention (1 or 2).
// Panics on anything else.
func WithConvention(conv int) BuilderOption {
	if conv != 1 && conv != 2 {
		panic("builder: WithConvention(conv∉{1,2})")
	}
	return func(c *builderConfig) {
		c.convention = conv
	}
}

// WithNoise sets the Gaussian energy noise sigma (≥ 0). Noise is drawn from
// the configured RNG and ignored without one. Panics if sigma < 0.
func WithNoise(sigma float64) BuilderOption {
	if sigma < 0 || math.IsNaN(sigma) {
		panic("builder: WithNoise(sigma<0)")
	}
	return func(c *builderConfig) {
		c.noiseSigma = sigma
	}
}

// WithSpinSplitting shifts spin channel s by s·delta.
// Panics on non-finite delta.
func WithSpinSplitting(delta float64) BuilderOption {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		panic("builder: WithSpinSplitting(non-finite)")
	}
	return func(c *builderConfig) {
		c.spinSplit = delta
	}
}
