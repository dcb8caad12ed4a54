// SPDX-License-Identifier: MIT

// Package builder assembles deterministic tight-binding datasets for tests,
// benchmarks and demos. It follows a "functional options + constructors"
// layout: options resolve into an immutable builderConfig, constructors fill
// one part of a crystal.Dataset each, and Build applies them in order and
// validates the result.
//
// The package offers the following key components:
//
//   - Configuration primitives:
//     – BuilderOption: mutates builderConfig before construction.
//     – WithSeed / WithRand: enable random orthonormal eigenvectors and noise.
//     – WithSpins, WithConvention, WithNoise, WithSpinSplitting.
//   - Constructors (applied in this order):
//     – Hexagonal(a, n):   n×n supercell of a hexagonal lattice, one atom per
//     primitive cell.
//     – Orbitals(p...):    orbital pattern repeated over the atoms.
//     – KGrid(nk):         nk×nk grid spanning the reciprocal cell.
//     – Bands(nv, nc, fn): energies from an EnergyFn plus eigenvectors.
//   - Energy profiles (EnergyFn): FlatBands, PointLevels, Dispersive.
//   - Ready-made datasets: Sample1, Sample2, Sample3 (the three reference
//     systems of the matrix-element shape tables) and Monolayer.
//
// Guarantees:
//
//   - Determinism: same options, seed and constructor order give identical
//     datasets.
//   - Fast-fail on meaningless option values via panics in option
//     constructors; constructors themselves return sentinel errors.
//   - Build never returns a dataset that fails crystal validation.
package builder
