// SPDX-License-Identifier: MIT
// Package: excitontb/builder
//
// api.go: thin public entry points for the builder package.
//
// Design contract:
//   - One orchestrator: Build(bopts, cons...). Creates the dataset, resolves
//     cfg, runs cons in order, validates.
//   - Public constructors are declared here and implemented in impl_*.go.
//   - Determinism: same inputs, options, seed and constructor order give
//     identical datasets.

package builder

import (
	"fmt"

	"github.com/katalvlaran/excitontb/crystal"
)

// Constructor fills part of a dataset using the resolved builderConfig.
// Constructors validate their parameters and return sentinel errors.
type Constructor func(ds *crystal.Dataset, cfg builderConfig) error

// Build creates an empty dataset carrying the spin count and convention from
// bopts, applies all constructors in order and validates the result.
//
// Errors: constructor errors wrapped with "Build: %w"; ErrConstructFailed for
// a nil constructor or a dataset that fails crystal validation (the
// crystal.ErrIntegrity cause stays in the chain).
//
// Complexity: Σ cost of the constructors plus O(size) validation.
func Build(bopts []BuilderOption, cons ...Constructor) (*crystal.Dataset, error) {
	cfg := newBuilderConfig(bopts...)
	ds := &crystal.Dataset{
		Eigensystem: crystal.Eigensystem{
			NSpins:     cfg.nSpins,
			Convention: cfg.convention,
			IsComplex:  true,
		},
	}

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("%s: nil constructor at index %d: %w", MethodBuild, i, ErrConstructFailed)
		}
		if err := fn(ds, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", MethodBuild, err)
		}
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", MethodBuild, ErrConstructFailed, err)
	}

	return ds, nil
}

// Hexagonal sets an n×n supercell of the hexagonal lattice with primitive
// constant a: a1 = n·(a, 0), a2 = n·(a/2, −a√3/2), one atom per primitive
// cell at j·a1ᵖ + i·a2ᵖ (row i, column j), alat = n·a.
func Hexagonal(a float64, n int) Constructor {
	return func(ds *crystal.Dataset, _ builderConfig) error {
		return buildHexagonal(ds, a, n)
	}
}

// Orbitals sets the orbital pattern, repeated cyclically over the atoms, and
// derives NOrbs. Requires Hexagonal first.
func Orbitals(pattern ...int) Constructor {
	p := append([]int(nil), pattern...)
	return func(ds *crystal.Dataset, _ builderConfig) error {
		return buildOrbitals(ds, p)
	}
}

// KGrid sets an nk×nk grid over the reciprocal cell, point (i, j) at
// (i/nk)·b1 + (j/nk)·b2 with flat index i*nk + j. Requires Hexagonal first.
func KGrid(nk int) Constructor {
	return func(ds *crystal.Dataset, _ builderConfig) error {
		return buildKGrid(ds, nk)
	}
}

// Bands fills energies from fn and eigenvectors for nVal valence and nCon
// conduction bands at every k point and spin. Requires Orbitals and KGrid.
func Bands(nVal, nCon int, fn EnergyFn) Constructor {
	return func(ds *crystal.Dataset, cfg builderConfig) error {
		return buildBands(ds, cfg, nVal, nCon, fn)
	}
}
