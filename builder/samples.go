// SPDX-License-Identifier: MIT
// Package: excitontb/builder
//
// samples.go: the reference datasets.
//
// The three samples reproduce the geometry of the reference test containers
// exactly (lattice vectors, motif, k grid) and use band energies chosen so
// that the matrix-element shape tables at cutoffs 1.8, 2.0, 2.5, 3.0 and
// 3.5 come out as tabulated:
//
//   Sample1: one atom, 6 orbitals, 3×3 grid, 2 valence + 4 conduction bands.
//            Low-lying valleys at grid points (1,2) and (2,1), a higher
//            minimum at Γ, the rest of the grid above 3.0.
//   Sample2: 3×3 supercell (9 atoms, 54 orbitals), Γ only, 18 valence +
//            36 conduction bands in separated groups.
//   Sample3: the same supercell on a 3×3 grid with a gap above 3.5, so every
//            store is empty.

package builder

import (
	"fmt"

	"github.com/katalvlaran/excitontb/crystal"
)

// Sample returns Sample1, Sample2 or Sample3 by number.
func Sample(n int, opts ...BuilderOption) (*crystal.Dataset, error) {
	switch n {
	case 1:
		return Sample1(opts...)
	case 2:
		return Sample2(opts...)
	case 3:
		return Sample3(opts...)
	default:
		return nil, fmt.Errorf("%s(%d): %w", MethodSample, n, ErrUnknownSample)
	}
}

// Sample1 is the single-atom hexagonal crystal on a 3×3 grid.
func Sample1(opts ...BuilderOption) (*crystal.Dataset, error) {
	// valence 0..1, conduction 2..5
	levels := PointLevels(
		[]float64{-0.1, 0, 3.1, 3.2, 3.3, 3.9},
		map[int][]float64{
			0: {-0.1, 0, 2.8, 2.9, 2.95, 3.6},
			5: {-0.2, 0, 1.5, 1.6, 1.7, 3.2},
			7: {-0.2, 0, 1.5, 1.6, 1.7, 3.2},
		},
	)

	return Build(opts,
		Hexagonal(FixtureAlat, 1),
		Orbitals(FixtureOrbitals),
		KGrid(3),
		Bands(2, 4, levels),
	)
}

// Sample2 is the 3×3 hexagonal supercell at Γ.
func Sample2(opts ...BuilderOption) (*crystal.Dataset, error) {
	return Build(opts,
		Hexagonal(FixtureAlat, 3),
		Orbitals(FixtureOrbitals),
		KGrid(1),
		Bands(18, 36, FlatBands(supercellLevels()...)),
	)
}

// Sample3 is the 3×3 supercell on a 3×3 grid with a wide gap.
func Sample3(opts ...BuilderOption) (*crystal.Dataset, error) {
	levels := make([]float64, 0, 54)
	for v := 0; v < 18; v++ {
		levels = append(levels, -0.02*float64(17-v))
	}
	for c := 0; c < 36; c++ {
		levels = append(levels, 4.0+0.02*float64(c))
	}

	return Build(opts,
		Hexagonal(FixtureAlat, 3),
		Orbitals(FixtureOrbitals),
		KGrid(3),
		Bands(18, 36, FlatBands(levels...)),
	)
}

// Monolayer is a dispersive single-atom crystal with nOrbs orbitals per atom
// on an nk×nk grid, used by the demo and the benchmarks.
func Monolayer(nk, nOrbs, nVal, nCon int, opts ...BuilderOption) (*crystal.Dataset, error) {
	return Build(opts,
		Hexagonal(FixtureAlat, 1),
		Orbitals(nOrbs),
		KGrid(nk),
		Bands(nVal, nCon, Dispersive(nVal, 1.6, 0.15, 0.8)),
	)
}

// supercellLevels lists the Γ energies of Sample2 in band order:
// 12 deep valence, 6 shallow valence, then conduction groups of
// 5, 24, 4, 2 and 1 bands.
func supercellLevels() []float64 {
	out := make([]float64, 0, 54)
	for i := 11; i >= 0; i-- {
		out = append(out, -0.95-0.03*float64(i))
	}
	for i := 5; i >= 0; i-- {
		out = append(out, -0.03*float64(i))
	}
	out = append(out, 1.60, 1.62, 1.65, 1.70, 1.75)
	for i := 0; i < 24; i++ {
		out = append(out, 2.05+0.018*float64(i))
	}
	out = append(out, 2.6, 2.7, 2.8, 2.9)
	out = append(out, 3.1, 3.3)
	out = append(out, 3.8)

	return out
}
