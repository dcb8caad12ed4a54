// SPDX-License-Identifier: MIT

package builder

// Constructor names, used to prefix errors.
const (
	MethodHexagonal = "Hexagonal"
	MethodOrbitals  = "Orbitals"
	MethodKGrid     = "KGrid"
	MethodBands     = "Bands"
	MethodBuild     = "Build"
	MethodSample    = "Sample"
)

// FixtureAlat is the primitive lattice constant (Å) of the reference samples.
const FixtureAlat = 3.19

// FixtureOrbitals is the number of orbitals per atom in the reference samples.
const FixtureOrbitals = 6

// MinSupercell is the smallest supercell multiplier (the primitive cell).
const MinSupercell = 1

// MinGridDivisions is the smallest k grid (Γ only).
const MinGridDivisions = 1

// MinBands is the least number of valence and of conduction bands.
const MinBands = 1

// Deterministic defaults of builderConfig.
const (
	defaultSpins      = 1
	defaultConvention = 1
	defaultNoise      = 0.0
	defaultSplitting  = 0.0
)
