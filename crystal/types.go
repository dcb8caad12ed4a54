// SPDX-License-Identifier: MIT

package crystal

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/excitontb/lattice"
)

// Phase conventions of the stored eigenvectors.
const (
	// ConventionAtomic means Bloch phases include the atomic positions,
	// exp(ik·(R+t)); interaction phases must then include t_a − t_b.
	ConventionAtomic = 1

	// ConventionLattice means Bloch phases use lattice vectors only, exp(ik·R).
	ConventionLattice = 2
)

// Crystal is the real-space description of the tight-binding model.
type Crystal struct {
	Alat       float64
	A1, A2     r2.Vec
	Motif      []r2.Vec
	NAtoms     int
	NOrbs      int
	OrbPattern []int
}

// Eigensystem is the reciprocal-space solution of the tight-binding model.
type Eigensystem struct {
	KGrid      []r2.Vec
	NK         int
	NCon       int
	NVal       int
	NSpins     int
	Convention int
	IsComplex  bool

	// Energies[k][spin][band], in energy units of the source (eV for fixtures).
	Energies [][][]float64
	// Vectors[k][spin][band][orbital].
	Vectors [][][][]complex128
}

// Dataset bundles a Crystal with its Eigensystem.
type Dataset struct {
	Crystal     Crystal
	Eigensystem Eigensystem
}

// NBands returns NVal + NCon.
func (e *Eigensystem) NBands() int { return e.NVal + e.NCon }

// NPoints returns the number of k points, NK*NK.
func (e *Eigensystem) NPoints() int { return e.NK * e.NK }

// IsValence reports whether band is one of the first NVal bands.
func (e *Eigensystem) IsValence(band int) bool { return band >= 0 && band < e.NVal }

// ConductionBands returns the band indices NVal..NVal+NCon-1.
func (e *Eigensystem) ConductionBands() []int { return bandRange(e.NVal, e.NCon) }

// ValenceBands returns the band indices 0..NVal-1.
func (e *Eigensystem) ValenceBands() []int { return bandRange(0, e.NVal) }

// Grid returns the k-grid index helper. The Eigensystem must be validated.
func (e *Eigensystem) Grid() lattice.Grid {
	g, _ := lattice.NewGrid(e.NK)

	return g
}

// Lattice builds the real-space lattice spanned by A1 and A2.
func (c *Crystal) Lattice() (*lattice.Lattice, error) {
	return lattice.New(c.A1, c.A2)
}

// OrbitalsPerAtom expands OrbPattern cyclically over NAtoms.
func (c *Crystal) OrbitalsPerAtom() []int {
	if len(c.OrbPattern) == 0 {
		return nil
	}
	out := make([]int, c.NAtoms)
	for a := range out {
		out[a] = c.OrbPattern[a%len(c.OrbPattern)]
	}

	return out
}

// OrbAtom maps each orbital index to the atom that carries it. Orbitals are
// numbered atom by atom in motif order.
func (c *Crystal) OrbAtom() []int {
	out := make([]int, 0, c.NOrbs)
	for a, n := range c.OrbitalsPerAtom() {
		for i := 0; i < n; i++ {
			out = append(out, a)
		}
	}

	return out
}

// OrbitalPositions returns the motif position of every orbital's atom.
func (c *Crystal) OrbitalPositions() []r2.Vec {
	atoms := c.OrbAtom()
	out := make([]r2.Vec, len(atoms))
	for i, a := range atoms {
		out[i] = c.Motif[a]
	}

	return out
}

func bandRange(from, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = from + i
	}

	return out
}
