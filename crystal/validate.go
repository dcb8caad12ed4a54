// SPDX-License-Identifier: MIT

package crystal

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/spatial/r2"
)

// normTolerance bounds |‖c‖ − 1| for every stored eigenvector.
const normTolerance = 1e-6

// Validate checks the real-space description.
//
// Implementation:
//   - Stage 1: alat and the lattice vectors are finite, the basis spans 2D.
//   - Stage 2: motif length equals NAtoms, positions finite.
//   - Stage 3: OrbPattern is non-empty, positive, divides NAtoms and its
//     cyclic expansion sums to NOrbs.
func (c *Crystal) Validate() error {
	// Stage 1: geometry.
	if !(c.Alat > 0) || math.IsInf(c.Alat, 0) {
		return integrityf("alat %v must be finite and > 0", c.Alat)
	}
	if _, err := c.Lattice(); err != nil {
		return integrityf("lattice vectors: %v", err)
	}

	// Stage 2: motif.
	if c.NAtoms <= 0 {
		return integrityf("n_atoms %d must be > 0", c.NAtoms)
	}
	if len(c.Motif) != c.NAtoms {
		return integrityf("motif has %d positions, n_atoms is %d", len(c.Motif), c.NAtoms)
	}
	for i, t := range c.Motif {
		if !finiteVec(t) {
			return integrityf("motif[%d] is not finite", i)
		}
	}

	// Stage 3: orbitals.
	if len(c.OrbPattern) == 0 {
		return integrityf("orb_pattern is empty")
	}
	if c.NAtoms%len(c.OrbPattern) != 0 {
		return integrityf("orb_pattern length %d does not divide n_atoms %d", len(c.OrbPattern), c.NAtoms)
	}
	for i, n := range c.OrbPattern {
		if n <= 0 {
			return integrityf("orb_pattern[%d] = %d must be > 0", i, n)
		}
	}
	total := 0
	for _, n := range c.OrbitalsPerAtom() {
		total += n
	}
	if total != c.NOrbs {
		return integrityf("orb_pattern expands to %d orbitals, n_orbs is %d", total, c.NOrbs)
	}

	return nil
}

// Validate checks the eigensystem against nOrbs orbitals per eigenvector.
//
// Implementation:
//   - Stage 1: counts are positive, convention is 1 or 2.
//   - Stage 2: KGrid has NK² finite points.
//   - Stage 3: every [k][spin] slot carries NVal+NCon finite energies and
//     unit-norm eigenvectors of length nOrbs. Real eigensystems carry no
//     imaginary part.
func (e *Eigensystem) Validate(nOrbs int) error {
	// Stage 1: scalar counts.
	switch {
	case e.NK <= 0:
		return integrityf("n_k %d must be > 0", e.NK)
	case e.NVal <= 0 || e.NCon <= 0:
		return integrityf("n_val %d and n_con %d must be > 0", e.NVal, e.NCon)
	case e.NSpins <= 0:
		return integrityf("n_spins %d must be > 0", e.NSpins)
	case e.Convention != ConventionAtomic && e.Convention != ConventionLattice:
		return integrityf("convention %d must be %d or %d", e.Convention, ConventionAtomic, ConventionLattice)
	}

	// Stage 2: k grid.
	nk := e.NPoints()
	if len(e.KGrid) != nk {
		return integrityf("k_grid has %d points, n_k² is %d", len(e.KGrid), nk)
	}
	for i, k := range e.KGrid {
		if !finiteVec(k) {
			return integrityf("k_grid[%d] is not finite", i)
		}
	}

	// Stage 3: band data.
	if len(e.Energies) != nk || len(e.Vectors) != nk {
		return integrityf("eigenvalues/eigenvectors cover %d/%d k points, want %d", len(e.Energies), len(e.Vectors), nk)
	}
	nb := e.NBands()
	for k := 0; k < nk; k++ {
		if len(e.Energies[k]) != e.NSpins || len(e.Vectors[k]) != e.NSpins {
			return integrityf("k=%d: want %d spin blocks", k, e.NSpins)
		}
		for s := 0; s < e.NSpins; s++ {
			if err := e.validateBlock(k, s, nb, nOrbs); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Eigensystem) validateBlock(k, s, nb, nOrbs int) error {
	if len(e.Energies[k][s]) != nb || len(e.Vectors[k][s]) != nb {
		return integrityf("k=%d spin=%d: %d energies and %d vectors, want %d bands",
			k, s, len(e.Energies[k][s]), len(e.Vectors[k][s]), nb)
	}
	for b, en := range e.Energies[k][s] {
		if math.IsNaN(en) || math.IsInf(en, 0) {
			return integrityf("k=%d spin=%d band=%d: energy is not finite", k, s, b)
		}
		vec := e.Vectors[k][s][b]
		if len(vec) != nOrbs {
			return integrityf("k=%d spin=%d band=%d: eigenvector length %d, n_orbs is %d", k, s, b, len(vec), nOrbs)
		}
		for o, z := range vec {
			if cmplx.IsNaN(z) || cmplx.IsInf(z) {
				return integrityf("k=%d spin=%d band=%d orb=%d: coefficient is not finite", k, s, b, o)
			}
			if !e.IsComplex && imag(z) != 0 {
				return integrityf("k=%d spin=%d band=%d orb=%d: imaginary part in a real eigensystem", k, s, b, o)
			}
		}
		if norm := cmplxs.Norm(vec, 2); math.Abs(norm-1) > normTolerance {
			return integrityf("k=%d spin=%d band=%d: eigenvector norm %g, want 1", k, s, b, norm)
		}
	}

	return nil
}

// Validate checks both halves of the dataset and their coupling.
func (d *Dataset) Validate() error {
	if err := d.Crystal.Validate(); err != nil {
		return err
	}

	return d.Eigensystem.Validate(d.Crystal.NOrbs)
}

// Clone returns a deep copy, so callers may mutate the result freely.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{Crystal: d.Crystal, Eigensystem: d.Eigensystem}
	out.Crystal.Motif = append([]r2.Vec(nil), d.Crystal.Motif...)
	out.Crystal.OrbPattern = append([]int(nil), d.Crystal.OrbPattern...)
	out.Eigensystem.KGrid = append([]r2.Vec(nil), d.Eigensystem.KGrid...)
	out.Eigensystem.Energies = make([][][]float64, len(d.Eigensystem.Energies))
	for k, spins := range d.Eigensystem.Energies {
		out.Eigensystem.Energies[k] = make([][]float64, len(spins))
		for s, en := range spins {
			out.Eigensystem.Energies[k][s] = append([]float64(nil), en...)
		}
	}
	out.Eigensystem.Vectors = make([][][][]complex128, len(d.Eigensystem.Vectors))
	for k, spins := range d.Eigensystem.Vectors {
		out.Eigensystem.Vectors[k] = make([][][]complex128, len(spins))
		for s, bands := range spins {
			out.Eigensystem.Vectors[k][s] = make([][]complex128, len(bands))
			for b, v := range bands {
				out.Eigensystem.Vectors[k][s][b] = append([]complex128(nil), v...)
			}
		}
	}

	return out
}

func integrityf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrIntegrity)
}

func finiteVec(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
