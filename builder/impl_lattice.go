// SPDX-License-Identifier: MIT

package builder

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/excitontb/crystal"
)

// buildHexagonal implements Hexagonal.
// Complexity: O(n²).
func buildHexagonal(ds *crystal.Dataset, a float64, n int) error {
	if err := validateFinitePositive(MethodHexagonal, "lattice constant", a); err != nil {
		return err
	}
	if err := validateMin(MethodHexagonal, "supercell", n, MinSupercell); err != nil {
		return err
	}

	p1 := r2.Vec{X: a}
	p2 := r2.Vec{X: a / 2, Y: -a * math.Sqrt(3) / 2}
	c := &ds.Crystal
	c.Alat = float64(n) * a
	c.A1 = r2.Scale(float64(n), p1)
	c.A2 = r2.Scale(float64(n), p2)
	c.NAtoms = n * n
	c.Motif = make([]r2.Vec, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c.Motif = append(c.Motif, r2.Add(r2.Scale(float64(j), p1), r2.Scale(float64(i), p2)))
		}
	}

	return nil
}

// buildOrbitals implements Orbitals.
func buildOrbitals(ds *crystal.Dataset, pattern []int) error {
	c := &ds.Crystal
	if c.NAtoms == 0 {
		return builderErrorf(MethodOrbitals, "no atoms yet: %w", ErrOutOfOrder)
	}
	if err := validateMin(MethodOrbitals, "pattern length", len(pattern), 1); err != nil {
		return err
	}
	for _, n := range pattern {
		if err := validateMin(MethodOrbitals, "orbitals per atom", n, 1); err != nil {
			return err
		}
	}
	if c.NAtoms%len(pattern) != 0 {
		return builderErrorf(MethodOrbitals, "pattern length %d does not divide %d atoms: %w", len(pattern), c.NAtoms, ErrTooSmall)
	}

	c.OrbPattern = pattern
	c.NOrbs = 0
	for _, n := range c.OrbitalsPerAtom() {
		c.NOrbs += n
	}

	return nil
}

// buildKGrid implements KGrid.
// Complexity: O(nk²).
func buildKGrid(ds *crystal.Dataset, nk int) error {
	if err := validateMin(MethodKGrid, "divisions", nk, MinGridDivisions); err != nil {
		return err
	}
	if ds.Crystal.NAtoms == 0 {
		return builderErrorf(MethodKGrid, "no lattice yet: %w", ErrOutOfOrder)
	}
	lat, err := ds.Crystal.Lattice()
	if err != nil {
		return builderErrorf(MethodKGrid, "%w", err)
	}
	rec := lat.Reciprocal()

	es := &ds.Eigensystem
	es.NK = nk
	es.KGrid = make([]r2.Vec, 0, nk*nk)
	for i := 0; i < nk; i++ {
		for j := 0; j < nk; j++ {
			es.KGrid = append(es.KGrid, rec.Cartesian(float64(i)/float64(nk), float64(j)/float64(nk)))
		}
	}

	return nil
}
