// SPDX-License-Identifier: MIT

package fourier

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/excitontb/kernel"
	"github.com/katalvlaran/excitontb/lattice"
)

// New precomputes the lattice-sum terms of kern over motif.
//
// orbAtom maps every orbital to its atom (index into motif). The default
// radius is DefaultRadiusCells·max(|a1|, |a2|).
//
// Implementation:
//   - Stage 1: validate the kernel, the motif and the orbital map.
//   - Stage 2: enumerate translations within radius + motif extent, so every
//     |R + t_a − t_b| ≤ radius is reached for all pairs.
//   - Stage 3: keep the in-radius terms per translation and accumulate the
//     shell/total weights for Convergence.
//
// Errors: kernel.ErrUnknownKernel, kernel.ErrInvalidParameter, ErrBadMotif,
// ErrBadOrbitalMap.
//
// Complexity: O(T·A²) time and memory.
func New(lat *lattice.Lattice, motif []r2.Vec, orbAtom []int, kern kernel.Config, opts ...Option) (*Assembler, error) {
	// Stage 1: inputs.
	if err := kern.Validate(); err != nil {
		return nil, err
	}
	if lat == nil || len(motif) == 0 {
		return nil, ErrBadMotif
	}
	for i, at := range orbAtom {
		if at < 0 || at >= len(motif) {
			return nil, fmt.Errorf("orbital %d on atom %d of %d: %w", i, at, len(motif), ErrBadOrbitalMap)
		}
	}

	cell := math.Max(r2.Norm(lat.A1()), r2.Norm(lat.A2()))
	a := &Assembler{
		lat:        lat,
		motif:      append([]r2.Vec(nil), motif...),
		orbAtom:    append([]int(nil), orbAtom...),
		kern:       kern,
		radius:     DefaultRadiusCells * cell,
		convention: ConventionAtomic,
		tolerance:  DefaultTolerance,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	// Stage 2: translations covering every pair.
	var extent float64
	for _, ta := range a.motif {
		for _, tb := range a.motif {
			extent = math.Max(extent, r2.Norm(r2.Sub(ta, tb)))
		}
	}
	n := len(a.motif)
	a.offsets = make([]r2.Vec, n*n)
	for i, ta := range a.motif {
		for j, tb := range a.motif {
			if a.convention == ConventionAtomic {
				a.offsets[i*n+j] = r2.Sub(ta, tb)
			}
		}
	}
	a.conv = Convergence{Radius: a.radius, Shell: cell}

	// Stage 3: per-translation terms and shell weights.
	count := 0
	for t := range lat.VectorsWithin(a.radius + extent) {
		sh := shell{R: t.R}
		for i, ta := range a.motif {
			for j, tb := range a.motif {
				dist := r2.Norm(r2.Add(t.R, r2.Sub(ta, tb)))
				if dist > a.radius {
					continue
				}
				v := kern.Eval(dist)
				if v == 0 {
					continue
				}
				sh.pairs = append(sh.pairs, i*n+j)
				sh.v = append(sh.v, v)
				count++

				a.conv.Total += math.Abs(v)
				if dist > a.radius-cell {
					a.conv.Tail += math.Abs(v)
				}
			}
		}
		if len(sh.pairs) > 0 {
			a.shells = append(a.shells, sh)
		}
	}
	if a.conv.Total > 0 {
		a.conv.Ratio = a.conv.Tail / a.conv.Total
	}
	a.conv.Converged = a.conv.Ratio <= a.tolerance

	a.logger.Debug("fourier: lattice sum prepared",
		zap.Stringer("kernel", kern),
		zap.Float64("radius", a.radius),
		zap.Int("convention", a.convention),
		zap.Int("terms", count),
		zap.Float64("tail_ratio", a.conv.Ratio),
	)

	return a, nil
}

// Radius returns the real-space truncation radius.
func (a *Assembler) Radius() float64 { return a.radius }

// Convention returns the phase convention in effect.
func (a *Assembler) Convention() int { return a.convention }

// Kernel returns the kernel configuration.
func (a *Assembler) Kernel() kernel.Config { return a.kern }

// NAtoms returns the motif size.
func (a *Assembler) NAtoms() int { return len(a.motif) }

// NOrbs returns the number of orbitals in the orbital map.
func (a *Assembler) NOrbs() int { return len(a.orbAtom) }

// Convergence reports the truncation quality of the lattice sum.
func (a *Assembler) Convergence() Convergence { return a.conv }

// AtomMatrix returns V_ab(q) for all atom pairs.
//
// Each translation contributes through its structure factor over the pair
// offsets.
//
// Complexity: O(T·A²).
func (a *Assembler) AtomMatrix(q r2.Vec) *mat.CDense {
	n := len(a.motif)
	sums := make([]complex128, n*n)
	for _, sh := range a.shells {
		sf := lattice.StructureFactor(q, sh.R, a.offsets)
		for i, p := range sh.pairs {
			sums[p] += complex(sh.v[i], 0) * sf[p]
		}
	}

	return mat.NewCDense(n, n, sums)
}

// OrbitalMatrix expands AtomMatrix(q) to orbitals: V_ij = V_atom(i),atom(j).
//
// Complexity: O(T·A² + O²).
func (a *Assembler) OrbitalMatrix(q r2.Vec) *mat.CDense {
	atoms := a.AtomMatrix(q)
	n := len(a.orbAtom)
	out := mat.NewCDense(n, n, nil)
	for i, ai := range a.orbAtom {
		for j, aj := range a.orbAtom {
			out.Set(i, j, atoms.At(ai, aj))
		}
	}

	return out
}
