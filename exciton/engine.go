// SPDX-License-Identifier: MIT

package exciton

import (
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/excitontb/crystal"
	"github.com/katalvlaran/excitontb/interaction"
	"github.com/katalvlaran/excitontb/source"
)

// New validates ds and wraps a private copy of it.
//
// Errors: crystal.ErrIntegrity.
func New(ds *crystal.Dataset, opts ...Option) (*Engine, error) {
	if ds == nil {
		return nil, fmt.Errorf("nil dataset: %w", crystal.ErrIntegrity)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	e := defaultEngine()
	for _, opt := range opts {
		opt(e)
	}
	e.ds = ds.Clone()

	cache, err := lru.New[string, *interaction.Store](e.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("exciton: cache: %w", err)
	}
	e.cache = cache

	e.logger.Debug("exciton: engine ready",
		zap.Int("atoms", ds.Crystal.NAtoms),
		zap.Int("orbitals", ds.Crystal.NOrbs),
		zap.Int("nk", ds.Eigensystem.NK),
		zap.Int("bands", ds.Eigensystem.NBands()),
	)

	return e, nil
}

// Open loads a container file and builds an Engine from it.
//
// Errors: source errors, crystal.ErrIntegrity.
func Open(path string, opts ...Option) (*Engine, error) {
	ds, err := source.Load(path)
	if err != nil {
		return nil, err
	}

	return New(ds, opts...)
}

// Dataset returns a deep copy of the engine's dataset.
func (e *Engine) Dataset() *crystal.Dataset { return e.ds.Clone() }

// Alat returns the lattice constant.
func (e *Engine) Alat() float64 { return e.ds.Crystal.Alat }

// A1 returns the first lattice vector.
func (e *Engine) A1() r2.Vec { return e.ds.Crystal.A1 }

// A2 returns the second lattice vector.
func (e *Engine) A2() r2.Vec { return e.ds.Crystal.A2 }

// Motif returns the atomic positions.
func (e *Engine) Motif() []r2.Vec { return slices.Clone(e.ds.Crystal.Motif) }

// NAtoms returns the motif size.
func (e *Engine) NAtoms() int { return e.ds.Crystal.NAtoms }

// NOrbs returns the orbital count.
func (e *Engine) NOrbs() int { return e.ds.Crystal.NOrbs }

// OrbPattern returns the per-atom orbital pattern as stored.
func (e *Engine) OrbPattern() []int { return slices.Clone(e.ds.Crystal.OrbPattern) }

// KGrid returns the Cartesian k points in flat grid order.
func (e *Engine) KGrid() []r2.Vec { return slices.Clone(e.ds.Eigensystem.KGrid) }

// NCon returns the number of conduction bands.
func (e *Engine) NCon() int { return e.ds.Eigensystem.NCon }

// NVal returns the number of valence bands.
func (e *Engine) NVal() int { return e.ds.Eigensystem.NVal }

// NK returns the grid divisions per reciprocal direction.
func (e *Engine) NK() int { return e.ds.Eigensystem.NK }

// NSpins returns the number of spin channels.
func (e *Engine) NSpins() int { return e.ds.Eigensystem.NSpins }

// Convention returns the phase convention of the eigenvectors.
func (e *Engine) Convention() int { return e.ds.Eigensystem.Convention }

// IsComplex reports whether the eigenvectors carry imaginary parts.
func (e *Engine) IsComplex() bool { return e.ds.Eigensystem.IsComplex }

// Eigenvalues returns the band energies at flat k index k.
func (e *Engine) Eigenvalues(k, spin int) ([]float64, error) {
	if err := e.checkPoint(k, spin); err != nil {
		return nil, err
	}

	return slices.Clone(e.ds.Eigensystem.Energies[k][spin]), nil
}

// Eigenvector returns the orbital coefficients of one band.
func (e *Engine) Eigenvector(k, spin, band int) ([]complex128, error) {
	if err := e.checkPoint(k, spin); err != nil {
		return nil, err
	}
	if band < 0 || band >= e.ds.Eigensystem.NBands() {
		return nil, fmt.Errorf("band %d of %d: %w", band, e.ds.Eigensystem.NBands(), ErrOutOfRange)
	}

	return slices.Clone(e.ds.Eigensystem.Vectors[k][spin][band]), nil
}

func (e *Engine) checkPoint(k, spin int) error {
	es := &e.ds.Eigensystem
	if k < 0 || k >= es.NPoints() {
		return fmt.Errorf("k %d of %d: %w", k, es.NPoints(), ErrOutOfRange)
	}
	if spin < 0 || spin >= es.NSpins {
		return fmt.Errorf("spin %d of %d: %w", spin, es.NSpins, ErrOutOfRange)
	}

	return nil
}
