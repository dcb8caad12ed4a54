// SPDX-License-Identifier: MIT

package fourier

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/excitontb/kernel"
	"github.com/katalvlaran/excitontb/lattice"
)

const (
	// DefaultRadiusCells sets the default radius to this many times the
	// longer lattice vector.
	DefaultRadiusCells = 5.0

	// DefaultTolerance is the largest tail ratio still reported as converged.
	DefaultTolerance = 1e-3
)

// Phase conventions (see package doc).
const (
	ConventionAtomic  = 1
	ConventionLattice = 2
)

// Convergence describes the truncation of the lattice sum.
//
// Tail and Total are Σ|V| over the outermost shell (|R+d| > Radius − Shell)
// and over all retained terms; they bound the shell's contribution for any q.
type Convergence struct {
	Radius    float64
	Shell     float64
	Tail      float64
	Total     float64
	Ratio     float64
	Converged bool
}

// Assembler holds the precomputed lattice-sum terms for one kernel, motif
// and radius. It is immutable and safe for concurrent use.
type Assembler struct {
	lat     *lattice.Lattice
	motif   []r2.Vec
	orbAtom []int
	kern    kernel.Config

	radius     float64
	convention int
	tolerance  float64
	logger     *zap.Logger

	offsets []r2.Vec // per atom pair a*len(motif)+b: t_a − t_b, or 0 in convention 2
	shells  []shell  // in translation order
	conv    Convergence
}

// shell holds the in-radius terms of one translation R: kernel value v[i]
// for atom pair pairs[i], weighted by exp(i q·(R + offsets[pair])).
type shell struct {
	R     r2.Vec
	pairs []int
	v     []float64
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithRadius sets the real-space truncation radius. Panics on r <= 0 or Inf.
func WithRadius(r float64) Option {
	if !(r > 0) || math.IsInf(r, 0) {
		panic("fourier: WithRadius: radius must be finite and > 0")
	}

	return func(a *Assembler) { a.radius = r }
}

// WithConvention selects the phase convention (1 or 2). Panics otherwise.
func WithConvention(c int) Option {
	if c != ConventionAtomic && c != ConventionLattice {
		panic("fourier: WithConvention: convention must be 1 or 2")
	}

	return func(a *Assembler) { a.convention = c }
}

// WithTolerance sets the convergence tolerance. Panics on t <= 0.
func WithTolerance(t float64) Option {
	if !(t > 0) {
		panic("fourier: WithTolerance: tolerance must be > 0")
	}

	return func(a *Assembler) { a.tolerance = t }
}

// WithLogger attaches a zap logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("fourier: WithLogger(nil)")
	}

	return func(a *Assembler) { a.logger = l }
}
