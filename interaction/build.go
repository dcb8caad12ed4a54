// SPDX-License-Identifier: MIT

package interaction

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/excitontb/crystal"
	"github.com/katalvlaran/excitontb/fourier"
	"github.com/katalvlaran/excitontb/lattice"
)

// Build evaluates the interaction store of ds under cfg.
//
// Implementation:
//   - Stage 1: validate cfg, the dataset and the spin channel.
//   - Stage 2: locate hole momenta, apply the energy window and list keys.
//   - Stage 3: prepare the lattice sum and record a Warning if its tail
//     exceeds the tolerance.
//   - Stage 4: gather the retained eigenvectors per k.
//   - Stage 5: evaluate every block on a bounded errgroup pool, each result
//     going to its own pre-assigned slot.
//
// A store with zero keys is a valid result. Any error or cancellation of ctx
// returns a nil store.
//
// Errors: ErrInvalidConfig, crystal.ErrIntegrity, kernel errors, context errors.
//
// Complexity: O(N²·(T·A² + Nc²·O² + Nc²·Nv²·O)) for N grid points.
func Build(ctx context.Context, ds *crystal.Dataset, cfg Config, opts ...Option) (*Store, error) {
	o := options{workers: runtime.GOMAXPROCS(0), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	st, err := build(ctx, ds, cfg, o)
	if o.observer != nil {
		o.observer.ObserveBuild(cfg.Kernel.Kind.String(), st.Len(), time.Since(start).Seconds(), err)
	}
	if err != nil {
		return nil, err
	}
	o.logger.Info("interaction: store built",
		zap.Float64("cutoff", cfg.Cutoff),
		zap.Stringer("kernel", cfg.Kernel),
		zap.Int("keys", st.Len()),
		zap.Int("transitions", len(st.transitions)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return st, nil
}

func build(ctx context.Context, ds *crystal.Dataset, cfg Config, o options) (*Store, error) {
	// Stage 1: inputs.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, fmt.Errorf("nil dataset: %w", crystal.ErrIntegrity)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	es := &ds.Eigensystem
	if cfg.Spin >= es.NSpins {
		return nil, fmt.Errorf("spin %d of %d: %w", cfg.Spin, es.NSpins, ErrInvalidConfig)
	}

	// Stage 2: selection.
	lat, err := lattice.New(ds.Crystal.A1, ds.Crystal.A2, lattice.WithEpsilon(momentumEpsilon))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", crystal.ErrIntegrity, err)
	}
	rec := lat.Reciprocal()
	grid := es.Grid()
	n := float64(grid.N())
	q := rec.Cartesian(float64(cfg.Momentum.I)/n, float64(cfg.Momentum.J)/n)

	holes := holeIndices(es.KGrid, rec, q)
	p := plan{grid: grid}
	p.selections, p.transitions, p.gap = selectBands(es, cfg.Spin, holes, cfg.Cutoff, cfg.Reference)
	p.keys, p.pairs = materialize(grid, es.KGrid, rec, p.selections)

	st := &Store{
		cfg:         cfg,
		nk:          grid.N(),
		keys:        p.keys,
		index:       make(map[Key]int, len(p.keys)),
		entries:     make([]*mat.CDense, len(p.keys)),
		selections:  p.selections,
		transitions: p.transitions,
		gap:         p.gap,
	}
	for i, k := range p.keys {
		st.index[k] = i
	}
	if len(p.keys) == 0 {
		return st, nil
	}

	// Stage 3: lattice sum.
	asm, err := newAssembler(lat, ds, cfg, o.logger)
	if err != nil {
		return nil, err
	}
	if conv := asm.Convergence(); !conv.Converged {
		w := Warning{
			Kernel:    cfg.Kernel.String(),
			Radius:    conv.Radius,
			Ratio:     conv.Ratio,
			Tolerance: tolerance(cfg),
			LongRange: !cfg.Kernel.Decaying(),
		}
		st.warnings = append(st.warnings, w)
		o.logger.Warn("interaction: "+w.String(), zap.Float64("tail_ratio", conv.Ratio), zap.Bool("long_range", w.LongRange))
		if o.observer != nil {
			o.observer.ObserveDivergence(cfg.Kernel.Kind.String())
		}
	}

	// Stage 4: eigenvectors per k.
	electrons := make([][][]complex128, grid.Len())
	holeVecs := make([][][]complex128, grid.Len())
	for k, sel := range p.selections {
		if sel.Empty() {
			continue
		}
		for _, c := range sel.Conduction {
			electrons[k] = append(electrons[k], es.Vectors[k][cfg.Spin][c])
		}
		for _, v := range sel.Valence {
			holeVecs[k] = append(holeVecs[k], es.Vectors[sel.Hole][cfg.Spin][v])
		}
	}

	// Stage 5: blocks.
	scale := complex(1/float64(grid.Len()), 0)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, pair := range p.pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			k, kp := pair[0], pair[1]
			e := fourier.ElectronDensity(electrons[k], electrons[kp])
			h := fourier.HoleDensity(holeVecs[k], holeVecs[kp])
			block, err := asm.Project(r2.Sub(es.KGrid[k], es.KGrid[kp]), e, h, scale)
			if err != nil {
				return fmt.Errorf("%s: %w", p.keys[i], err)
			}
			st.entries[i] = block

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return st, nil
}

func newAssembler(lat *lattice.Lattice, ds *crystal.Dataset, cfg Config, logger *zap.Logger) (*fourier.Assembler, error) {
	convention := cfg.Convention
	if convention == 0 {
		convention = ds.Eigensystem.Convention
	}
	opts := []fourier.Option{fourier.WithConvention(convention), fourier.WithLogger(logger)}
	if cfg.Radius > 0 {
		opts = append(opts, fourier.WithRadius(cfg.Radius))
	}
	if cfg.Tolerance > 0 {
		opts = append(opts, fourier.WithTolerance(cfg.Tolerance))
	}

	return fourier.New(lat, ds.Crystal.Motif, ds.Crystal.OrbAtom(), cfg.Kernel, opts...)
}

func tolerance(cfg Config) float64 {
	if cfg.Tolerance > 0 {
		return cfg.Tolerance
	}

	return fourier.DefaultTolerance
}
