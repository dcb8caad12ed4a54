// SPDX-License-Identifier: MIT

package exciton

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
	"slices"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/excitontb/interaction"
	"github.com/katalvlaran/excitontb/lattice"
)

// degeneracyTolerance is the relative gap below which embedded eigenvalues
// belong to one level.
const degeneracyTolerance = 1e-9

// nearTolerance is the relative gap below which distinct levels are
// re-orthogonalized against each other.
const nearTolerance = 1e-6

// Hamiltonian assembles the Bethe–Salpeter matrix over st.Transitions().
// It returns nil for a store without transitions.
//
// Elements whose k pair is not materialized are zero.
//
// Errors: ErrNilStore.
//
// Complexity: O(T²) store lookups.
func Hamiltonian(st *interaction.Store) (*mat.CDense, error) {
	if st == nil {
		return nil, ErrNilStore
	}
	trans := st.Transitions()
	n := len(trans)
	if n == 0 {
		return nil, nil
	}
	grid, err := lattice.NewGrid(st.NK())
	if err != nil {
		return nil, err
	}

	// per-transition block coordinates
	type slot struct {
		i, j   int
		ci, vi int
		nc, nv int
	}
	slots := make([]slot, n)
	for a, t := range trans {
		sel := st.Selection(t.K)
		i, j := grid.Coords(t.K)
		slots[a] = slot{
			i: i, j: j,
			ci: slices.Index(sel.Conduction, t.C), vi: slices.Index(sel.Valence, t.V),
			nc: len(sel.Conduction), nv: len(sel.Valence),
		}
	}

	h := mat.NewCDense(n, n, nil)
	for a, sa := range slots {
		for b, sb := range slots {
			key := interaction.Key{I: sa.i, J: sa.j, IP: sb.i, JP: sb.j}
			if w, ok := st.At(key, sa.ci*sb.nc+sb.ci, sa.vi*sb.nv+sb.vi); ok {
				h.Set(a, b, -w)
			}
		}
		h.Set(a, a, h.At(a, a)+complex(trans[a].Energy, 0))
	}

	return h, nil
}

// Solve diagonalizes the Bethe–Salpeter Hamiltonian of st.
//
// Implementation:
//   - Stage 1: assemble H and its real symmetric embedding, averaging H with
//     its conjugate transpose so the embedding is exactly symmetric.
//   - Stage 2: factorize with gonum EigenSym.
//   - Stage 3: group the doubled levels and collapse each group to
//     orthonormal complex eigenvectors of H.
//
// A store without transitions yields zero excitons. ctx is checked before
// the factorization, which itself cannot be interrupted.
//
// Errors: ErrNilStore, ErrNoConvergence, context errors.
//
// Complexity: O(T³).
func Solve(ctx context.Context, st *interaction.Store) (*Excitons, error) {
	// Stage 1: embedding.
	h, err := Hamiltonian(st)
	if err != nil {
		return nil, err
	}
	trans := st.Transitions()
	if h == nil {
		return &Excitons{Transitions: trans}, nil
	}
	n := len(trans)
	embed := mat.NewSymDense(2*n, nil)
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			z := (h.At(a, b) + cmplx.Conj(h.At(b, a))) / 2
			embed.SetSym(a, b, real(z))
			embed.SetSym(n+a, n+b, real(z))
			embed.SetSym(a, n+b, -imag(z))
			embed.SetSym(b, n+a, imag(z))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: real eigenproblem, ascending values.
	var eig mat.EigenSym
	if !eig.Factorize(embed, true) {
		return nil, fmt.Errorf("dimension %d: %w", 2*n, ErrNoConvergence)
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Stage 3: collapse.
	scale := 1.0
	for _, v := range vals {
		scale = math.Max(scale, math.Abs(v))
	}
	tol := degeneracyTolerance * scale
	nearTol := nearTolerance * scale
	var accepted [][]complex128

	x := &Excitons{
		Energies:    make([]float64, 0, n),
		Amplitudes:  mat.NewCDense(n, n, nil),
		Transitions: trans,
	}
	for start := 0; start < len(vals); {
		end := start + 1
		for end < len(vals) && vals[end]-vals[end-1] <= tol {
			end++
		}
		size := end - start
		if size%2 != 0 {
			return nil, fmt.Errorf("odd multiplicity %d at %g: %w", size, vals[start], ErrNoConvergence)
		}
		cands := make([][]complex128, size)
		var mean float64
		for c := range cands {
			col := start + c
			cands[c] = make([]complex128, n)
			for t := 0; t < n; t++ {
				cands[c][t] = complex(vecs.At(t, col), vecs.At(n+t, col))
			}
			mean += vals[col]
		}
		mean /= float64(size)

		picked := orthonormalize(cands, size/2)
		if len(picked) != size/2 {
			return nil, fmt.Errorf("rank %d of %d at %g: %w", len(picked), size/2, mean, ErrNoConvergence)
		}
		for _, z := range picked {
			// Close but distinct levels come out of EigenSym slightly mixed.
			if !reorthogonalize(z, accepted, x.Energies, mean, nearTol) {
				return nil, fmt.Errorf("level %g lost rank: %w", mean, ErrNoConvergence)
			}
			fixPhase(z)
			col := len(x.Energies)
			for t, v := range z {
				x.Amplitudes.Set(t, col, v)
			}
			x.Energies = append(x.Energies, mean)
			accepted = append(accepted, z)
		}
		start = end
	}

	return x, nil
}

// reorthogonalize projects z off every accepted vector whose energy lies
// within tol of e, twice, and renormalizes it. It reports false when
// nothing of z survives.
func reorthogonalize(z []complex128, accepted [][]complex128, energies []float64, e, tol float64) bool {
	for pass := 0; pass < 2; pass++ {
		for i := len(accepted) - 1; i >= 0 && e-energies[i] <= tol; i-- {
			cmplxs.AddScaled(z, -cmplxs.Dot(accepted[i], z), accepted[i])
		}
	}
	nrm := cmplxs.Norm(z, 2)
	if nrm < 0.5 {
		return false
	}
	cmplxs.Scale(complex(1/nrm, 0), z)

	return true
}

// orthonormalize runs pivoted Gram–Schmidt over cands, which it consumes,
// and returns up to want orthonormal vectors spanning them.
func orthonormalize(cands [][]complex128, want int) [][]complex128 {
	out := make([][]complex128, 0, want)
	for len(out) < want {
		best, bestNorm := -1, 0.0
		for i, c := range cands {
			if nrm := cmplxs.Norm(c, 2); nrm > bestNorm {
				best, bestNorm = i, nrm
			}
		}
		if bestNorm < 1e-6 {
			break
		}
		v := slices.Clone(cands[best])
		cmplxs.Scale(complex(1/bestNorm, 0), v)
		out = append(out, v)
		for _, c := range cands {
			cmplxs.AddScaled(c, -cmplxs.Dot(v, c), v)
		}
	}

	return out
}

// fixPhase rotates z so its largest component is real and positive.
func fixPhase(z []complex128) {
	big := 0
	for i, v := range z {
		if cmplx.Abs(v) > cmplx.Abs(z[big]) {
			big = i
		}
	}
	if cmplx.Abs(z[big]) == 0 {
		return
	}
	phase := cmplx.Conj(z[big]) / complex(cmplx.Abs(z[big]), 0)
	cmplxs.Scale(phase, z)
}

// Solve is the package Solve for a store of this engine, with logging and
// recorder events.
//
// Errors: ErrForeignStore, and those of Solve.
func (e *Engine) Solve(ctx context.Context, st *interaction.Store) (*Excitons, error) {
	if err := e.owns(st); err != nil {
		return nil, err
	}
	start := time.Now()
	x, err := Solve(ctx, st)
	if err != nil {
		return nil, err
	}
	if e.recorder != nil {
		e.recorder.ObserveSolve(x.Len())
	}
	fields := []zap.Field{zap.Int("transitions", x.Len()), zap.Duration("elapsed", time.Since(start))}
	if x.Len() > 0 {
		fields = append(fields, zap.Float64("lowest", x.Energies[0]))
	}
	e.logger.Info("exciton: BSE solved", fields...)

	return x, nil
}

func (e *Engine) owns(st *interaction.Store) error {
	if st == nil {
		return fmt.Errorf("nil store: %w", ErrForeignStore)
	}
	if st.NK() != e.ds.Eigensystem.NK || st.Config().Spin >= e.ds.Eigensystem.NSpins {
		return fmt.Errorf("store grid %d, engine grid %d: %w", st.NK(), e.ds.Eigensystem.NK, ErrForeignStore)
	}
	nb := e.ds.Eigensystem.NBands()
	for _, t := range st.Transitions() {
		if t.C >= nb || t.V >= nb {
			return fmt.Errorf("band %d/%d of %d: %w", t.C, t.V, nb, ErrForeignStore)
		}
	}

	return nil
}
