// SPDX-License-Identifier: MIT

package exciton

import (
	"context"
	"fmt"

	"github.com/katalvlaran/excitontb/conductivity"
	"github.com/katalvlaran/excitontb/interaction"
)

// DipoleElements returns the position matrix element of every transition of
// st along pol, with orbitals placed at their atoms:
//
//	m_t = (E_v − E_c) · conj(C_c(k))·(p ∘ C_v(k−Q)),  p_o = pol · t_atom(o)
//
// Errors: ErrForeignStore, conductivity.ErrDimensionMismatch.
//
// Complexity: O(T·O).
func (e *Engine) DipoleElements(st *interaction.Store, pol [2]complex128) ([]complex128, error) {
	if err := e.owns(st); err != nil {
		return nil, err
	}
	es := &e.ds.Eigensystem
	spin := st.Config().Spin
	motifPol := conductivity.MotifPolarised(pol, e.ds.Crystal.OrbitalPositions())

	trans := st.Transitions()
	out := make([]complex128, len(trans))
	for i, t := range trans {
		h := st.Selection(t.K).Hole
		m, err := conductivity.ResidualTerm(
			es.Vectors[t.K][spin][t.C], es.Vectors[h][spin][t.V],
			es.Energies[t.K][spin][t.C], es.Energies[h][spin][t.V],
			motifPol,
		)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
		out[i] = m
	}

	return out, nil
}

// Spectrum is the result of Absorption.
type Spectrum struct {
	Frequencies []float64
	Values      []float64
	Excitons    *Excitons
	Weights     []float64
}

// Absorption solves st and broadens the oscillator strengths along pol
// over freqs.
//
// Errors: those of Solve and DipoleElements.
func (e *Engine) Absorption(ctx context.Context, st *interaction.Store, pol [2]complex128, b conductivity.Broadening, freqs []float64) (*Spectrum, error) {
	x, err := e.Solve(ctx, st)
	if err != nil {
		return nil, err
	}
	elems, err := e.DipoleElements(st, pol)
	if err != nil {
		return nil, err
	}
	var weights []float64
	if x.Len() > 0 {
		if weights, err = conductivity.ExcitonWeights(x.Amplitudes, elems); err != nil {
			return nil, err
		}
	}
	values, err := conductivity.Spectrum(freqs, x.Energies, weights, b)
	if err != nil {
		return nil, err
	}

	return &Spectrum{Frequencies: freqs, Values: values, Excitons: x, Weights: weights}, nil
}
