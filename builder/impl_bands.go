// SPDX-License-Identifier: MIT

package builder

import (
	"math"

	"github.com/katalvlaran/excitontb/crystal"
)

// buildBands implements Bands.
//
// Implementation:
//   - Stage 1: check order (orbitals and k grid present) and counts.
//   - Stage 2: per k and spin, evaluate fn, add spin splitting and noise.
//   - Stage 3: per k and spin, unit eigenvectors or, with an RNG, a random
//     orthonormal set.
//
// Complexity: O(NK²·NSpins·nb·NOrbs) without RNG, O(NK²·NSpins·nb²·NOrbs) with.
func buildBands(ds *crystal.Dataset, cfg builderConfig, nVal, nCon int, fn EnergyFn) error {
	// Stage 1: preconditions.
	es := &ds.Eigensystem
	nOrbs := ds.Crystal.NOrbs
	if nOrbs == 0 || len(es.KGrid) == 0 {
		return builderErrorf(MethodBands, "orbitals and k grid must be set first: %w", ErrOutOfOrder)
	}
	if err := validateMin(MethodBands, "valence bands", nVal, MinBands); err != nil {
		return err
	}
	if err := validateMin(MethodBands, "conduction bands", nCon, MinBands); err != nil {
		return err
	}
	nb := nVal + nCon
	if nb > nOrbs {
		return builderErrorf(MethodBands, "%d bands exceed %d orbitals: %w", nb, nOrbs, ErrBadBands)
	}
	if fn == nil {
		return builderErrorf(MethodBands, "nil EnergyFn: %w", ErrBadBands)
	}
	es.NVal, es.NCon = nVal, nCon

	nk := len(es.KGrid)
	es.Energies = make([][][]float64, nk)
	es.Vectors = make([][][][]complex128, nk)
	for k, kv := range es.KGrid {
		es.Energies[k] = make([][]float64, es.NSpins)
		es.Vectors[k] = make([][][]complex128, es.NSpins)
		for s := 0; s < es.NSpins; s++ {
			// Stage 2: energies.
			levels := make([]float64, nb)
			for b := range levels {
				e := fn(Point{Index: k, K: kv}, b)
				if math.IsNaN(e) || math.IsInf(e, 0) {
					return builderErrorf(MethodBands, "k=%d band=%d: non-finite energy: %w", k, b, ErrBadBands)
				}
				e += float64(s) * cfg.spinSplit
				if cfg.rng != nil && cfg.noiseSigma > 0 {
					e += cfg.noiseSigma * cfg.rng.NormFloat64()
				}
				levels[b] = e
			}
			es.Energies[k][s] = levels

			// Stage 3: eigenvectors.
			if cfg.rng != nil {
				es.Vectors[k][s] = randomOrthonormal(cfg.rng, nb, nOrbs)
			} else {
				es.Vectors[k][s] = unitVectors(nb, nOrbs)
			}
		}
	}

	return nil
}
