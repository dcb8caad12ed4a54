// SPDX-License-Identifier: MIT

package lattice

import (
	"cmp"
	"iter"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// VectorsWithin returns a lazy, finite sequence of the translations
// R = m·a1 + n·a2 with |R| ≤ radius.
//
// Ordering (deterministic):
//  1. non-decreasing |R|, quantized to Epsilon;
//  2. ties broken by m ascending, then n ascending.
//
// The candidate set is bounded with the rows of the inverse basis:
// |m| ≤ radius·|row1(A⁻¹)| and |n| ≤ radius·|row2(A⁻¹)|. A negative radius
// yields an empty sequence; radius 0 yields only the origin.
//
// Complexity: O(K log K) on first iteration, K the number of candidates.
func (l *Lattice) VectorsWithin(radius float64) iter.Seq[Translation] {
	return func(yield func(Translation) bool) {
		for _, t := range l.Translations(radius) {
			if !yield(t) {
				return
			}
		}
	}
}

// Translations is the materialized form of VectorsWithin.
func (l *Lattice) Translations(radius float64) []Translation {
	if radius < 0 || isNonFinite(radius) {
		return nil
	}

	// Stage 1: integer bounds from the inverse basis rows.
	mMax := int(math.Ceil(radius * math.Hypot(l.inv[0], l.inv[1])))
	nMax := int(math.Ceil(radius * math.Hypot(l.inv[2], l.inv[3])))

	// Stage 2: collect candidates inside the disc.
	out := make([]Translation, 0, (2*mMax+1)*(2*nMax+1))
	limit := radius + l.eps
	for m := -mMax; m <= mMax; m++ {
		for n := -nMax; n <= nMax; n++ {
			R := l.At(m, n)
			norm := r2.Norm(R)
			if norm > limit {
				continue
			}
			out = append(out, Translation{M: m, N: n, R: R, Norm: norm})
		}
	}

	// Stage 3: deterministic order. Norms are quantized to eps so the
	// comparison stays transitive.
	eps := l.eps
	slices.SortFunc(out, func(a, b Translation) int {
		if qa, qb := math.Round(a.Norm/eps), math.Round(b.Norm/eps); qa != qb {
			return cmp.Compare(qa, qb)
		}
		if a.M != b.M {
			return cmp.Compare(a.M, b.M)
		}

		return cmp.Compare(a.N, b.N)
	})

	return out
}
