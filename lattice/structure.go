// SPDX-License-Identifier: MIT

package lattice

import (
	"math/cmplx"

	"gonum.org/v1/gonum/spatial/r2"
)

// StructureFactor returns exp(i k·(R + offset)) for every orbital offset.
// The result has len(offsets) entries in the order of offsets.
//
// Complexity: O(len(offsets)).
func StructureFactor(k, R r2.Vec, offsets []r2.Vec) []complex128 {
	out := make([]complex128, len(offsets))
	for i, off := range offsets {
		out[i] = Phase(k, r2.Add(R, off))
	}

	return out
}

// Phase returns exp(i k·r).
func Phase(k, r r2.Vec) complex128 {
	return cmplx.Rect(1, r2.Dot(k, r))
}
