// SPDX-License-Identifier: MIT

package archive

import (
	"encoding/binary"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// encodeBlock flattens m row-major into (re, im) little-endian float64 pairs.
func encodeBlock(m mat.CMatrix) []byte {
	r, c := m.Dims()
	buf := make([]byte, 16*r*c)
	off := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			z := m.At(i, j)
			binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(real(z)))
			binary.LittleEndian.PutUint64(buf[off+8:], math.Float64bits(imag(z)))
			off += 16
		}
	}

	return buf
}

// decodeBlock is the inverse of encodeBlock.
func decodeBlock(data []byte, r, c int) (*mat.CDense, error) {
	if r <= 0 || c <= 0 || len(data) != 16*r*c {
		return nil, fmt.Errorf("%d bytes for a %dx%d block: %w", len(data), r, c, ErrCorrupt)
	}
	vals := make([]complex128, r*c)
	for i := range vals {
		re := math.Float64frombits(binary.LittleEndian.Uint64(data[16*i:]))
		im := math.Float64frombits(binary.LittleEndian.Uint64(data[16*i+8:]))
		vals[i] = complex(re, im)
	}

	return mat.NewCDense(r, c, vals), nil
}
