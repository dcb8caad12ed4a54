// SPDX-License-Identifier: MIT

package lattice

// Grid indexes a square N×N k-point grid stored row-major: idx = i*N + j.
// It is immutable once built.
type Grid struct {
	n int
}

// NewGrid returns an N×N grid helper. Returns ErrBadGrid if n <= 0.
func NewGrid(n int) (Grid, error) {
	if n <= 0 {
		return Grid{}, ErrBadGrid
	}

	return Grid{n: n}, nil
}

// N returns the number of divisions along each direction.
func (g Grid) N() int { return g.n }

// Len returns the number of grid points, N*N.
func (g Grid) Len() int { return g.n * g.n }

// Index maps (i, j) to a flat index, wrapping both coordinates periodically.
// Complexity: O(1).
func (g Grid) Index(i, j int) int {
	return wrap(i, g.n)*g.n + wrap(j, g.n)
}

// Coords converts a flat index back to (i, j).
// Complexity: O(1).
func (g Grid) Coords(idx int) (i, j int) {
	return idx / g.n, idx % g.n
}

// Shift returns the index of (i+di, j+dj) with periodic wrap-around.
func (g Grid) Shift(idx, di, dj int) int {
	i, j := g.Coords(idx)

	return g.Index(i+di, j+dj)
}

func wrap(x, n int) int {
	x %= n
	if x < 0 {
		x += n
	}

	return x
}
