package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

// TestFold_LatticeVectorsFoldToZero: every lattice vector folds to an exactly
// zero remainder and returns its own multiples.
func TestFold_LatticeVectorsFoldToZero(t *testing.T) {
	for _, lat := range []interface {
		At(m, n int) r2.Vec
		Fold(v r2.Vec) (r2.Vec, int, int)
		IsLatticeVector(v r2.Vec) bool
	}{hexLattice(t), supercellLattice(t), hexLattice(t).Reciprocal()} {
		for m := -6; m <= 6; m++ {
			for n := -6; n <= 6; n++ {
				R := lat.At(m, n)
				rem, gm, gn := lat.Fold(R)
				assert.Equal(t, r2.Vec{}, rem, "R=(%d,%d) must fold to zero", m, n)
				assert.Equal(t, [2]int{m, n}, [2]int{gm, gn}, "multiples of R=(%d,%d)", m, n)
				assert.True(t, lat.IsLatticeVector(R))
			}
		}
	}
}

// TestFold_Idempotent: folding a remainder again leaves it in place with (0,0).
func TestFold_Idempotent(t *testing.T) {
	lat := hexLattice(t)
	for _, v := range randomVectors(500, 40) {
		rem, m, n := lat.Fold(v)
		rem2, m2, n2 := lat.Fold(rem)
		assert.InDelta(t, rem.X, rem2.X, 1e-12)
		assert.InDelta(t, rem.Y, rem2.Y, 1e-12)
		assert.Equal(t, 0, m2)
		assert.Equal(t, 0, n2)

		// Reconstruction: v = rem + m·a1 + n·a2.
		back := r2.Add(rem, lat.At(m, n))
		assert.InDelta(t, v.X, back.X, 1e-9)
		assert.InDelta(t, v.Y, back.Y, 1e-9)

		f1, f2 := lat.Fractional(rem)
		assert.True(t, f1 >= -1e-12 && f1 < 1, "f1=%v outside [0,1)", f1)
		assert.True(t, f2 >= -1e-12 && f2 < 1, "f2=%v outside [0,1)", f2)
	}
}

// TestFold_Boundary: the half-open convention sends the upper face to the
// next cell and negative coordinates to the previous one.
func TestFold_Boundary(t *testing.T) {
	lat := hexLattice(t)

	// Just below the upper a1 face (within eps) snaps onto it.
	v := lat.Cartesian(1-1e-12, 0.5)
	rem, m, n := lat.Fold(v)
	assert.Equal(t, 1, m)
	assert.Equal(t, 0, n)
	half := lat.Cartesian(0, 0.5)
	assert.InDelta(t, half.X, rem.X, 1e-12)
	assert.InDelta(t, half.Y, rem.Y, 1e-12)

	// Negative fractional coordinate.
	rem, m, n = lat.Fold(lat.Cartesian(-0.25, 0))
	assert.Equal(t, -1, m)
	assert.Equal(t, 0, n)
	want := lat.Cartesian(0.75, 0)
	assert.InDelta(t, want.X, rem.X, 1e-12)
	assert.InDelta(t, want.Y, rem.Y, 1e-12)

	assert.False(t, lat.IsLatticeVector(lat.Cartesian(0.5, 0)))
	assert.False(t, lat.IsLatticeVector(lat.Cartesian(2, 0.25)))
	assert.True(t, lat.IsLatticeVector(lat.Cartesian(-3, 2)))
	assert.True(t, lat.IsLatticeVector(lat.Cartesian(1+1e-12, -1e-12)), "snapped")
}
