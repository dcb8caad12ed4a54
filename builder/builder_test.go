package builder_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/excitontb/builder"
	"github.com/katalvlaran/excitontb/crystal"
)

// Reference geometry of the three test containers.
var (
	sample1KGrid = []r2.Vec{
		{X: 0, Y: 0}, {X: 0, Y: -0.75811886}, {X: 0, Y: -1.51623771},
		{X: 0.65655019, Y: 0.37905943}, {X: 0.65655019, Y: -0.37905943}, {X: 0.65655019, Y: -1.13717828},
		{X: 1.31310038, Y: 0.75811886}, {X: 1.31310038, Y: 0}, {X: 1.31310038, Y: -0.75811886},
	}
	sample3KGrid = []r2.Vec{
		{X: 0, Y: 0}, {X: 0, Y: -0.25270629}, {X: 0, Y: -0.50541257},
		{X: 0.21885006, Y: 0.12635314}, {X: 0.21885006, Y: -0.12635314}, {X: 0.21885006, Y: -0.37905943},
		{X: 0.43770013, Y: 0.25270629}, {X: 0.43770013, Y: 0}, {X: 0.43770013, Y: -0.25270629},
	}
	supercellMotif = []r2.Vec{
		{X: 0, Y: 0}, {X: 3.19, Y: 0}, {X: 6.38, Y: 0},
		{X: 1.595, Y: -2.76262104}, {X: 4.785, Y: -2.76262104}, {X: 7.975, Y: -2.76262104},
		{X: 3.19, Y: -5.52524208}, {X: 6.38, Y: -5.52524208}, {X: 9.57, Y: -5.52524208},
	}
)

const places = 1e-6

func assertVecs(t *testing.T, want, got []r2.Vec) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, places, "[%d].X", i)
		assert.InDelta(t, want[i].Y, got[i].Y, places, "[%d].Y", i)
	}
}

// TestSamples_Geometry checks the reference properties of each sample.
func TestSamples_Geometry(t *testing.T) {
	tests := []struct {
		n               int
		alat            float64
		a1, a2          r2.Vec
		motif, kgrid    []r2.Vec
		atoms, orbs, nk int
		nCon, nVal      int
	}{
		{1, 3.19, r2.Vec{X: 3.19}, r2.Vec{X: 1.595, Y: -2.76262104}, []r2.Vec{{}}, sample1KGrid, 1, 6, 3, 4, 2},
		{2, 9.57, r2.Vec{X: 9.57}, r2.Vec{X: 4.785, Y: -8.28786311}, supercellMotif, []r2.Vec{{}}, 9, 54, 1, 36, 18},
		{3, 9.57, r2.Vec{X: 9.57}, r2.Vec{X: 4.785, Y: -8.28786311}, supercellMotif, sample3KGrid, 9, 54, 3, 36, 18},
	}
	for _, tc := range tests {
		ds, err := builder.Sample(tc.n)
		require.NoError(t, err, "sample %d", tc.n)
		c, e := ds.Crystal, ds.Eigensystem

		assert.InDelta(t, tc.alat, c.Alat, places)
		assertVecs(t, []r2.Vec{tc.a1, tc.a2}, []r2.Vec{c.A1, c.A2})
		assertVecs(t, tc.motif, c.Motif)
		assertVecs(t, tc.kgrid, e.KGrid)
		assert.Equal(t, tc.atoms, c.NAtoms)
		assert.Equal(t, tc.orbs, c.NOrbs)
		assert.Equal(t, []int{6}, c.OrbPattern)
		assert.Equal(t, tc.nk, e.NK)
		assert.Equal(t, tc.nCon, e.NCon)
		assert.Equal(t, tc.nVal, e.NVal)
		assert.Equal(t, 1, e.NSpins)
		assert.Equal(t, 1, e.Convention)
		assert.True(t, e.IsComplex)
	}

	_, err := builder.Sample(4)
	assert.ErrorIs(t, err, builder.ErrUnknownSample)
}

// TestBuild_Order: constructors fail fast when applied before their inputs.
func TestBuild_Order(t *testing.T) {
	_, err := builder.Build(nil, builder.Orbitals(6))
	assert.ErrorIs(t, err, builder.ErrOutOfOrder)

	_, err = builder.Build(nil, builder.KGrid(3))
	assert.ErrorIs(t, err, builder.ErrOutOfOrder)

	_, err = builder.Build(nil, builder.Hexagonal(3, 1), builder.Bands(1, 1, builder.FlatBands(0, 1)))
	assert.ErrorIs(t, err, builder.ErrOutOfOrder)

	_, err = builder.Build(nil, builder.Hexagonal(3, 1), builder.Orbitals(2), builder.KGrid(1))
	assert.ErrorIs(t, err, builder.ErrConstructFailed, "no bands")
	assert.ErrorIs(t, err, crystal.ErrIntegrity)

	_, err = builder.Build(nil, nil)
	assert.ErrorIs(t, err, builder.ErrConstructFailed)
}

func TestBuild_ParameterErrors(t *testing.T) {
	_, err := builder.Build(nil, builder.Hexagonal(0, 1))
	assert.ErrorIs(t, err, builder.ErrTooSmall)
	_, err = builder.Build(nil, builder.Hexagonal(3, 0))
	assert.ErrorIs(t, err, builder.ErrTooSmall)
	_, err = builder.Build(nil, builder.Hexagonal(3, 2), builder.Orbitals(1, 1, 1))
	assert.ErrorIs(t, err, builder.ErrTooSmall, "pattern must divide atoms")

	base := []builder.Constructor{builder.Hexagonal(3, 1), builder.Orbitals(2), builder.KGrid(2)}
	_, err = builder.Build(nil, append(base, builder.Bands(2, 1, builder.FlatBands(0, 1, 2)))...)
	assert.ErrorIs(t, err, builder.ErrBadBands, "more bands than orbitals")
	_, err = builder.Build(nil, append(base, builder.Bands(1, 1, builder.FlatBands(0)))...)
	assert.ErrorIs(t, err, builder.ErrBadBands, "missing level")
}

// TestOptions_Panics: option constructors reject nonsense eagerly.
func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithSpins(0) })
	assert.Panics(t, func() { builder.WithConvention(3) })
	assert.Panics(t, func() { builder.WithNoise(-1) })
	assert.NotPanics(t, func() { builder.WithSpinSplitting(-0.1) })
}

// TestRandomVectors_Orthonormal checks the seeded eigenvector mixing.
func TestRandomVectors_Orthonormal(t *testing.T) {
	ds, err := builder.Monolayer(2, 4, 2, 2, builder.WithSeed(11), builder.WithSpins(2), builder.WithConvention(2))
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Eigensystem.NSpins)
	assert.Equal(t, 2, ds.Eigensystem.Convention)

	for k := range ds.Eigensystem.Vectors {
		for s := range ds.Eigensystem.Vectors[k] {
			vecs := ds.Eigensystem.Vectors[k][s]
			for a := range vecs {
				for b := range vecs {
					var dot complex128
					for o := range vecs[a] {
						dot += cmplx.Conj(vecs[a][o]) * vecs[b][o]
					}
					want := complex(0, 0)
					if a == b {
						want = 1
					}
					assert.InDelta(t, 0, cmplx.Abs(dot-want), 1e-12)
				}
			}
		}
	}

	again, err := builder.Monolayer(2, 4, 2, 2, builder.WithSeed(11), builder.WithSpins(2), builder.WithConvention(2))
	require.NoError(t, err)
	assert.Equal(t, ds, again, "same seed, same dataset")
}

// TestSpinSplittingAndNoise only touch energies.
func TestSpinSplittingAndNoise(t *testing.T) {
	ds, err := builder.Sample1(builder.WithSpins(2), builder.WithSpinSplitting(0.05))
	require.NoError(t, err)
	for k := range ds.Eigensystem.Energies {
		for b, e := range ds.Eigensystem.Energies[k][0] {
			assert.InDelta(t, e+0.05, ds.Eigensystem.Energies[k][1][b], 1e-12)
		}
	}

	quiet, err := builder.Sample1()
	require.NoError(t, err)
	noisy, err := builder.Sample1(builder.WithSeed(3), builder.WithNoise(0.01))
	require.NoError(t, err)
	assert.NotEqual(t, quiet.Eigensystem.Energies, noisy.Eigensystem.Energies)
	assert.InDelta(t, quiet.Eigensystem.Energies[4][0][3], noisy.Eigensystem.Energies[4][0][3], 0.1)
}

func TestDispersive(t *testing.T) {
	fn := builder.Dispersive(2, 1.6, 0.1, 0.8)
	gamma := builder.Point{}
	edge := builder.Point{K: r2.Vec{X: 1}}
	assert.InDelta(t, -0.1, fn(gamma, 0), 1e-15)
	assert.InDelta(t, 0.0, fn(gamma, 1), 1e-15)
	assert.InDelta(t, 1.6, fn(gamma, 2), 1e-15)
	assert.InDelta(t, 1.6+0.4, fn(edge, 2), 1e-15)
	assert.InDelta(t, -0.4, fn(edge, 1), 1e-15)
}
