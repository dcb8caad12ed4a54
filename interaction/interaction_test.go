package interaction_test

import (
	"context"
	"math"
	"math/cmplx"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/excitontb/builder"
	"github.com/katalvlaran/excitontb/crystal"
	"github.com/katalvlaran/excitontb/fourier"
	"github.com/katalvlaran/excitontb/interaction"
	"github.com/katalvlaran/excitontb/kernel"
	"github.com/katalvlaran/excitontb/lattice"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func yukawa(t testing.TB) kernel.Config {
	t.Helper()
	k, err := kernel.New(kernel.Yukawa, kernel.WithScreeningLength(1))
	require.NoError(t, err)

	return k
}

func sample(t testing.TB, n int, opts ...builder.BuilderOption) *crystal.Dataset {
	t.Helper()
	ds, err := builder.Sample(n, opts...)
	require.NoError(t, err)

	return ds
}

func build(t testing.TB, ds *crystal.Dataset, cutoff float64, opts ...interaction.Option) *interaction.Store {
	t.Helper()
	st, err := interaction.Build(context.Background(), ds, interaction.Config{Cutoff: cutoff, Kernel: yukawa(t)}, opts...)
	require.NoError(t, err)

	return st
}

// TestBuild_Sample1Shapes reproduces the reference shape table of the
// single-atom sample.
func TestBuild_Sample1Shapes(t *testing.T) {
	ds := sample(t, 1)
	valleys := map[string][2]int{
		"k(1,2,1,2)": {9, 4}, "k(1,2,2,1)": {9, 4},
		"k(2,1,1,2)": {9, 4}, "k(2,1,2,1)": {9, 4},
	}
	for _, cutoff := range []float64{1.8, 2.0, 2.5} {
		assert.Equal(t, valleys, build(t, ds, cutoff).Shapes(), "cutoff %v", cutoff)
	}

	at3 := build(t, ds, 3.0).Shapes()
	assert.Len(t, at3, 9)
	for _, k := range []interaction.Key{{}, {IP: 1, JP: 2}, {I: 2, J: 1}, {I: 1, J: 2, IP: 2, JP: 1}} {
		assert.Equal(t, [2]int{9, 4}, at3[k.String()], k.String())
	}

	// At 3.5 every k pair is kept. A valley point (1,2) or (2,1) retains
	// four transitions, every other point three.
	pairs := func(i, j int) int {
		if (i == 1 && j == 2) || (i == 2 && j == 1) {
			return 4
		}
		return 3
	}
	want35 := map[string][2]int{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for ip := 0; ip < 3; ip++ {
				for jp := 0; jp < 3; jp++ {
					k := interaction.Key{I: i, J: j, IP: ip, JP: jp}
					want35[k.String()] = [2]int{pairs(i, j) * pairs(ip, jp), 4}
				}
			}
		}
	}
	at35 := build(t, ds, 3.5).Shapes()
	require.Len(t, want35, 81)
	assert.Equal(t, want35, at35)
	assert.Equal(t, [2]int{16, 4}, at35["k(1,2,2,1)"])
	assert.Equal(t, [2]int{12, 4}, at35["k(2,1,0,2)"])
	assert.Equal(t, [2]int{9, 4}, at35["k(2,2,2,2)"])
}

func TestBuild_Sample2Shapes(t *testing.T) {
	ds := sample(t, 2)
	want := map[float64][2]int{
		1.8: {25, 36},
		2.0: {25, 36},
		2.5: {841, 36},
		3.0: {1089, 324},
		3.5: {1225, 324},
	}
	for cutoff, shape := range want {
		st := build(t, ds, cutoff)
		assert.Equal(t, map[string][2]int{"k(0,0,0,0)": shape}, st.Shapes(), "cutoff %v", cutoff)
	}
}

func TestBuild_Sample3Empty(t *testing.T) {
	ds := sample(t, 3)
	for _, cutoff := range []float64{1.8, 2.0, 2.5, 3.0, 3.5} {
		st := build(t, ds, cutoff)
		assert.Zero(t, st.Len(), "cutoff %v", cutoff)
		assert.Empty(t, st.Shapes())
		assert.Empty(t, st.Transitions())
		assert.Empty(t, st.Warnings())
	}
}

// TestBuild_Monotone: raising the cutoff never removes keys or shrinks blocks.
func TestBuild_Monotone(t *testing.T) {
	ds := sample(t, 1)
	prev := map[string][2]int{}
	for _, cutoff := range []float64{1.8, 2.0, 2.5, 3.0, 3.5, 4.0} {
		cur := build(t, ds, cutoff).Shapes()
		for k, s := range prev {
			require.Contains(t, cur, k, "cutoff %v", cutoff)
			assert.GreaterOrEqual(t, cur[k][0], s[0])
			assert.GreaterOrEqual(t, cur[k][1], s[1])
		}
		prev = cur
	}
}

func TestStore_Accessors(t *testing.T) {
	st := build(t, sample(t, 1), 1.8)
	assert.Equal(t, 3, st.NK())
	assert.Equal(t, 1.8, st.Config().Cutoff)
	assert.InDelta(t, 1.5, st.Gap(), 1e-12)

	keys := st.Keys()
	require.Len(t, keys, 4)
	assert.Equal(t, interaction.Key{I: 1, J: 2, IP: 1, JP: 2}, keys[0])
	assert.Equal(t, interaction.Key{I: 2, J: 1, IP: 2, JP: 1}, keys[3])
	for i := 1; i < len(keys); i++ {
		assert.Negative(t, interaction.CompareKeys(keys[i-1], keys[i]))
	}

	sel := st.Selection(5)
	assert.Equal(t, []int{2, 3, 4}, sel.Conduction)
	assert.Equal(t, []int{0, 1}, sel.Valence)
	assert.Equal(t, 5, sel.Hole)
	assert.True(t, st.Selection(0).Empty())

	for _, tr := range st.Transitions() {
		assert.Contains(t, []int{5, 7}, tr.K)
		assert.LessOrEqual(t, tr.Energy, 1.8+1e-12)
	}

	// Get hands out copies.
	m, ok := st.Get(keys[0])
	require.True(t, ok)
	before, _ := st.At(keys[0], 0, 0)
	m.Set(0, 0, 42)
	after, _ := st.At(keys[0], 0, 0)
	assert.Equal(t, before, after)

	_, ok = st.Get(interaction.Key{})
	assert.False(t, ok)
	r, c := st.Shape(interaction.Key{})
	assert.Zero(t, r+c)
	assert.False(t, st.Has(interaction.Key{}))

	n := 0
	for range st.All() {
		n++
	}
	assert.Equal(t, 4, n)
}

func TestBuild_GapRelative(t *testing.T) {
	ds := sample(t, 1)
	abs := build(t, ds, 1.8)
	st, err := interaction.Build(context.Background(), ds, interaction.Config{
		Cutoff: 0.3, Kernel: yukawa(t), Reference: interaction.GapRelative,
	})
	require.NoError(t, err)
	assert.Equal(t, abs.Shapes(), st.Shapes())
}

// TestBuild_Hermitian: W_kk'[(c,c'),(v,v')] = conj W_k'k[(c',c),(v',v)].
func TestBuild_Hermitian(t *testing.T) {
	ds := sample(t, 1, builder.WithSeed(7))
	st := build(t, ds, 3.5, interaction.WithWorkers(3))
	grid := ds.Eigensystem.Grid()

	for key, w := range st.All() {
		swapped, ok := st.Get(key.Swap())
		require.True(t, ok, key.String())
		sk := st.Selection(grid.Index(key.I, key.J))
		skp := st.Selection(grid.Index(key.IP, key.JP))
		nc, ncp := len(sk.Conduction), len(skp.Conduction)
		nv, nvp := len(sk.Valence), len(skp.Valence)
		for a := 0; a < nc; a++ {
			for b := 0; b < ncp; b++ {
				for x := 0; x < nv; x++ {
					for y := 0; y < nvp; y++ {
						got := w.At(a*ncp+b, x*nvp+y)
						want := cmplx.Conj(swapped.At(b*nc+a, y*nv+x))
						assert.InDelta(t, 0, cmplx.Abs(got-want), 1e-12, key.String())
					}
				}
			}
		}
	}
}

// TestBuild_MatchesDirectSum checks one element against the defining sum.
func TestBuild_MatchesDirectSum(t *testing.T) {
	ds := sample(t, 1, builder.WithSeed(3))
	st := build(t, ds, 1.8)
	key := interaction.Key{I: 1, J: 2, IP: 2, JP: 1}
	w, ok := st.Get(key)
	require.True(t, ok)

	lat, err := lattice.New(ds.Crystal.A1, ds.Crystal.A2)
	require.NoError(t, err)
	asm, err := fourier.New(lat, ds.Crystal.Motif, ds.Crystal.OrbAtom(), yukawa(t))
	require.NoError(t, err)

	k, kp := 5, 7
	es := ds.Eigensystem
	vorb := asm.OrbitalMatrix(r2.Sub(es.KGrid[k], es.KGrid[kp]))
	c, cp := es.Vectors[k][0][3], es.Vectors[kp][0][2] // rows (1, 0)
	v, vp := es.Vectors[k][0][1], es.Vectors[kp][0][0] // cols (1, 0)
	var want complex128
	for i := range c {
		for j := range v {
			want += cmplx.Conj(c[i]) * cp[i] * vorb.At(i, j) * v[j] * cmplx.Conj(vp[j])
		}
	}
	want /= 9
	assert.InDelta(t, 0, cmplx.Abs(w.At(1*3+0, 1*2+0)-want), 1e-12)
}

func TestBuild_WorkersDeterministic(t *testing.T) {
	ds := sample(t, 1, builder.WithSeed(9))
	one := build(t, ds, 3.5, interaction.WithWorkers(1))
	many := build(t, ds, 3.5, interaction.WithWorkers(8))
	for _, key := range one.Keys() {
		a, _ := one.Get(key)
		b, ok := many.Get(key)
		require.True(t, ok)
		assert.Equal(t, a.RawCMatrix().Data, b.RawCMatrix().Data, key.String())
	}
}

func TestBuild_Momentum(t *testing.T) {
	ds := sample(t, 1)
	st, err := interaction.Build(context.Background(), ds, interaction.Config{
		Cutoff: 3.5, Kernel: yukawa(t), Momentum: interaction.Momentum{I: 1},
	})
	require.NoError(t, err)
	grid := ds.Eigensystem.Grid()
	for k := 0; k < grid.Len(); k++ {
		assert.Equal(t, grid.Shift(k, -1, 0), st.Selection(k).Hole, "k=%d", k)
	}
	assert.Positive(t, st.Len())
}

func TestBuild_Errors(t *testing.T) {
	ds := sample(t, 1)
	ctx := context.Background()
	tests := []struct {
		name string
		cfg  interaction.Config
		want []error
	}{
		{"zero cutoff", interaction.Config{Kernel: yukawa(t)}, []error{interaction.ErrInvalidConfig}},
		{"nan cutoff", interaction.Config{Cutoff: math.NaN(), Kernel: yukawa(t)}, []error{interaction.ErrInvalidConfig}},
		{"bad kernel", interaction.Config{Cutoff: 2, Kernel: kernel.Config{Kind: kernel.Yukawa}}, []error{interaction.ErrInvalidConfig, kernel.ErrInvalidParameter}},
		{"spin", interaction.Config{Cutoff: 2, Kernel: yukawa(t), Spin: 1}, []error{interaction.ErrInvalidConfig}},
		{"convention", interaction.Config{Cutoff: 2, Kernel: yukawa(t), Convention: 3}, []error{interaction.ErrInvalidConfig}},
		{"radius", interaction.Config{Cutoff: 2, Kernel: yukawa(t), Radius: -1}, []error{interaction.ErrInvalidConfig}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st, err := interaction.Build(ctx, ds, tc.cfg)
			assert.Nil(t, st)
			for _, want := range tc.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}

	_, err := interaction.Build(ctx, nil, interaction.Config{Cutoff: 2, Kernel: yukawa(t)})
	assert.ErrorIs(t, err, crystal.ErrIntegrity)

	broken := ds.Clone()
	broken.Eigensystem.Energies[3][0][2] = math.Inf(1)
	_, err = interaction.Build(ctx, broken, interaction.Config{Cutoff: 2, Kernel: yukawa(t)})
	assert.ErrorIs(t, err, crystal.ErrIntegrity)
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st, err := interaction.Build(ctx, sample(t, 1), interaction.Config{Cutoff: 3.5, Kernel: yukawa(t)})
	assert.Nil(t, st)
	assert.ErrorIs(t, err, context.Canceled)
}

type recorder struct {
	mu       sync.Mutex
	builds   int
	keys     int
	diverged int
}

func (r *recorder) ObserveBuild(_ string, keys int, _ float64, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds++
	r.keys = keys
}

func (r *recorder) ObserveDivergence(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diverged++
}

// TestBuild_CoulombWarns: the bare Coulomb sum does not converge, which is
// reported but not fatal.
func TestBuild_CoulombWarns(t *testing.T) {
	coul, err := kernel.New(kernel.Coulomb)
	require.NoError(t, err)
	rec := &recorder{}
	st, err := interaction.Build(context.Background(), sample(t, 1),
		interaction.Config{Cutoff: 1.8, Kernel: coul}, interaction.WithObserver(rec))
	require.NoError(t, err)
	assert.Equal(t, 4, st.Len())
	require.Len(t, st.Warnings(), 1)
	assert.Contains(t, st.Warnings()[0].String(), "not converged")
	assert.True(t, st.Warnings()[0].LongRange)
	assert.Contains(t, st.Warnings()[0].String(), "1/r tail")
	assert.Equal(t, 1, rec.builds)
	assert.Equal(t, 4, rec.keys)
	assert.Equal(t, 1, rec.diverged)

	quiet := build(t, sample(t, 1), 1.8, interaction.WithObserver(rec))
	assert.Empty(t, quiet.Warnings())
	assert.Equal(t, 1, rec.diverged)

	// A short truncation radius leaves a Yukawa tail too, but not a 1/r one.
	short, err := interaction.Build(context.Background(), sample(t, 1),
		interaction.Config{Cutoff: 1.8, Kernel: yukawa(t), Radius: 4})
	require.NoError(t, err)
	require.Len(t, short.Warnings(), 1)
	assert.False(t, short.Warnings()[0].LongRange)
	assert.NotContains(t, short.Warnings()[0].String(), "1/r tail")
}

func TestKey_Parse(t *testing.T) {
	k, err := interaction.ParseKey("k(1,2,0,1)")
	require.NoError(t, err)
	assert.Equal(t, interaction.Key{I: 1, J: 2, IP: 0, JP: 1}, k)
	assert.Equal(t, "k(1,2,0,1)", k.String())
	assert.Equal(t, "k(0,1,1,2)", k.Swap().String())

	for _, bad := range []string{"", "k(1,2,3)", "(1,2,3,4)", "k(1,2,3,4", "k(a,2,3,4)", "k(-1,0,0,0)"} {
		_, err := interaction.ParseKey(bad)
		assert.ErrorIs(t, err, interaction.ErrBadKey, bad)
	}
}

func TestReference(t *testing.T) {
	r, err := interaction.ParseReference("GAP")
	require.NoError(t, err)
	assert.Equal(t, interaction.GapRelative, r)
	assert.Equal(t, "absolute", interaction.Absolute.String())
	_, err = interaction.ParseReference("fermi")
	assert.ErrorIs(t, err, interaction.ErrInvalidConfig)

	var back interaction.Reference
	require.NoError(t, back.UnmarshalText([]byte("gap")))
	assert.Equal(t, interaction.GapRelative, back)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { interaction.WithWorkers(0) })
	assert.Panics(t, func() { interaction.WithLogger(nil) })
	assert.Panics(t, func() { interaction.WithObserver(nil) })
}

func TestConfig_Fingerprint(t *testing.T) {
	a := interaction.Config{Cutoff: 2, Kernel: yukawa(t)}
	b := a
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	b.Momentum.J = 1
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	// Every float keeps its full precision.
	c := a
	c.Cutoff = math.Nextafter(a.Cutoff, 3)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	d := a
	d.Kernel.ScreeningLength *= 1 + 1e-9
	assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())
	e := a
	e.Radius, e.Tolerance = 12.000000000001, 1e-3
	f := e
	f.Tolerance = math.Nextafter(1e-3, 1)
	assert.NotEqual(t, e.Fingerprint(), f.Fingerprint())
}
