package kernel_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/excitontb/kernel"
)

// TestParseKind covers canonical names, case folding, the legacy spelling and
// the unknown-name configuration error.
func TestParseKind(t *testing.T) {
	cases := []struct {
		name string
		want kernel.Kind
	}{
		{"keldysh", kernel.Keldysh},
		{"keldysn", kernel.Keldysh},
		{"Yukawa", kernel.Yukawa},
		{" COULOMB ", kernel.Coulomb},
	}
	for _, tc := range cases {
		got, err := kernel.ParseKind(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}

	_, err := kernel.ParseKind("gaussian")
	assert.ErrorIs(t, err, kernel.ErrUnknownKernel)
	_, err = kernel.Parse("")
	assert.ErrorIs(t, err, kernel.ErrUnknownKernel)
}

// TestValidate rejects non-positive parameters at selection time.
func TestValidate(t *testing.T) {
	_, err := kernel.New(kernel.Yukawa, kernel.WithScreeningLength(0))
	assert.ErrorIs(t, err, kernel.ErrInvalidParameter)

	_, err = kernel.New(kernel.Keldysh, kernel.WithScreeningLength(-3))
	assert.ErrorIs(t, err, kernel.ErrInvalidParameter)

	_, err = kernel.New(kernel.Coulomb, kernel.WithDielectric(0))
	assert.ErrorIs(t, err, kernel.ErrInvalidParameter)

	_, err = kernel.New(kernel.Coulomb, kernel.WithOnSite(math.NaN()))
	assert.ErrorIs(t, err, kernel.ErrInvalidParameter)

	// Coulomb ignores the screening length.
	c, err := kernel.New(kernel.Coulomb, kernel.WithScreeningLength(0))
	require.NoError(t, err)
	assert.False(t, c.Decaying())

	assert.ErrorIs(t, kernel.Config{Kind: 42, Dielectric: 1}.Validate(), kernel.ErrUnknownKernel)
}

// TestEval_ClosedForms checks Coulomb and Yukawa against their definitions.
func TestEval_ClosedForms(t *testing.T) {
	coul, err := kernel.New(kernel.Coulomb, kernel.WithDielectric(2))
	require.NoError(t, err)
	assert.InDelta(t, 1/(4*math.Pi*2*3), coul.Eval(3), 1e-15)

	yuk, err := kernel.New(kernel.Yukawa, kernel.WithScreeningLength(5), kernel.WithDielectric(2))
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-3.0/5)/(4*math.Pi*2*3), yuk.Eval(3), 1e-15)
	assert.True(t, yuk.Decaying())

	// Keldysh keeps the bare 1/(εr) tail.
	kel, err := kernel.New(kernel.Keldysh, kernel.WithScreeningLength(1), kernel.WithDielectric(2))
	require.NoError(t, err)
	assert.False(t, kel.Decaying())
	assert.InDelta(t, 1.0/2, 200*kel.Eval(200), 1e-3)

	// Yukawa is always below Coulomb at the same ε.
	for _, r := range []float64{0.5, 1, 10, 100} {
		assert.Less(t, yuk.Eval(r), coul.Eval(r))
	}
}

// TestEval_OnSite: r = 0 never divides by zero.
func TestEval_OnSite(t *testing.T) {
	for _, kind := range []kernel.Kind{kernel.Keldysh, kernel.Yukawa, kernel.Coulomb} {
		c, err := kernel.New(kind)
		require.NoError(t, err)
		assert.Equal(t, 0.0, c.Eval(0), kind.String())

		c, err = kernel.New(kind, kernel.WithOnSite(1.5))
		require.NoError(t, err)
		assert.Equal(t, 1.5, c.Eval(0), kind.String())
	}
}

// TestEval_Keldysh checks positivity, monotone decay and the 1/(ε r) tail.
func TestEval_Keldysh(t *testing.T) {
	c, err := kernel.New(kernel.Keldysh, kernel.WithScreeningLength(2), kernel.WithDielectric(1.5))
	require.NoError(t, err)

	prev := math.Inf(1)
	for r := 0.05; r < 200; r *= 1.3 {
		v := c.Eval(r)
		assert.Greater(t, v, 0.0, "r=%v", r)
		assert.Less(t, v, prev, "r=%v must decrease", r)
		prev = v
	}

	r := 2000.0
	assert.InEpsilon(t, 1/(1.5*r), c.Eval(r), 1e-5)
}

// TestStruveH0 compares the quadrature against the power series and a
// tabulated value.
func TestStruveH0(t *testing.T) {
	assert.InDelta(t, 0.5686566270482879, kernel.StruveH0(1), 1e-12)
	assert.Equal(t, 0.0, kernel.StruveH0(0))
	assert.InDelta(t, -kernel.StruveH0(2.5), kernel.StruveH0(-2.5), 1e-15)

	for _, x := range []float64{0.1, 0.7, 2, 4.5, 8} {
		assert.InDelta(t, struveSeries(x), kernel.StruveH0(x), 1e-10, "x=%v", x)
	}
}

// TestStruveH0MinusY0_Continuity: the asymptotic branch joins the quadrature.
func TestStruveH0MinusY0_Continuity(t *testing.T) {
	x := 40.0
	direct := kernel.StruveH0(x) - math.Y0(x)
	assert.InDelta(t, direct, kernel.StruveH0MinusY0(x), 1e-9)
	assert.InDelta(t, kernel.StruveH0MinusY0(39.999), kernel.StruveH0MinusY0(40), 1e-6)
}

// TestConfig_JSONNames: kinds serialize by name.
func TestConfig_JSONNames(t *testing.T) {
	c, err := kernel.New(kernel.Yukawa)
	require.NoError(t, err)
	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"kind":"yukawa"`)

	var back kernel.Config
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"Keldysn","screeningLength":3,"dielectric":2}`), &back))
	assert.Equal(t, kernel.Keldysh, back.Kind)
	assert.Equal(t, "keldysh(r0=3, ε=2)", back.String())
}

// struveSeries is H0(x) = Σ (−1)^k (x/2)^{2k+1} / Γ(k+3/2)².
func struveSeries(x float64) float64 {
	var sum float64
	for k := 0; k < 40; k++ {
		g := math.Gamma(float64(k) + 1.5)
		term := math.Pow(x/2, float64(2*k+1)) / (g * g)
		if k%2 == 1 {
			term = -term
		}
		sum += term
	}

	return sum
}
