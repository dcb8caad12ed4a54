package source_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/katalvlaran/excitontb/crystal"
	"github.com/katalvlaran/excitontb/source"
)

// oneAtom is a minimal valid container: one atom, two orbitals, one k point.
const oneAtom = `
crystal:
  alat: 3.19
  avecs_a1: [3.19, 0.0]
  avecs_a2: [1.595, -2.76262104]
  motif: [0, 0]
  n_atoms: 1
  n_orbs: 2
  orb_pattern: [2]
eigensystem:
  convention: 1
  is_complex: true
  k_grid: [[0, 0]]
  n_con: 1
  n_val: 1
  n_k: 1
  n_spins: 1
  eigenvalues: [[[-0.5, 1.7]]]
  eigenvectors:
    - - - [[1, 0], [0, 0]]
        - [0, [0, -1]]
`

func TestDecode_OneAtom(t *testing.T) {
	ds, err := source.Decode([]byte(oneAtom))
	require.NoError(t, err)
	require.NoError(t, ds.Validate())

	assert.Equal(t, []r2.Vec{{}}, ds.Crystal.Motif, "single [x, y] motif")
	assert.Equal(t, r2.Vec{X: 1.595, Y: -2.76262104}, ds.Crystal.A2)
	assert.Equal(t, []float64{-0.5, 1.7}, ds.Eigensystem.Energies[0][0])
	assert.Equal(t, []complex128{0, complex(0, -1)}, ds.Eigensystem.Vectors[0][0][1], "bare number and pair")
}

// TestDecode_Missing names the absent field path.
func TestDecode_Missing(t *testing.T) {
	for _, field := range []string{"n_orbs", "k_grid", "eigenvectors", "orb_pattern"} {
		var kept []string
		skip := false
		for _, line := range strings.Split(oneAtom, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, field+":") {
				skip = true
				continue
			}
			// continuation lines of a removed block are indented deeper
			if skip && strings.HasPrefix(line, "    ") {
				continue
			}
			skip = false
			kept = append(kept, line)
		}
		_, err := source.Decode([]byte(strings.Join(kept, "\n")))
		require.ErrorIs(t, err, source.ErrMissingField, field)
		assert.Contains(t, err.Error(), field)
	}

	_, err := source.Decode([]byte("crystal: {alat: 1}"))
	assert.ErrorIs(t, err, source.ErrMissingField)
	assert.Contains(t, err.Error(), "eigensystem")
}

func TestDecode_Malformed(t *testing.T) {
	_, err := source.Decode([]byte("crystal: [unterminated"))
	assert.ErrorIs(t, err, source.ErrMalformed)

	bad := strings.Replace(oneAtom, "[0, [0, -1]]", "[0, [0, -1, 2]]", 1)
	_, err = source.Decode([]byte(bad))
	assert.Error(t, err)
}

// TestRoundTrip writes and re-reads in both formats.
func TestRoundTrip(t *testing.T) {
	ds, err := source.Decode([]byte(oneAtom))
	require.NoError(t, err)
	dir := t.TempDir()

	for _, name := range []string{"sample.yaml", "sample.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, source.Write(path, ds))
		back, err := source.Load(path)
		require.NoError(t, err, name)
		if diff := cmp.Diff(ds, back); diff != "" {
			t.Errorf("%s round trip mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestEncode_FlowPairs(t *testing.T) {
	ds, err := source.Decode([]byte(oneAtom))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, source.Encode(&buf, ds, source.YAML))
	assert.Contains(t, buf.String(), "avecs_a1: [3.19, 0]")

	back, err := source.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, ds.Crystal, back.Crystal)
}

func TestFormatFromPath(t *testing.T) {
	f, err := source.FormatFromPath("x/Data.JSON")
	require.NoError(t, err)
	assert.Equal(t, source.JSON, f)

	_, err = source.FormatFromPath("data.hdf5")
	assert.ErrorIs(t, err, source.ErrUnknownFormat)
	_, err = source.Load("data.hdf5")
	assert.ErrorIs(t, err, source.ErrUnknownFormat)
	assert.ErrorIs(t, source.Write(filepath.Join(t.TempDir(), "x.txt"), &crystal.Dataset{}), source.ErrUnknownFormat)
}
