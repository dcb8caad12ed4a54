package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/excitontb/archive"
	"github.com/katalvlaran/excitontb/builder"
	"github.com/katalvlaran/excitontb/config"
	"github.com/katalvlaran/excitontb/source"
)

var quiet = []string{"--log-level", "error", "--kernel", "yukawa", "--screening-length", "1"}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

func sampleFile(t *testing.T) string {
	t.Helper()
	ds, err := builder.Sample1()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "sample1.yaml")
	require.NoError(t, source.Write(path, ds))

	return path
}

func TestInfo(t *testing.T) {
	out, err := run(t, "--log-level", "error", "info", sampleFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "alat:        3.19\n")
	assert.Contains(t, out, "orbitals:    6 [6]\n")
	assert.Contains(t, out, "k grid:      3×3\n")
	assert.Contains(t, out, "k points:    9\n")
	assert.Contains(t, out, "bands:       2 valence, 4 conduction\n")

	_, err = run(t, "info")
	assert.Error(t, err, "FILE is required")
	_, err = run(t, "info", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestShapes(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	args := append([]string{"shapes", sampleFile(t), "--cutoff", "2.0", "--archive", db, "--label", "valleys"}, quiet...)
	out, err := run(t, args...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{
		"k(1,2,1,2): (9, 4)",
		"k(1,2,2,1): (9, 4)",
		"k(2,1,1,2): (9, 4)",
		"k(2,1,2,1): (9, 4)",
	}, lines[:4])
	assert.True(t, strings.HasPrefix(lines[4], "run: "))

	arc, err := archive.Open(db)
	require.NoError(t, err)
	defer arc.Close()
	runs, err := arc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "valleys", runs[0].Label)
	assert.Equal(t, 4, runs[0].Keys)
	assert.Equal(t, strings.TrimPrefix(lines[4], "run: "), runs[0].ID.String())
}

func TestSpectrum(t *testing.T) {
	args := append([]string{"spectrum", sampleFile(t), "--cutoff", "2.0", "--levels", "3", "--broadening", "gauss", "--sigma", "0.1"}, quiet...)
	out, err := run(t, args...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "# 12 excitons", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "# E[0] = "))
	assert.Len(t, lines, 1+3+501)
	assert.True(t, strings.HasPrefix(lines[4], "0.000000 "))
}

func TestDemo(t *testing.T) {
	out, err := run(t, append([]string{"demo", "--sample", "3", "--solve", "--cutoff", "3.5"}, quiet...)...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sample 3: 0 keys at cutoff 3.5 eV\n# 0 excitons\n"))

	out, err = run(t, append([]string{"demo", "--cutoff", "2.0", "--seed", "4"}, quiet...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "sample 1: 4 keys at cutoff 2 eV\n")

	_, err = run(t, "demo", "--sample", "7")
	assert.ErrorIs(t, err, builder.ErrUnknownSample)
}

func TestMetricsTextfile(t *testing.T) {
	prom := filepath.Join(t.TempDir(), "excitontb.prom")
	args := append([]string{"--metrics-out", prom, "demo", "--cutoff", "2.0"}, quiet...)
	_, err := run(t, args...)
	require.NoError(t, err)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "excitontb_store_builds_total")
	assert.Contains(t, string(data), "excitontb_store_cache_misses_total 1")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excitontb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
interaction:
  cutoff: 2.0
  kernel: yukawa
  screeningLength: 1
logging:
  level: error
`), 0o600))
	out, err := run(t, "--config", path, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "sample 1: 4 keys at cutoff 2 eV\n")
}

func TestErrors(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "demo")
	assert.Error(t, err)

	_, err = run(t, "--log-format", "xml", "demo")
	assert.Error(t, err)

	_, err = run(t, "demo", "--momentum", "1")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "demo", "--kernel", "gaussian")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "demo", "--cutoff", "-1")
	assert.ErrorIs(t, err, config.ErrInvalid)
}
