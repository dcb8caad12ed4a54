// SPDX-License-Identifier: MIT

// Package config loads and validates the run configuration from a YAML file
// with EXTB_* environment-variable overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/excitontb/conductivity"
	"github.com/katalvlaran/excitontb/interaction"
	"github.com/katalvlaran/excitontb/kernel"
)

// ErrInvalid indicates a configuration that cannot drive a run.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the top-level run configuration.
type Config struct {
	Interaction InteractionConfig `yaml:"interaction"`
	Engine      EngineConfig      `yaml:"engine"`
	Spectrum    SpectrumConfig    `yaml:"spectrum"`
	Archive     ArchiveConfig     `yaml:"archive"`
	Logging     LoggingConfig     `yaml:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// InteractionConfig selects what the interaction store holds.
type InteractionConfig struct {
	Cutoff          float64 `yaml:"cutoff"`
	Kernel          string  `yaml:"kernel"`
	ScreeningLength float64 `yaml:"screeningLength"`
	Dielectric      float64 `yaml:"dielectric"`
	OnSite          float64 `yaml:"onSite"`
	Radius          float64 `yaml:"radius"`
	Reference       string  `yaml:"reference"`
	Convention      int     `yaml:"convention"`
	Spin            int     `yaml:"spin"`
	Momentum        [2]int  `yaml:"momentum"`
	Tolerance       float64 `yaml:"tolerance"`
}

// EngineConfig sizes the engine's worker pool and store cache.
type EngineConfig struct {
	Workers   int `yaml:"workers"`
	CacheSize int `yaml:"cacheSize"`
}

// SpectrumConfig controls the absorption spectrum.
type SpectrumConfig struct {
	Broadening   string  `yaml:"broadening"`
	Sigma        float64 `yaml:"sigma"`
	Polarisation string  `yaml:"polarisation"`
	MinFreq      float64 `yaml:"minFreq"`
	MaxFreq      float64 `yaml:"maxFreq"`
	Points       int     `yaml:"points"`
}

// ArchiveConfig points at the SQLite archive; empty disables archiving.
type ArchiveConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig names the Prometheus textfile written at exit; empty skips it.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Load reads a YAML config file (if path is non-empty), applies environment
// overrides and validates the result. Unknown YAML fields are rejected.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// defaultConfig returns the values used for anything the file and the
// environment leave unset.
func defaultConfig() *Config {
	return &Config{
		Interaction: InteractionConfig{
			Cutoff:          2.5,
			Kernel:          kernel.Keldysh.String(),
			ScreeningLength: kernel.DefaultScreeningLength,
			Dielectric:      kernel.DefaultDielectric,
			Reference:       interaction.Absolute.String(),
		},
		Engine: EngineConfig{
			CacheSize: 1,
		},
		Spectrum: SpectrumConfig{
			Broadening:   "lorentz",
			Sigma:        0.05,
			Polarisation: "x",
			MinFreq:      0,
			MaxFreq:      5,
			Points:       501,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// applyEnvOverrides reads EXTB_* variables through lookup and overrides the
// corresponding fields.
func applyEnvOverrides(cfg *Config, lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"EXTB_KERNEL":       &cfg.Interaction.Kernel,
		"EXTB_REFERENCE":    &cfg.Interaction.Reference,
		"EXTB_BROADENING":   &cfg.Spectrum.Broadening,
		"EXTB_POLARISATION": &cfg.Spectrum.Polarisation,
		"EXTB_ARCHIVE":      &cfg.Archive.Path,
		"EXTB_LOG_LEVEL":    &cfg.Logging.Level,
		"EXTB_LOG_FORMAT":   &cfg.Logging.Format,
		"EXTB_METRICS_OUT":  &cfg.Metrics.Textfile,
	}
	for name, dst := range str {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	num := map[string]*float64{
		"EXTB_CUTOFF":           &cfg.Interaction.Cutoff,
		"EXTB_SCREENING_LENGTH": &cfg.Interaction.ScreeningLength,
		"EXTB_DIELECTRIC":       &cfg.Interaction.Dielectric,
		"EXTB_RADIUS":           &cfg.Interaction.Radius,
		"EXTB_SIGMA":            &cfg.Spectrum.Sigma,
	}
	for name, dst := range num {
		if v, ok := lookup(name); ok && v != "" {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("%s=%q: %w", name, v, ErrInvalid)
			}
			*dst = f
		}
	}

	ints := map[string]*int{
		"EXTB_SPIN":       &cfg.Interaction.Spin,
		"EXTB_WORKERS":    &cfg.Engine.Workers,
		"EXTB_CACHE_SIZE": &cfg.Engine.CacheSize,
		"EXTB_POINTS":     &cfg.Spectrum.Points,
	}
	for name, dst := range ints {
		if v, ok := lookup(name); ok && v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%s=%q: %w", name, v, ErrInvalid)
			}
			*dst = n
		}
	}

	return nil
}

// Validate checks every section that a run depends on.
func (c *Config) Validate() error {
	if _, err := c.Interaction.Build(); err != nil {
		return err
	}
	if c.Engine.Workers < 0 {
		return fmt.Errorf("engine.workers %d: %w", c.Engine.Workers, ErrInvalid)
	}
	if c.Engine.CacheSize < 1 {
		return fmt.Errorf("engine.cacheSize %d: %w", c.Engine.CacheSize, ErrInvalid)
	}
	if _, err := c.Spectrum.Broadener(); err != nil {
		return err
	}
	if c.Spectrum.Points < 1 || !(c.Spectrum.MaxFreq >= c.Spectrum.MinFreq) {
		return fmt.Errorf("spectrum range [%g, %g] with %d points: %w",
			c.Spectrum.MinFreq, c.Spectrum.MaxFreq, c.Spectrum.Points, ErrInvalid)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q: %w", c.Logging.Format, ErrInvalid)
	}

	return nil
}

// Build converts the section into an interaction.Config.
//
// Errors: ErrInvalid wrapping the kernel or interaction error.
func (ic InteractionConfig) Build() (interaction.Config, error) {
	kern, err := kernel.Parse(ic.Kernel,
		kernel.WithScreeningLength(ic.ScreeningLength),
		kernel.WithDielectric(ic.Dielectric),
		kernel.WithOnSite(ic.OnSite),
	)
	if err != nil {
		return interaction.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	ref, err := interaction.ParseReference(ic.Reference)
	if err != nil {
		return interaction.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	out := interaction.Config{
		Cutoff:     ic.Cutoff,
		Kernel:     kern,
		Radius:     ic.Radius,
		Reference:  ref,
		Convention: ic.Convention,
		Spin:       ic.Spin,
		Momentum:   interaction.Momentum{I: ic.Momentum[0], J: ic.Momentum[1]},
		Tolerance:  ic.Tolerance,
	}
	if err := out.Validate(); err != nil {
		return interaction.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return out, nil
}

// Broadener returns the configured line shape.
func (sc SpectrumConfig) Broadener() (conductivity.Broadening, error) {
	b, err := conductivity.ParseBroadening(sc.Broadening, sc.Sigma)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return b, nil
}

// Frequencies returns the configured frequency grid.
func (sc SpectrumConfig) Frequencies() []float64 {
	return conductivity.Frequencies(sc.MinFreq, sc.MaxFreq, sc.Points)
}

// PolarisationVector returns the configured polarisation vector.
func (sc SpectrumConfig) PolarisationVector() [2]complex128 {
	return conductivity.PolarisationVector(sc.Polarisation)
}

// Default returns a fresh copy of the defaults.
func Default() *Config { return defaultConfig() }
