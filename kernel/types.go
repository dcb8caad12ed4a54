// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"
	"math"
	"strings"
)

// Kind tags one of the supported interaction forms.
type Kind int

const (
	// Keldysh is the 2D-screened (Rytova–Keldysh) interaction.
	Keldysh Kind = iota + 1

	// Yukawa is the exponentially screened Coulomb interaction.
	Yukawa

	// Coulomb is the bare 1/r interaction.
	Coulomb
)

// Defaults applied by New when no option overrides them.
const (
	// DefaultDielectric is the effective dielectric constant ε.
	DefaultDielectric = 1.0

	// DefaultScreeningLength is λ (Yukawa) or r0 (Keldysh), in length units
	// of the crystal (Å for the bundled fixtures).
	DefaultScreeningLength = 10.0
)

// String returns the canonical lower-case name.
func (k Kind) String() string {
	switch k {
	case Keldysh:
		return "keldysh"
	case Yukawa:
		return "yukawa"
	case Coulomb:
		return "coulomb"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind resolves a kernel name. Matching is case-insensitive and ignores
// surrounding whitespace.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "keldysh", "keldysn":
		return Keldysh, nil
	case "yukawa":
		return Yukawa, nil
	case "coulomb":
		return Coulomb, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownKernel)
	}
}

// MarshalText renders the canonical name, so configs serialize as strings.
func (k Kind) MarshalText() ([]byte, error) {
	if k < Keldysh || k > Coulomb {
		return nil, fmt.Errorf("%s: %w", k, ErrUnknownKernel)
	}

	return []byte(k.String()), nil
}

// UnmarshalText parses a kernel name through ParseKind.
func (k *Kind) UnmarshalText(text []byte) error {
	kind, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind

	return nil
}

// Config is an immutable kernel selection with its parameters.
//
// Fields:
//   - Kind:            which kernel to evaluate.
//   - ScreeningLength: λ for Yukawa, r0 for Keldysh; ignored by Coulomb.
//   - Dielectric:      effective dielectric constant ε (> 0).
//   - OnSite:          value returned at r = 0 (0 excludes on-site terms).
type Config struct {
	Kind            Kind    `yaml:"kind" json:"kind"`
	ScreeningLength float64 `yaml:"screeningLength" json:"screeningLength"`
	Dielectric      float64 `yaml:"dielectric" json:"dielectric"`
	OnSite          float64 `yaml:"onSite" json:"onSite"`
}

// Option adjusts a Config during New/Parse.
type Option func(*Config)

// WithScreeningLength sets λ (Yukawa) or r0 (Keldysh).
func WithScreeningLength(l float64) Option {
	return func(c *Config) { c.ScreeningLength = l }
}

// WithDielectric sets ε.
func WithDielectric(eps float64) Option {
	return func(c *Config) { c.Dielectric = eps }
}

// WithOnSite sets the regularized value used at r = 0.
func WithOnSite(v float64) Option {
	return func(c *Config) { c.OnSite = v }
}

// New builds and validates a Config for kind.
func New(kind Kind, opts ...Option) (Config, error) {
	c := Config{
		Kind:            kind,
		ScreeningLength: DefaultScreeningLength,
		Dielectric:      DefaultDielectric,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Parse is New with the kind given by name.
func Parse(name string, opts ...Option) (Config, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return Config{}, err
	}

	return New(kind, opts...)
}

// Validate checks the parameter contract of the selected kind.
func (c Config) Validate() error {
	switch c.Kind {
	case Keldysh, Yukawa, Coulomb:
	default:
		return fmt.Errorf("%s: %w", c.Kind, ErrUnknownKernel)
	}
	if !(c.Dielectric > 0) || math.IsInf(c.Dielectric, 0) {
		return fmt.Errorf("%s: dielectric %v must be finite and > 0: %w", c.Kind, c.Dielectric, ErrInvalidParameter)
	}
	if math.IsNaN(c.OnSite) || math.IsInf(c.OnSite, 0) {
		return fmt.Errorf("%s: on-site value must be finite: %w", c.Kind, ErrInvalidParameter)
	}
	if c.Kind != Coulomb && (!(c.ScreeningLength > 0) || math.IsInf(c.ScreeningLength, 0)) {
		return fmt.Errorf("%s: screening length %v must be finite and > 0: %w", c.Kind, c.ScreeningLength, ErrInvalidParameter)
	}

	return nil
}

// Decaying reports whether the kernel falls off faster than any power of r,
// so truncated lattice sums converge absolutely. Only Yukawa does: Keldysh
// screening fades at long range, where H0 − Y0 ≈ 2r0/(πr) leaves the bare
// 1/(εr) tail, and Coulomb is that tail everywhere.
func (c Config) Decaying() bool { return c.Kind == Yukawa }

// String renders the kernel with its parameters, e.g. "yukawa(λ=10, ε=1)".
func (c Config) String() string {
	switch c.Kind {
	case Coulomb:
		return fmt.Sprintf("coulomb(ε=%g)", c.Dielectric)
	case Yukawa:
		return fmt.Sprintf("yukawa(λ=%g, ε=%g)", c.ScreeningLength, c.Dielectric)
	default:
		return fmt.Sprintf("%s(r0=%g, ε=%g)", c.Kind, c.ScreeningLength, c.Dielectric)
	}
}
