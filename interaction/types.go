// SPDX-License-Identifier: MIT

package interaction

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/excitontb/kernel"
)

// momentumEpsilon is the fractional tolerance used when matching k points
// read from files, which are typically rounded to ~1e-8.
const momentumEpsilon = 1e-6

// Reference selects what the cutoff is measured from.
type Reference int

const (
	// Absolute compares E_c(k) − E_v(k−Q) directly with the cutoff.
	Absolute Reference = iota
	// GapRelative subtracts the smallest transition energy on the grid first.
	GapRelative
)

var referenceNames = [...]string{Absolute: "absolute", GapRelative: "gap"}

func (r Reference) String() string {
	if r >= 0 && int(r) < len(referenceNames) {
		return referenceNames[r]
	}

	return fmt.Sprintf("reference(%d)", int(r))
}

// ParseReference maps "absolute" or "gap" (case-insensitive) to a Reference.
func ParseReference(name string) (Reference, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "absolute":
		return Absolute, nil
	case "gap", "gap-relative", "relative":
		return GapRelative, nil
	}

	return 0, fmt.Errorf("reference %q: %w", name, ErrInvalidConfig)
}

// MarshalText implements encoding.TextMarshaler.
func (r Reference) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reference) UnmarshalText(text []byte) error {
	v, err := ParseReference(string(text))
	if err != nil {
		return err
	}
	*r = v

	return nil
}

// Momentum is the exciton centre-of-mass momentum Q in grid steps:
// Q = (I/N)·b1 + (J/N)·b2.
type Momentum struct {
	I int `yaml:"i" json:"i"`
	J int `yaml:"j" json:"j"`
}

// IsZero reports whether Q = 0.
func (m Momentum) IsZero() bool { return m.I == 0 && m.J == 0 }

// Config selects what a store holds.
//
// Fields:
//   - Cutoff:     energy window in eV (> 0).
//   - Kernel:     the real-space interaction.
//   - Radius:     real-space truncation; 0 uses the assembler default.
//   - Reference:  Absolute (default) or GapRelative.
//   - Convention: phase convention; 0 takes it from the dataset.
//   - Spin:       spin channel, < NSpins.
//   - Momentum:   exciton momentum Q; zero for optical excitons.
//   - Tolerance:  tail ratio accepted as converged; 0 uses the default.
type Config struct {
	Cutoff     float64       `yaml:"cutoff" json:"cutoff"`
	Kernel     kernel.Config `yaml:"kernel" json:"kernel"`
	Radius     float64       `yaml:"radius,omitempty" json:"radius,omitempty"`
	Reference  Reference     `yaml:"reference" json:"reference"`
	Convention int           `yaml:"convention,omitempty" json:"convention,omitempty"`
	Spin       int           `yaml:"spin" json:"spin"`
	Momentum   Momentum      `yaml:"momentum" json:"momentum"`
	Tolerance  float64       `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
}

// Validate checks everything that does not depend on the dataset.
func (c Config) Validate() error {
	if !(c.Cutoff > 0) || math.IsInf(c.Cutoff, 0) {
		return fmt.Errorf("cutoff %v must be finite and > 0: %w", c.Cutoff, ErrInvalidConfig)
	}
	if err := c.Kernel.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Radius < 0 || math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0) {
		return fmt.Errorf("radius %v: %w", c.Radius, ErrInvalidConfig)
	}
	if c.Reference != Absolute && c.Reference != GapRelative {
		return fmt.Errorf("%s: %w", c.Reference, ErrInvalidConfig)
	}
	if c.Convention < 0 || c.Convention > 2 {
		return fmt.Errorf("convention %d: %w", c.Convention, ErrInvalidConfig)
	}
	if c.Spin < 0 {
		return fmt.Errorf("spin %d: %w", c.Spin, ErrInvalidConfig)
	}
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) {
		return fmt.Errorf("tolerance %v: %w", c.Tolerance, ErrInvalidConfig)
	}

	return nil
}

// Fingerprint renders every field that changes the store's contents; two
// configs with the same fingerprint build identical stores.
func (c Config) Fingerprint() string {
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	parts := []string{
		"cut=" + f(c.Cutoff),
		"kern=" + c.Kernel.Kind.String(),
		"len=" + f(c.Kernel.ScreeningLength),
		"eps=" + f(c.Kernel.Dielectric),
		"on=" + f(c.Kernel.OnSite),
		"r=" + f(c.Radius),
		"ref=" + c.Reference.String(),
		"conv=" + strconv.Itoa(c.Convention),
		"s=" + strconv.Itoa(c.Spin),
		"q=" + strconv.Itoa(c.Momentum.I) + "," + strconv.Itoa(c.Momentum.J),
		"tol=" + f(c.Tolerance),
	}

	return strings.Join(parts, "|")
}

// Selection lists the bands retained at one k point. Valence bands refer to
// the hole momentum k − Q, whose grid index is Hole (−1 when k − Q is not on
// the grid).
type Selection struct {
	Conduction []int
	Valence    []int
	Hole       int
}

// Empty reports whether nothing is retained at this k.
func (s Selection) Empty() bool { return len(s.Conduction) == 0 || len(s.Valence) == 0 }

// Transition is one retained (k, c, v) pair with its energy E_c(k) − E_v(k−Q).
type Transition struct {
	K      int
	C, V   int
	Energy float64
}

// Warning records a lattice sum that did not meet the convergence tolerance.
// LongRange marks kernels with a 1/r tail, whose sums a larger radius
// improves only slowly.
type Warning struct {
	Kernel    string
	Radius    float64
	Ratio     float64
	Tolerance float64
	LongRange bool
}

func (w Warning) String() string {
	msg := fmt.Sprintf("%s: lattice sum not converged at radius %.4g (tail ratio %.3g > %.3g)",
		w.Kernel, w.Radius, w.Ratio, w.Tolerance)
	if w.LongRange {
		msg += "; the kernel has a 1/r tail"
	}

	return msg
}

// Observer receives build events; metrics.Metrics implements it.
type Observer interface {
	ObserveBuild(kernel string, keys int, seconds float64, err error)
	ObserveDivergence(kernel string)
}

// Option configures Build.
type Option func(*options)

type options struct {
	workers  int
	logger   *zap.Logger
	observer Observer
}

const (
	panicWorkers  = "interaction: WithWorkers: n must be >= 1"
	panicLogger   = "interaction: WithLogger: nil logger"
	panicObserver = "interaction: WithObserver: nil observer"
)

// WithWorkers bounds the number of blocks evaluated concurrently.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkers)
	}

	return func(o *options) { o.workers = n }
}

// WithLogger routes build diagnostics to l. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicLogger)
	}

	return func(o *options) { o.logger = l }
}

// WithObserver reports build timings and divergence warnings to obs.
// Panics on nil.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic(panicObserver)
	}

	return func(o *options) { o.observer = obs }
}
