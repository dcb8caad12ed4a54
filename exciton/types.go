// SPDX-License-Identifier: MIT

package exciton

import (
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/excitontb/crystal"
	"github.com/katalvlaran/excitontb/interaction"
)

// DefaultCacheSize is the number of stores an Engine keeps.
const DefaultCacheSize = 1

// Recorder receives engine events; metrics.Metrics implements it.
type Recorder interface {
	interaction.Observer
	CacheHit()
	CacheMiss()
	ObserveSolve(n int)
}

// Engine serves interaction stores and exciton states for one dataset.
// It is safe for concurrent use.
type Engine struct {
	ds        *crystal.Dataset
	logger    *zap.Logger
	recorder  Recorder
	workers   int
	cacheSize int
	cache     *lru.Cache[string, *interaction.Store]
	group     singleflight.Group
}

// Option configures an Engine.
type Option func(*Engine)

const (
	panicLogger    = "exciton: WithLogger: nil logger"
	panicRecorder  = "exciton: WithRecorder: nil recorder"
	panicWorkers   = "exciton: WithWorkers: n must be >= 1"
	panicCacheSize = "exciton: WithCacheSize: size must be >= 1"
)

// WithLogger sets the engine logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicLogger)
	}

	return func(e *Engine) { e.logger = l }
}

// WithRecorder reports cache, build and solve events. Panics on nil.
func WithRecorder(r Recorder) Option {
	if r == nil {
		panic(panicRecorder)
	}

	return func(e *Engine) { e.recorder = r }
}

// WithWorkers bounds the build worker pool. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkers)
	}

	return func(e *Engine) { e.workers = n }
}

// WithCacheSize sets how many stores stay cached. Panics if n < 1.
func WithCacheSize(n int) Option {
	if n < 1 {
		panic(panicCacheSize)
	}

	return func(e *Engine) { e.cacheSize = n }
}

func defaultEngine() *Engine {
	return &Engine{
		logger:    zap.NewNop(),
		workers:   runtime.GOMAXPROCS(0),
		cacheSize: DefaultCacheSize,
	}
}

// Setting adjusts the interaction configuration of one request.
type Setting func(*interaction.Config)

// WithRadius sets the real-space truncation radius.
func WithRadius(r float64) Setting { return func(c *interaction.Config) { c.Radius = r } }

// WithReference selects the energy reference of the cutoff.
func WithReference(ref interaction.Reference) Setting {
	return func(c *interaction.Config) { c.Reference = ref }
}

// WithConvention overrides the phase convention of the dataset.
func WithConvention(conv int) Setting {
	return func(c *interaction.Config) { c.Convention = conv }
}

// WithSpin selects the spin channel.
func WithSpin(s int) Setting { return func(c *interaction.Config) { c.Spin = s } }

// WithMomentum sets the exciton momentum Q in grid steps.
func WithMomentum(i, j int) Setting {
	return func(c *interaction.Config) { c.Momentum = interaction.Momentum{I: i, J: j} }
}

// WithTolerance sets the lattice-sum convergence tolerance.
func WithTolerance(t float64) Setting { return func(c *interaction.Config) { c.Tolerance = t } }

// Excitons are the eigenstates of a Bethe–Salpeter Hamiltonian.
//
// Energies are ascending. Column n of Amplitudes is exciton n expanded over
// Transitions, normalized, with its largest component real and positive.
type Excitons struct {
	Energies    []float64
	Amplitudes  *mat.CDense
	Transitions []interaction.Transition
}

// Len returns the number of states.
func (x *Excitons) Len() int { return len(x.Energies) }

// Amplitude returns a copy of exciton n's amplitudes.
func (x *Excitons) Amplitude(n int) []complex128 {
	rows, _ := x.Amplitudes.Dims()
	out := make([]complex128, rows)
	for t := range out {
		out[t] = x.Amplitudes.At(t, n)
	}

	return out
}
