// SPDX-License-Identifier: MIT

// Package metrics defines the Prometheus collectors of an exciton run and
// exposes them for scraping or as a node-exporter textfile.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	BuildsTotal          *prometheus.CounterVec
	BuildDuration        *prometheus.HistogramVec
	StoreKeys            prometheus.Gauge
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	DivergenceWarnings   *prometheus.CounterVec
	SolvesTotal          prometheus.Counter
	HamiltonianDimension prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		BuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "excitontb_store_builds_total",
				Help: "Interaction store builds by kernel and status (ok, error).",
			},
			[]string{"kernel", "status"},
		),
		BuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "excitontb_store_build_duration_seconds",
				Help:    "Interaction store build latency in seconds.",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
			},
			[]string{"kernel"},
		),
		StoreKeys: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "excitontb_store_keys",
				Help: "Number of k pairs retained by the last successful build.",
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "excitontb_store_cache_hits_total",
				Help: "Interaction requests served from the engine cache.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "excitontb_store_cache_misses_total",
				Help: "Interaction requests that triggered a build.",
			},
		),
		DivergenceWarnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "excitontb_lattice_sum_divergence_warnings_total",
				Help: "Lattice sums whose tail exceeded the convergence tolerance, by kernel.",
			},
			[]string{"kernel"},
		),
		SolvesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "excitontb_bse_solves_total",
				Help: "Bethe-Salpeter diagonalizations performed.",
			},
		),
		HamiltonianDimension: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "excitontb_bse_dimension",
				Help: "Transition count of the last Bethe-Salpeter Hamiltonian.",
			},
		),
	}

	m.registry.MustRegister(
		m.BuildsTotal,
		m.BuildDuration,
		m.StoreKeys,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.DivergenceWarnings,
		m.SolvesTotal,
		m.HamiltonianDimension,
	)

	return m
}

// ObserveBuild records one store build.
func (m *Metrics) ObserveBuild(kernel string, keys int, seconds float64, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.BuildsTotal.WithLabelValues(kernel, status).Inc()
	m.BuildDuration.WithLabelValues(kernel).Observe(seconds)
	if err == nil {
		m.StoreKeys.Set(float64(keys))
	}
}

// ObserveDivergence records a non-converged lattice sum.
func (m *Metrics) ObserveDivergence(kernel string) {
	m.DivergenceWarnings.WithLabelValues(kernel).Inc()
}

// CacheHit records a request served from cache.
func (m *Metrics) CacheHit() { m.CacheHitsTotal.Inc() }

// CacheMiss records a request that had to build.
func (m *Metrics) CacheMiss() { m.CacheMissesTotal.Inc() }

// ObserveSolve records a diagonalization of dimension n.
func (m *Metrics) ObserveSolve(n int) {
	m.SolvesTotal.Inc()
	m.HamiltonianDimension.Set(float64(n))
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler returns the scrape handler for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the current values in the text exposition format,
// atomically replacing path.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
