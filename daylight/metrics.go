package daylight

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-run counters on a private registry. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry       *prometheus.Registry
	lookupsTotal   *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
	fallbacksTotal *prometheus.CounterVec
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
}

// NewMetrics creates and registers the daylight collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "daylight_results_total",
			Help: "Total daylight results by producing source and status kind.",
		}, []string{"source", "status"}),
		lookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "daylight_source_lookup_duration_seconds",
			Help:    "Histogram of source lookup durations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"source"}),
		fallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "daylight_fallbacks_total",
			Help: "Total fallbacks away from an unavailable source.",
		}, []string{"source"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "daylight_cache_hits_total",
			Help: "Total cache hits observed.",
		}, []string{"source"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "daylight_cache_misses_total",
			Help: "Total cache misses observed.",
		}, []string{"source"}),
	}

	m.registry.MustRegister(
		m.lookupsTotal,
		m.lookupDuration,
		m.fallbacksTotal,
		m.cacheHits,
		m.cacheMisses,
	)

	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteToTextfile writes all metrics in the node-exporter textfile format.
func (m *Metrics) WriteToTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) result(source string, status Status) {
	if m == nil {
		return
	}
	kind := string(status)
	if status.IsError() {
		kind = "error"
	}
	m.lookupsTotal.WithLabelValues(source, kind).Inc()
}

func (m *Metrics) lookup(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.lookupDuration.WithLabelValues(source).Observe(d.Seconds())
}

func (m *Metrics) fallback(source string) {
	if m == nil {
		return
	}
	m.fallbacksTotal.WithLabelValues(source).Inc()
}

func (m *Metrics) cacheHit(source string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(source).Inc()
}

func (m *Metrics) cacheMiss(source string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(source).Inc()
}
