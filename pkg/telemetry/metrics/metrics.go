package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
)

// Filter rejection reasons used as the "reason" label on RequestsFiltered.
const (
	ReasonPaused  = "paused"
	ReasonMethod  = "method"
	ReasonExclude = "exclude_path"
	ReasonInclude = "include_path"
)

// Collector holds all Prometheus collectors for the capture pipeline.
// A nil *Collector is valid and records nothing, so callers never need to
// guard instrumentation sites.
type Collector struct {
	registry *prometheus.Registry

	// RequestsCaptured counts requests that passed filtering and were
	// recorded, labeled by method.
	RequestsCaptured *prometheus.CounterVec

	// RequestsFiltered counts requests rejected before capture, labeled
	// by rejection reason.
	RequestsFiltered *prometheus.CounterVec

	// HookFailures counts isolated hook callback failures, labeled by
	// hook phase.
	HookFailures *prometheus.CounterVec

	// EntriesStored counts entries written to the aggregation store.
	EntriesStored prometheus.Counter

	// StoreFailures counts failed aggregation store operations, labeled
	// by operation.
	StoreFailures *prometheus.CounterVec

	// CaptureOverhead observes the time spent inside capture bookkeeping
	// per request, in seconds.
	CaptureOverhead prometheus.Histogram
}

// NewCollector creates a Collector with all metrics registered on a fresh
// registry. Returns nil when metrics are disabled.
func NewCollector(cfg config.MetricsConfig) *Collector {
	if cfg.Enabled != nil && !*cfg.Enabled {
		return nil
	}

	ns := cfg.Namespace
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		RequestsCaptured: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "requests_captured_total",
			Help:      "Requests that passed filtering and were captured.",
		}, []string{"method"}),
		RequestsFiltered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "requests_filtered_total",
			Help:      "Requests rejected before capture.",
		}, []string{"reason"}),
		HookFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "hook_failures_total",
			Help:      "Hook callbacks that panicked or returned an error.",
		}, []string{"phase"}),
		EntriesStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "entries_stored_total",
			Help:      "Entries written to the aggregation store.",
		}),
		StoreFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "store_failures_total",
			Help:      "Failed aggregation store operations.",
		}, []string{"operation"}),
		CaptureOverhead: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "capture_overhead_seconds",
			Help:      "Time spent inside capture bookkeeping per request.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}

	registry.MustRegister(
		c.RequestsCaptured,
		c.RequestsFiltered,
		c.HookFailures,
		c.EntriesStored,
		c.StoreFailures,
		c.CaptureOverhead,
	)

	return c
}

// Registry returns the underlying registry for serving /metrics.
// Returns nil on a nil Collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// ObserveCaptured records a captured request. Safe on a nil Collector.
func (c *Collector) ObserveCaptured(method string) {
	if c == nil {
		return
	}
	c.RequestsCaptured.WithLabelValues(method).Inc()
}

// ObserveFiltered records a rejected request. Safe on a nil Collector.
func (c *Collector) ObserveFiltered(reason string) {
	if c == nil {
		return
	}
	c.RequestsFiltered.WithLabelValues(reason).Inc()
}

// ObserveHookFailure records an isolated hook failure. Safe on a nil
// Collector.
func (c *Collector) ObserveHookFailure(phase string) {
	if c == nil {
		return
	}
	c.HookFailures.WithLabelValues(phase).Inc()
}

// ObserveStored records n entries written to the store. Safe on a nil
// Collector.
func (c *Collector) ObserveStored(n int) {
	if c == nil {
		return
	}
	c.EntriesStored.Add(float64(n))
}

// ObserveStoreFailure records a failed store operation. Safe on a nil
// Collector.
func (c *Collector) ObserveStoreFailure(operation string) {
	if c == nil {
		return
	}
	c.StoreFailures.WithLabelValues(operation).Inc()
}

// ObserveOverhead records capture bookkeeping time in seconds. Safe on a
// nil Collector.
func (c *Collector) ObserveOverhead(seconds float64) {
	if c == nil {
		return
	}
	c.CaptureOverhead.Observe(seconds)
}
