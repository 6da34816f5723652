package metrics

import (
	"testing"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
)

// TestNewCollector_Disabled tests that disabled metrics yield a nil
// Collector.
func TestNewCollector_Disabled(t *testing.T) {
	cfg := config.MetricsConfig{Enabled: config.Bool(false)}
	if c := NewCollector(cfg); c != nil {
		t.Error("Expected nil Collector when metrics are disabled")
	}
}

// TestNilCollector_Safe tests that a nil Collector accepts observations
// without panicking.
func TestNilCollector_Safe(t *testing.T) {
	var c *Collector

	c.ObserveCaptured("GET")
	c.ObserveFiltered(ReasonPaused)
	c.ObserveHookFailure("request")
	c.ObserveStored(5)
	c.ObserveStoreFailure("add")
	c.ObserveOverhead(0.001)

	if c.Registry() != nil {
		t.Error("Expected nil registry from nil Collector")
	}
}

// TestCollector_Gather tests that observations land in the registry.
func TestCollector_Gather(t *testing.T) {
	cfg := config.Default().Telemetry.Metrics
	cfg.Enabled = config.Bool(true)

	c := NewCollector(cfg)
	if c == nil {
		t.Fatal("NewCollector() returned nil with metrics enabled")
	}

	c.ObserveCaptured("GET")
	c.ObserveCaptured("GET")
	c.ObserveFiltered(ReasonExclude)
	c.ObserveStored(3)

	families, err := c.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}

	found := make(map[string]bool)
	for _, mf := range families {
		found[mf.GetName()] = true
	}

	for _, name := range []string{
		cfg.Namespace + "_requests_captured_total",
		cfg.Namespace + "_requests_filtered_total",
		cfg.Namespace + "_entries_stored_total",
	} {
		if !found[name] {
			t.Errorf("Expected metric family %s in gather output", name)
		}
	}
}
