// Package metrics exposes Prometheus instrumentation for the capture
// pipeline: counts of captured and filtered requests, hook failures,
// store writes and write failures, and a histogram of the capture
// layer's own overhead.
//
// All collectors are registered on a private registry owned by the
// Collector, served by the report viewer's /metrics endpoint.
package metrics
