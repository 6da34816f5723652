// Package viewer serves captured entries over HTTP for interactive
// inspection during and after a test run. It exposes the HTML report at
// the root, a small JSON API for tooling, and Prometheus metrics when
// a collector is wired in.
package viewer
