// Package report turns stored entries into human- and machine-readable
// artifacts: a JSON document, a self-contained HTML page, and a live
// console stream. The Generator pulls entries from the aggregation
// store and fans them out to the configured exporters; the Watcher
// regenerates reports when the store changes on disk.
package report
