// Package spy defines the data model shared by the API capture pipeline:
// captured requests, responses, entries, error details, and the report
// summary computed over a set of entries.
//
// An entry is one recorded request paired with its outcome, either a
// response or an error descriptor, never both. Entries are produced by
// pkg/spy/capture, persisted across worker processes by pkg/spy/store,
// and consumed by pkg/report.
package spy
