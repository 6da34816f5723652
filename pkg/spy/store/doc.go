// Package store implements the cross-process aggregation store: durable,
// append-only accumulation of redacted entries produced by isolated test
// worker processes, read once by the final report-generation phase.
//
// Three backends are provided. FileStore keeps a run-scoped directory with
// an append-only JSONL entries log, one record per line, written with a
// single O_APPEND write, which sidesteps the lost-update race of a
// read-modify-write file. SQLiteStore serializes concurrent workers
// through the database instead. MemoryStore backs tests.
//
// The store is best-effort telemetry, not a correctness-critical path:
// absent files are the normal "no data yet" state, malformed content
// degrades to an empty result with a logged warning, and write failures
// must never fail a test run.
package store
