// Package capture implements the per-test recorder at the heart of the
// API spy.
//
// A Capture holds the ordered entry list for one test, applies the
// method/path filter, decodes and truncates bodies, attaches test and
// context annotations, and delivers request/response/error hooks in strict
// registration order. Filtered-out calls leave no trace; entries are only
// appended once an outcome (response or error) is known.
//
// Capture is instrumentation, never load-bearing: hook failures are
// isolated, store hand-off failures are logged and swallowed, and nothing
// in this package can alter the outcome of the test's own network call.
package capture
