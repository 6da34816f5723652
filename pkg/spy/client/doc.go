// Package client defines the HTTP request surface the spy intercepts.
//
// Requester is the minimal capability set the capture layer depends on:
// verb-named call methods plus a generic Fetch taking an explicit method.
// HTTPClient is a concrete net/http-backed implementation; Spy is the
// interception decorator that records every call made through it while
// remaining fully transparent: return values and errors pass through
// untouched, and capture is never load-bearing for the caller.
package client
