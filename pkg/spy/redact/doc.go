// Package redact implements the scrubbing of sensitive header and body
// values from captured entries.
//
// Redaction is a pure transformation: inputs are never mutated, outputs are
// structurally equivalent copies with matching values replaced. Header names
// match case-insensitively by equality and never recurse. Body field names
// match case-insensitively by substring against object keys at any depth,
// and only string values under a matching key are replaced; a nested
// object under a matching key is traversed further, not blanked wholesale.
package redact
