package redact

import (
	"strings"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/spy"
)

// Redactor applies a fixed redaction configuration to captured requests,
// responses, and entries. It is stateless after construction and safe for
// concurrent use.
type Redactor struct {
	headers     map[string]bool
	fields      []string
	replacement string
}

// New creates a Redactor from a resolved redaction configuration.
func New(cfg config.RedactConfig) *Redactor {
	headers := make(map[string]bool, len(cfg.Headers))
	for _, h := range cfg.Headers {
		headers[strings.ToLower(h)] = true
	}

	fields := make([]string, 0, len(cfg.BodyFields))
	for _, f := range cfg.BodyFields {
		fields = append(fields, strings.ToLower(f))
	}

	return &Redactor{
		headers:     headers,
		fields:      fields,
		replacement: cfg.Replacement,
	}
}

// Headers returns a copy of h with the values of configured header names
// replaced. Matching is case-insensitive on the name; original casing is
// preserved in the result. A nil map stays nil.
func (r *Redactor) Headers(h map[string]string) map[string]string {
	if h == nil {
		return nil
	}

	out := make(map[string]string, len(h))
	for name, value := range h {
		if r.headers[strings.ToLower(name)] {
			out[name] = r.replacement
		} else {
			out[name] = value
		}
	}
	return out
}

// Body returns a deep copy of v with string values under matching keys
// replaced. Non-mapping, non-sequence values are returned unchanged.
func (r *Redactor) Body(v any) any {
	switch val := v.(type) {
	case nil:
		return nil

	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = r.Body(elem)
		}
		return out

	case map[string]any:
		out := make(map[string]any, len(val))
		for key, elem := range val {
			if r.fieldMatches(key) {
				if _, ok := elem.(string); ok {
					out[key] = r.replacement
					continue
				}
			}
			// Non-string values under a matching key fall through to
			// further traversal rather than being replaced wholesale.
			out[key] = r.Body(elem)
		}
		return out

	default:
		// Scalars (string, number, bool) pass through unchanged;
		// matching strings are only replaced via their parent key.
		return v
	}
}

// fieldMatches reports whether a body key matches any configured field
// name. The comparison lower-cases the key and tests for substring
// containment, so "userPassword" matches the configured field "password".
func (r *Redactor) fieldMatches(key string) bool {
	lower := strings.ToLower(key)
	for _, f := range r.fields {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// Request returns a redacted copy of req. The input is left untouched;
// an absent body stays absent.
func (r *Redactor) Request(req spy.CapturedRequest) spy.CapturedRequest {
	out := req
	out.Headers = r.Headers(req.Headers)
	if req.Body != nil {
		out.Body = r.Body(req.Body)
	}
	return out
}

// Response returns a redacted copy of resp, or nil for a nil input.
func (r *Redactor) Response(resp *spy.CapturedResponse) *spy.CapturedResponse {
	if resp == nil {
		return nil
	}

	out := *resp
	out.Headers = r.Headers(resp.Headers)
	if resp.Body != nil {
		out.Body = r.Body(resp.Body)
	}
	return &out
}

// Entry returns a redacted copy of e. Error details pass through
// unredacted: messages and stack traces are not subject to field or
// header redaction.
func (r *Redactor) Entry(e *spy.CapturedEntry) *spy.CapturedEntry {
	return &spy.CapturedEntry{
		Request:  r.Request(e.Request),
		Response: r.Response(e.Response),
		Error:    e.Error,
	}
}

// Entries returns a new list of redacted copies of entries.
func (r *Redactor) Entries(entries []*spy.CapturedEntry) []*spy.CapturedEntry {
	out := make([]*spy.CapturedEntry, len(entries))
	for i, e := range entries {
		out[i] = r.Entry(e)
	}
	return out
}
