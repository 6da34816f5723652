package client

import (
	"net/http"
	"strings"
)

// RequestOptions carries the per-call knobs for a Requester method.
// All fields are optional; a nil options pointer is equivalent to the
// zero value.
type RequestOptions struct {
	// Method overrides the HTTP method. Only Fetch honors it; the
	// verb-named methods ignore it.
	Method string

	// Headers is the plain-map header form. Later entries in Header
	// and HeaderPairs override identically named entries here.
	Headers map[string]string

	// Header is the net/http header form. Multi-valued headers are
	// joined with ", " when flattened.
	Header http.Header

	// HeaderPairs is the ordered pair-list header form. Pairs are
	// applied last and override the other two forms.
	HeaderPairs [][2]string

	// Body is the request payload. A string or []byte is sent as-is;
	// any other non-nil value is JSON-encoded, and Content-Type
	// defaults to application/json unless already set.
	Body any
}

// NormalizedHeaders flattens the three header forms into a single map
// keyed by canonical MIME header names. Precedence is Headers, then
// Header, then HeaderPairs, with later forms winning on collisions.
func (o *RequestOptions) NormalizedHeaders() map[string]string {
	if o == nil {
		return nil
	}
	out := make(map[string]string, len(o.Headers)+len(o.Header)+len(o.HeaderPairs))
	for name, value := range o.Headers {
		out[http.CanonicalHeaderKey(name)] = value
	}
	for name, values := range o.Header {
		out[http.CanonicalHeaderKey(name)] = strings.Join(values, ", ")
	}
	for _, pair := range o.HeaderPairs {
		out[http.CanonicalHeaderKey(pair[0])] = pair[1]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
