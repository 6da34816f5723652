package client

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the buffered result of a Requester call. The body is
// read fully before the response is returned, so accessors never touch
// the network and can be called any number of times.
type APIResponse struct {
	// StatusCode is the numeric HTTP status.
	StatusCode int
	// StatusText is the reason phrase, e.g. "Not Found".
	StatusText string
	// Header holds the response headers.
	Header http.Header

	body []byte
}

// NewAPIResponse builds a response from already-buffered parts. It is
// exported for alternative Requester implementations and tests.
func NewAPIResponse(statusCode int, header http.Header, body []byte) *APIResponse {
	return &APIResponse{
		StatusCode: statusCode,
		StatusText: http.StatusText(statusCode),
		Header:     header,
		body:       body,
	}
}

// OK reports whether the status code is in the 2xx range.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Body returns the raw response body bytes.
func (r *APIResponse) Body() []byte {
	return r.body
}

// Text returns the response body as a string.
func (r *APIResponse) Text() string {
	return string(r.body)
}

// JSON unmarshals the response body into v.
func (r *APIResponse) JSON(v any) error {
	return json.Unmarshal(r.body, v)
}
