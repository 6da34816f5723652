package spy

// TestInfo identifies the test that originated a captured request.
// It is treated as an opaque, read-only value supplied by the test runner.
type TestInfo struct {
	// Title is the full test title as reported by the runner.
	Title string `json:"title"`

	// File is the source file the test is defined in.
	File string `json:"file"`

	// Line is the line number of the test definition, if known.
	Line int `json:"line,omitempty"`
}

// CapturedRequest is the record of one intercepted outgoing HTTP call.
type CapturedRequest struct {
	// ID is unique within a single capture instance's lifetime.
	ID string `json:"id"`

	// Method is the HTTP method, uppercased.
	Method string `json:"method"`

	// URL is the full URL the call was issued against.
	URL string `json:"url"`

	// Path is the path+query component derived from URL. When URL does not
	// parse as an absolute URL, Path holds the raw URL string verbatim.
	Path string `json:"path"`

	// Headers maps header names to values with original casing preserved.
	Headers map[string]string `json:"headers"`

	// Body is the request payload: JSON-decoded when the raw payload was
	// valid JSON, the raw string otherwise, nil when absent.
	Body any `json:"body,omitempty"`

	// Timestamp is the capture time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`

	// Test is the originating test, when the runner supplied one.
	Test *TestInfo `json:"test,omitempty"`

	// Metadata carries free-form annotations. The capture layer currently
	// uses only the "context" key.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CapturedResponse is the outcome of a successfully completed call.
// It has no identity of its own: it is owned 1:1 by the CapturedRequest
// that produced it.
type CapturedResponse struct {
	// Status is the numeric HTTP status code.
	Status int `json:"status"`

	// StatusText is the status line text ("OK", "Not Found", ...).
	StatusText string `json:"statusText"`

	// Headers maps response header names to values.
	Headers map[string]string `json:"headers"`

	// Body is the decoded response payload: JSON value, plain text, or nil.
	Body any `json:"body,omitempty"`

	// DurationMs is the wall-clock time from request capture to response
	// capture, in milliseconds.
	DurationMs int64 `json:"durationMs"`
}

// ErrorDetail describes a failed call.
type ErrorDetail struct {
	// Message is the error text as returned by the underlying client.
	Message string `json:"message"`

	// Stack is an optional stack trace.
	Stack string `json:"stack,omitempty"`
}

// CapturedEntry is the unit of storage: one request plus its outcome.
// Exactly one of Response and Error is set; entries are only created once
// an outcome is known, so a pending request never appears as an entry.
type CapturedEntry struct {
	Request  CapturedRequest   `json:"request"`
	Response *CapturedResponse `json:"response,omitempty"`
	Error    *ErrorDetail      `json:"error,omitempty"`
}

// Failed reports whether the entry represents a failed call: either the
// call errored, or it completed with a status of 400 or above.
func (e *CapturedEntry) Failed() bool {
	if e.Error != nil {
		return true
	}
	return e.Response != nil && e.Response.Status >= 400
}

// Duration returns the response duration in milliseconds, or 0 and false
// when the entry has no response.
func (e *CapturedEntry) Duration() (int64, bool) {
	if e.Response == nil {
		return 0, false
	}
	return e.Response.DurationMs, true
}
