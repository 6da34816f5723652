package capture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/spy"
	"github.com/damianovsky/playwright-api-spy/pkg/spy/redact"
	"github.com/damianovsky/playwright-api-spy/pkg/telemetry/metrics"
)

// ContextKey is the metadata key carrying the free-text context annotation.
const ContextKey = "context"

// RequestHook is invoked after a request has been captured, before the
// underlying call proceeds. Hooks run sequentially in registration order.
type RequestHook func(ctx context.Context, req *spy.CapturedRequest) error

// ResponseHook is invoked after a response entry has been appended. It
// receives the unredacted request and response.
type ResponseHook func(ctx context.Context, req *spy.CapturedRequest, resp *spy.CapturedResponse) error

// ErrorHook is invoked after an error entry has been appended. It receives
// the unredacted request and the original call error.
type ErrorHook func(ctx context.Context, req *spy.CapturedRequest, callErr error) error

// Streamer receives redacted entries as they are recorded, for live
// console output. Implementations must not retain the entry.
type Streamer interface {
	StreamEntry(entry *spy.CapturedEntry)
}

// ResponseInfo carries the normalized outcome of a completed call into
// CaptureResponse.
type ResponseInfo struct {
	Status     int
	StatusText string
	Headers    map[string]string
	Body       any
	DurationMs int64
}

// Options carries optional collaborators for a Capture.
type Options struct {
	// Metrics receives capture instrumentation. Nil disables it.
	Metrics *metrics.Collector

	// Streamer receives redacted entries live. Nil disables streaming.
	Streamer Streamer

	// Logger overrides the default component logger.
	Logger *slog.Logger
}

// Capture is the stateful per-test recorder. Each test owns exactly one
// Capture; the entry list is append-only for the duration of the test and
// reflects outcome completion order.
type Capture struct {
	cfg      *config.Config
	filter   *Filter
	redactor *redact.Redactor
	metrics  *metrics.Collector
	streamer Streamer
	logger   *slog.Logger

	mu            sync.Mutex
	entries       []*spy.CapturedEntry
	paused        bool
	contextNote   string
	hasContext    bool
	test          *spy.TestInfo
	requestHooks  []RequestHook
	responseHooks []ResponseHook
	errorHooks    []ErrorHook
}

// New creates a Capture from a resolved configuration.
func New(cfg *config.Config, opts *Options) (*Capture, error) {
	if opts == nil {
		opts = &Options{}
	}

	filter, err := NewFilter(cfg.Filter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter configuration: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Capture{
		cfg:      cfg,
		filter:   filter,
		redactor: redact.New(cfg.Redact),
		metrics:  opts.Metrics,
		streamer: opts.Streamer,
		logger:   logger.With("component", "spy.capture"),
	}, nil
}

// CaptureRequest records an intercepted call that is about to be issued.
// It returns the captured request, or nil when the call is not captured
// (paused, or rejected by the filter). A nil return means the caller must
// skip all further capture bookkeeping for this call.
//
// The returned record is not yet an entry: it only enters the entry list
// once CaptureResponse or CaptureError supplies an outcome.
func (c *Capture) CaptureRequest(ctx context.Context, method, url string, headers map[string]string, body any) *spy.CapturedRequest {
	start := time.Now()

	c.mu.Lock()
	if c.paused {
		c.mu.Unlock()
		c.metrics.ObserveFiltered(metrics.ReasonPaused)
		return nil
	}

	method = normalizeMethod(method)
	path := DerivePath(url)

	if ok, reason := c.filter.Allow(method, path); !ok {
		c.mu.Unlock()
		c.metrics.ObserveFiltered(reason)
		return nil
	}

	req := &spy.CapturedRequest{
		ID:        uuid.New().String(),
		Method:    method,
		URL:       url,
		Path:      path,
		Headers:   copyHeaders(headers),
		Body:      TruncateBody(DecodeBody(body), c.cfg.Capture.MaxBodyLength),
		Timestamp: time.Now().UnixMilli(),
		Test:      c.test,
	}
	if c.hasContext {
		req.Metadata = map[string]string{ContextKey: c.contextNote}
	}

	hooks := append([]RequestHook(nil), c.requestHooks...)
	c.mu.Unlock()

	for i, hook := range hooks {
		c.runHook("request", i, func() error { return hook(ctx, req) })
	}

	c.metrics.ObserveCaptured(method)
	c.metrics.ObserveOverhead(time.Since(start).Seconds())

	return req
}

// CaptureResponse records the successful outcome of a previously captured
// request and appends the resulting entry. Callers must only invoke it
// with a request returned by CaptureRequest.
func (c *Capture) CaptureResponse(ctx context.Context, req *spy.CapturedRequest, info ResponseInfo) {
	resp := &spy.CapturedResponse{
		Status:     info.Status,
		StatusText: info.StatusText,
		Headers:    copyHeaders(info.Headers),
		Body:       TruncateBody(DecodeBody(info.Body), c.cfg.Capture.MaxBodyLength),
		DurationMs: info.DurationMs,
	}

	entry := &spy.CapturedEntry{Request: *req, Response: resp}
	c.append(entry)
	c.stream(entry)

	c.mu.Lock()
	hooks := append([]ResponseHook(nil), c.responseHooks...)
	c.mu.Unlock()

	for i, hook := range hooks {
		c.runHook("response", i, func() error { return hook(ctx, req, resp) })
	}
}

// CaptureError records the failed outcome of a previously captured request
// and appends the resulting entry. The original error is left for the
// caller to re-throw unmodified.
func (c *Capture) CaptureError(ctx context.Context, req *spy.CapturedRequest, callErr error) {
	detail := &spy.ErrorDetail{Message: callErr.Error()}
	if st, ok := callErr.(interface{ Stack() string }); ok {
		detail.Stack = st.Stack()
	}

	entry := &spy.CapturedEntry{Request: *req, Error: detail}
	c.append(entry)
	c.stream(entry)

	c.mu.Lock()
	hooks := append([]ErrorHook(nil), c.errorHooks...)
	c.mu.Unlock()

	for i, hook := range hooks {
		c.runHook("error", i, func() error { return hook(ctx, req, callErr) })
	}
}

// OnRequest registers a request hook. Hooks run sequentially in
// registration order; a failing hook is logged and skipped, never
// propagated.
func (c *Capture) OnRequest(hook RequestHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestHooks = append(c.requestHooks, hook)
}

// OnResponse registers a response hook.
func (c *Capture) OnResponse(hook ResponseHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responseHooks = append(c.responseHooks, hook)
}

// OnError registers an error hook.
func (c *Capture) OnError(hook ErrorHook) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorHooks = append(c.errorHooks, hook)
}

// AddContext attaches a free-text context annotation to all subsequently
// captured requests. It is not retroactive.
func (c *Capture) AddContext(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contextNote = text
	c.hasContext = true
}

// ClearContext removes the context annotation for subsequent requests.
func (c *Capture) ClearContext() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contextNote = ""
	c.hasContext = false
}

// SetTest attaches the originating-test descriptor to all subsequently
// captured requests.
func (c *Capture) SetTest(test *spy.TestInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.test = test
}

// Pause suspends capturing. While paused, CaptureRequest returns nil with
// no other observable effect; existing entries are untouched.
func (c *Capture) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume lifts a pause.
func (c *Capture) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// IsPaused reports whether capturing is currently suspended.
func (c *Capture) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Clear empties the entry list. Paused state, context, and registered
// hooks are unaffected.
func (c *Capture) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

// Entries returns a snapshot of the raw, unredacted entry list for
// in-test assertions.
func (c *Capture) Entries() []*spy.CapturedEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*spy.CapturedEntry(nil), c.entries...)
}

// EntriesForReport returns a new list in which every entry's request and
// response have been redacted. This is the only sanctioned path by which
// entries leave the instance for aggregation or export.
func (c *Capture) EntriesForReport() []*spy.CapturedEntry {
	return c.redactor.Entries(c.Entries())
}

// Requests returns the request of every entry, in entry order.
func (c *Capture) Requests() []*spy.CapturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*spy.CapturedRequest, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, &e.Request)
	}
	return out
}

// Responses returns the response of every entry that has one, in entry
// order.
func (c *Capture) Responses() []*spy.CapturedResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*spy.CapturedResponse
	for _, e := range c.entries {
		if e.Response != nil {
			out = append(out, e.Response)
		}
	}
	return out
}

// LastEntry returns the most recently appended entry, or nil.
func (c *Capture) LastEntry() *spy.CapturedEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) == 0 {
		return nil
	}
	return c.entries[len(c.entries)-1]
}

// LastRequest returns the request of the most recent entry, or nil.
func (c *Capture) LastRequest() *spy.CapturedRequest {
	if e := c.LastEntry(); e != nil {
		return &e.Request
	}
	return nil
}

// LastResponse returns the response of the most recent entry, or nil when
// there is none or the entry failed.
func (c *Capture) LastResponse() *spy.CapturedResponse {
	if e := c.LastEntry(); e != nil {
		return e.Response
	}
	return nil
}

// append adds an entry to the list in outcome-completion order.
func (c *Capture) append(entry *spy.CapturedEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
}

// stream hands a redacted copy of the entry to the streamer, if any.
func (c *Capture) stream(entry *spy.CapturedEntry) {
	if c.streamer == nil {
		return
	}
	c.streamer.StreamEntry(c.redactor.Entry(entry))
}

// runHook invokes one hook with full failure isolation: a returned error
// or a panic is logged and counted, never propagated. A misbehaving hook
// must not be able to fail the test's actual network call.
func (c *Capture) runHook(phase string, index int, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			hookErr := spy.NewHookError(phase, index, fmt.Errorf("panic: %v", r))
			c.logger.Warn("hook panicked", "phase", phase, "index", index, "error", hookErr)
			c.metrics.ObserveHookFailure(phase)
		}
	}()

	if err := fn(); err != nil {
		hookErr := spy.NewHookError(phase, index, err)
		c.logger.Warn("hook failed", "phase", phase, "index", index, "error", hookErr)
		c.metrics.ObserveHookFailure(phase)
	}
}

// normalizeMethod uppercases a method, defaulting empty to GET.
func normalizeMethod(method string) string {
	if method == "" {
		return "GET"
	}
	return strings.ToUpper(method)
}

// copyHeaders clones a header map, preserving original casing. A nil map
// yields an empty, non-nil map so entries always serialize a headers
// object.
func copyHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
