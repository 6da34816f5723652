package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/damianovsky/playwright-api-spy/pkg/spy/capture"
)

// Spy decorates a Requester with call capture. Every request made
// through it is offered to the capture layer before dispatch and its
// outcome recorded after; the decorated call itself is forwarded with
// the caller's original arguments and its result returned unchanged.
// A capture failure never fails the call.
type Spy struct {
	target  Requester
	capture *capture.Capture
}

// NewSpy wraps target with the given capture layer.
func NewSpy(target Requester, cap *capture.Capture) *Spy {
	return &Spy{target: target, capture: cap}
}

// Unwrap returns the decorated Requester.
func (s *Spy) Unwrap() Requester {
	return s.target
}

// Capture exposes the underlying capture layer for assertions and
// report handoff.
func (s *Spy) Capture() *capture.Capture {
	return s.capture
}

func (s *Spy) Get(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return s.intercept(ctx, http.MethodGet, url, opts, s.target.Get)
}

func (s *Spy) Post(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return s.intercept(ctx, http.MethodPost, url, opts, s.target.Post)
}

func (s *Spy) Put(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return s.intercept(ctx, http.MethodPut, url, opts, s.target.Put)
}

func (s *Spy) Patch(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return s.intercept(ctx, http.MethodPatch, url, opts, s.target.Patch)
}

func (s *Spy) Delete(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return s.intercept(ctx, http.MethodDelete, url, opts, s.target.Delete)
}

func (s *Spy) Head(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return s.intercept(ctx, http.MethodHead, url, opts, s.target.Head)
}

func (s *Spy) Fetch(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	method := http.MethodGet
	if opts != nil && opts.Method != "" {
		method = strings.ToUpper(opts.Method)
	}
	return s.intercept(ctx, method, url, opts, s.target.Fetch)
}

type callFunc func(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error)

func (s *Spy) intercept(ctx context.Context, method, url string, opts *RequestOptions, call callFunc) (*APIResponse, error) {
	var body any
	if opts != nil {
		body = opts.Body
	}
	// The clock starts before capture bookkeeping so the recorded
	// duration covers hook latency as well as the wire time.
	start := time.Now()
	req := s.capture.CaptureRequest(ctx, method, url, opts.NormalizedHeaders(), body)

	resp, err := call(ctx, url, opts)
	if req == nil {
		return resp, err
	}

	if err != nil {
		s.capture.CaptureError(ctx, req, err)
		return resp, err
	}
	s.capture.CaptureResponse(ctx, req, capture.ResponseInfo{
		Status:     resp.StatusCode,
		StatusText: resp.StatusText,
		Headers:    flattenHeader(resp.Header),
		Body:       decodeResponseBody(resp),
		DurationMs: time.Since(start).Milliseconds(),
	})
	return resp, err
}

func flattenHeader(h http.Header) map[string]string {
	if len(h) == 0 {
		return nil
	}
	out := make(map[string]string, len(h))
	for name, values := range h {
		out[name] = strings.Join(values, ", ")
	}
	return out
}

func decodeResponseBody(resp *APIResponse) any {
	if len(resp.Body()) == 0 {
		return nil
	}
	return capture.DecodeBody(resp.Body())
}
