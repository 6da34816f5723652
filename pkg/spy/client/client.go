package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Requester is the call surface the spy decorates. Implementations
// return a fully buffered APIResponse; the caller never deals with
// the response body stream directly.
type Requester interface {
	Get(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error)
	Post(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error)
	Put(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error)
	Patch(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error)
	Delete(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error)
	Head(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error)

	// Fetch issues a request with the method taken from opts.Method,
	// defaulting to GET when unset.
	Fetch(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error)
}

// HTTPClientConfig tunes the underlying net/http transport.
type HTTPClientConfig struct {
	// Timeout bounds the whole request including body read.
	Timeout time.Duration
	// MaxIdleConns caps the idle connection pool across all hosts.
	MaxIdleConns int
	// MaxIdleConnsPerHost caps idle connections per host.
	MaxIdleConnsPerHost int
	// IdleConnTimeout is how long idle connections are kept.
	IdleConnTimeout time.Duration
}

// DefaultHTTPClientConfig returns the pooling defaults.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:             30 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}

// HTTPClient is a net/http-backed Requester with connection pooling.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates an HTTPClient with a pooled transport.
func NewHTTPClient(cfg HTTPClientConfig) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}
	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}
}

// NewHTTPClientFrom wraps an existing *http.Client, for callers that
// need custom transports or test doubles.
func NewHTTPClientFrom(hc *http.Client) *HTTPClient {
	return &HTTPClient{client: hc}
}

func (c *HTTPClient) Get(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return c.do(ctx, http.MethodGet, url, opts)
}

func (c *HTTPClient) Post(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return c.do(ctx, http.MethodPost, url, opts)
}

func (c *HTTPClient) Put(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return c.do(ctx, http.MethodPut, url, opts)
}

func (c *HTTPClient) Patch(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return c.do(ctx, http.MethodPatch, url, opts)
}

func (c *HTTPClient) Delete(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return c.do(ctx, http.MethodDelete, url, opts)
}

func (c *HTTPClient) Head(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return c.do(ctx, http.MethodHead, url, opts)
}

func (c *HTTPClient) Fetch(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	method := http.MethodGet
	if opts != nil && opts.Method != "" {
		method = strings.ToUpper(opts.Method)
	}
	return c.do(ctx, method, url, opts)
}

func (c *HTTPClient) do(ctx context.Context, method, url string, opts *RequestOptions) (*APIResponse, error) {
	body, contentType, err := encodeRequestBody(opts)
	if err != nil {
		return nil, fmt.Errorf("encoding %s %s request body: %w", method, url, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", method, url, err)
	}
	for name, value := range opts.NormalizedHeaders() {
		req.Header.Set(name, value)
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response body: %w", method, url, err)
	}
	return NewAPIResponse(resp.StatusCode, resp.Header, data), nil
}

// encodeRequestBody turns opts.Body into a reader. Strings and byte
// slices pass through verbatim; anything else is JSON-encoded and the
// returned content type is set accordingly.
func encodeRequestBody(opts *RequestOptions) (io.Reader, string, error) {
	if opts == nil || opts.Body == nil {
		return nil, "", nil
	}
	switch b := opts.Body.(type) {
	case string:
		return strings.NewReader(b), "", nil
	case []byte:
		return bytes.NewReader(b), "", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}
