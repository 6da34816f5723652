package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/spy"
	"github.com/damianovsky/playwright-api-spy/pkg/spy/capture"
)

// fakeRequester records the calls it receives and returns a canned
// response or error.
type fakeRequester struct {
	lastMethod string
	lastURL    string
	lastOpts   *RequestOptions
	resp       *APIResponse
	err        error
}

func (f *fakeRequester) call(method string) callFunc {
	return func(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
		f.lastMethod = method
		f.lastURL = url
		f.lastOpts = opts
		return f.resp, f.err
	}
}

func (f *fakeRequester) Get(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return f.call(http.MethodGet)(ctx, url, opts)
}
func (f *fakeRequester) Post(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return f.call(http.MethodPost)(ctx, url, opts)
}
func (f *fakeRequester) Put(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return f.call(http.MethodPut)(ctx, url, opts)
}
func (f *fakeRequester) Patch(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return f.call(http.MethodPatch)(ctx, url, opts)
}
func (f *fakeRequester) Delete(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return f.call(http.MethodDelete)(ctx, url, opts)
}
func (f *fakeRequester) Head(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return f.call(http.MethodHead)(ctx, url, opts)
}
func (f *fakeRequester) Fetch(ctx context.Context, url string, opts *RequestOptions) (*APIResponse, error) {
	return f.call("FETCH")(ctx, url, opts)
}

func newSpy(t *testing.T, target Requester) *Spy {
	t.Helper()
	cap, err := capture.New(config.Default(), nil)
	if err != nil {
		t.Fatalf("capture.New() failed: %v", err)
	}
	return NewSpy(target, cap)
}

// TestSpy_CapturesSuccessfulCall tests the capture-delegate-capture
// sequence on success.
func TestSpy_CapturesSuccessfulCall(t *testing.T) {
	fake := &fakeRequester{
		resp: NewAPIResponse(200, http.Header{"Content-Type": []string{"application/json"}}, []byte(`{"ok":true}`)),
	}
	s := newSpy(t, fake)

	opts := &RequestOptions{Headers: map[string]string{"Accept": "application/json"}}
	resp, err := s.Get(context.Background(), "https://api.example.com/users", opts)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if resp != fake.resp {
		t.Error("Response must pass through unchanged")
	}
	if fake.lastOpts != opts {
		t.Error("Options must be forwarded unmodified")
	}

	entries := s.Capture().Entries()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Request.Method != "GET" || e.Request.Path != "/users" {
		t.Errorf("Unexpected request record: %+v", e.Request)
	}
	if e.Response == nil || e.Response.Status != 200 {
		t.Fatalf("Unexpected response record: %+v", e.Response)
	}
	body, ok := e.Response.Body.(map[string]any)
	if !ok || body["ok"] != true {
		t.Errorf("Response body not decoded: %#v", e.Response.Body)
	}
}

// TestSpy_ErrorPassthrough tests that the original error is returned
// untouched and recorded as an error entry.
func TestSpy_ErrorPassthrough(t *testing.T) {
	want := errors.New("connection reset")
	s := newSpy(t, &fakeRequester{err: want})

	_, err := s.Post(context.Background(), "https://api.example.com/orders", nil)
	if !errors.Is(err, want) {
		t.Fatalf("Expected original error, got %v", err)
	}

	entries := s.Capture().Entries()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Error == nil || entries[0].Error.Message != "connection reset" {
		t.Errorf("Unexpected error record: %+v", entries[0].Error)
	}
}

// TestSpy_FilteredCallStillDelegates tests transparency when the call
// itself is not captured.
func TestSpy_FilteredCallStillDelegates(t *testing.T) {
	fake := &fakeRequester{resp: NewAPIResponse(200, nil, nil)}
	s := newSpy(t, fake)
	s.Capture().Pause()

	resp, err := s.Get(context.Background(), "https://api.example.com/x", nil)
	if err != nil || resp == nil {
		t.Fatalf("Delegation must not depend on capture: resp=%v err=%v", resp, err)
	}
	if fake.lastMethod != http.MethodGet {
		t.Error("Underlying client not called")
	}
	if len(s.Capture().Entries()) != 0 {
		t.Error("Paused spy must not record entries")
	}
}

// TestSpy_VerbsDelegate tests that each verb reaches the matching
// method of the wrapped client.
func TestSpy_VerbsDelegate(t *testing.T) {
	fake := &fakeRequester{resp: NewAPIResponse(204, nil, nil)}
	s := newSpy(t, fake)
	ctx := context.Background()

	calls := []struct {
		invoke func() (*APIResponse, error)
		want   string
	}{
		{func() (*APIResponse, error) { return s.Get(ctx, "https://e.com/a", nil) }, http.MethodGet},
		{func() (*APIResponse, error) { return s.Post(ctx, "https://e.com/a", nil) }, http.MethodPost},
		{func() (*APIResponse, error) { return s.Put(ctx, "https://e.com/a", nil) }, http.MethodPut},
		{func() (*APIResponse, error) { return s.Patch(ctx, "https://e.com/a", nil) }, http.MethodPatch},
		{func() (*APIResponse, error) { return s.Delete(ctx, "https://e.com/a", nil) }, http.MethodDelete},
		{func() (*APIResponse, error) { return s.Head(ctx, "https://e.com/a", nil) }, http.MethodHead},
	}

	for _, c := range calls {
		if _, err := c.invoke(); err != nil {
			t.Fatalf("%s failed: %v", c.want, err)
		}
		if fake.lastMethod != c.want {
			t.Errorf("Expected delegation to %s, got %s", c.want, fake.lastMethod)
		}
	}
}

// TestSpy_FetchUsesOptionsMethod tests method resolution for Fetch.
func TestSpy_FetchUsesOptionsMethod(t *testing.T) {
	fake := &fakeRequester{resp: NewAPIResponse(200, nil, nil)}
	s := newSpy(t, fake)

	if _, err := s.Fetch(context.Background(), "https://e.com/a", &RequestOptions{Method: "patch"}); err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if fake.lastMethod != "FETCH" {
		t.Error("Fetch must delegate to the wrapped Fetch")
	}

	last := s.Capture().LastRequest()
	if last == nil || last.Method != "PATCH" {
		t.Errorf("Expected captured method PATCH, got %+v", last)
	}
}

// TestSpy_DurationCoversCaptureOverhead tests that the recorded duration
// starts before capture bookkeeping, so hook latency is included.
func TestSpy_DurationCoversCaptureOverhead(t *testing.T) {
	fake := &fakeRequester{resp: NewAPIResponse(200, nil, nil)}
	s := newSpy(t, fake)
	s.Capture().OnRequest(func(ctx context.Context, req *spy.CapturedRequest) error {
		time.Sleep(30 * time.Millisecond)
		return nil
	})

	if _, err := s.Get(context.Background(), "https://api.example.com/slow", nil); err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	last := s.Capture().LastResponse()
	if last == nil {
		t.Fatal("Expected a recorded response")
	}
	if last.DurationMs < 30 {
		t.Errorf("Expected duration to include hook latency, got %dms", last.DurationMs)
	}
}

// TestSpy_Unwrap tests access to the wrapped client.
func TestSpy_Unwrap(t *testing.T) {
	fake := &fakeRequester{}
	s := newSpy(t, fake)

	if s.Unwrap() != Requester(fake) {
		t.Error("Unwrap must return the wrapped client")
	}
}
