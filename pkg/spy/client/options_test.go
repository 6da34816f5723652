package client

import (
	"net/http"
	"testing"
)

// TestNormalizedHeaders tests flattening and precedence of the three
// header forms.
func TestNormalizedHeaders(t *testing.T) {
	opts := &RequestOptions{
		Headers: map[string]string{
			"content-type": "text/plain",
			"x-custom":     "from-map",
		},
		Header: http.Header{
			"Content-Type": []string{"application/json"},
			"Accept":       []string{"application/json", "text/html"},
		},
		HeaderPairs: [][2]string{
			{"x-custom", "from-pairs"},
		},
	}

	got := opts.NormalizedHeaders()

	if got["Content-Type"] != "application/json" {
		t.Errorf("http.Header form should override map form, got %q", got["Content-Type"])
	}
	if got["Accept"] != "application/json, text/html" {
		t.Errorf("Multi-valued header not joined: %q", got["Accept"])
	}
	if got["X-Custom"] != "from-pairs" {
		t.Errorf("Pair form should win, got %q", got["X-Custom"])
	}
}

// TestNormalizedHeaders_CanonicalNames tests canonical key collapsing.
func TestNormalizedHeaders_CanonicalNames(t *testing.T) {
	opts := &RequestOptions{
		Headers: map[string]string{"x-api-key": "k"},
	}

	got := opts.NormalizedHeaders()
	if got["X-Api-Key"] != "k" {
		t.Errorf("Expected canonical key X-Api-Key, got %v", got)
	}
}

// TestNormalizedHeaders_Nil tests nil handling.
func TestNormalizedHeaders_Nil(t *testing.T) {
	var opts *RequestOptions
	if got := opts.NormalizedHeaders(); got != nil {
		t.Errorf("Expected nil for nil options, got %v", got)
	}
	if got := (&RequestOptions{}).NormalizedHeaders(); got != nil {
		t.Errorf("Expected nil for empty options, got %v", got)
	}
}
