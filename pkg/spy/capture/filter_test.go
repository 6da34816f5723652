package capture

import (
	"testing"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/telemetry/metrics"
)

func mustFilter(t *testing.T, cfg config.FilterConfig) *Filter {
	t.Helper()
	f, err := NewFilter(cfg)
	if err != nil {
		t.Fatalf("NewFilter() failed: %v", err)
	}
	return f
}

// TestFilter_MethodAllowList tests the method allow-list rule.
func TestFilter_MethodAllowList(t *testing.T) {
	f := mustFilter(t, config.FilterConfig{Methods: []string{"GET", "POST"}})

	if ok, _ := f.Allow("GET", "/api"); !ok {
		t.Error("GET should be allowed")
	}
	if ok, _ := f.Allow("get", "/api"); !ok {
		t.Error("Method matching should be case-insensitive")
	}
	if ok, reason := f.Allow("DELETE", "/api"); ok || reason != metrics.ReasonMethod {
		t.Errorf("DELETE should be rejected with reason method, got ok=%v reason=%q", ok, reason)
	}
}

// TestFilter_EmptyMethodsAdmitsAll tests that an empty method list is
// not a deny-all.
func TestFilter_EmptyMethodsAdmitsAll(t *testing.T) {
	f := mustFilter(t, config.FilterConfig{})

	for _, m := range []string{"GET", "POST", "OPTIONS", "TRACE"} {
		if ok, _ := f.Allow(m, "/x"); !ok {
			t.Errorf("Method %s should be allowed with empty list", m)
		}
	}
}

// TestFilter_ExcludePatterns tests exclude matching against the path.
func TestFilter_ExcludePatterns(t *testing.T) {
	f := mustFilter(t, config.FilterConfig{
		ExcludePaths: []string{`\.(png|css|js)$`, `^/health`},
	})

	if ok, reason := f.Allow("GET", "/assets/app.js"); ok || reason != metrics.ReasonExclude {
		t.Errorf("Static asset should be excluded, got ok=%v reason=%q", ok, reason)
	}
	if ok, _ := f.Allow("GET", "/health/live"); ok {
		t.Error("/health/live should be excluded")
	}
	if ok, _ := f.Allow("GET", "/api/users"); !ok {
		t.Error("/api/users should pass")
	}
}

// TestFilter_IncludePatterns tests that a non-empty include list
// requires at least one match.
func TestFilter_IncludePatterns(t *testing.T) {
	f := mustFilter(t, config.FilterConfig{
		IncludePaths: []string{`^/api/`},
	})

	if ok, _ := f.Allow("GET", "/api/users"); !ok {
		t.Error("/api/users should match include")
	}
	if ok, reason := f.Allow("GET", "/static/logo.png"); ok || reason != metrics.ReasonInclude {
		t.Errorf("Non-matching path should be rejected with reason include, got ok=%v reason=%q", ok, reason)
	}
}

// TestFilter_ExcludeWinsOverInclude tests that an exclude match rejects
// even when an include pattern also matches.
func TestFilter_ExcludeWinsOverInclude(t *testing.T) {
	f := mustFilter(t, config.FilterConfig{
		IncludePaths: []string{`^/api/`},
		ExcludePaths: []string{`/internal/`},
	})

	if ok, reason := f.Allow("GET", "/api/internal/debug"); ok || reason != metrics.ReasonExclude {
		t.Errorf("Exclude should win over include, got ok=%v reason=%q", ok, reason)
	}
}

// TestNewFilter_BadPattern tests pattern compilation errors.
func TestNewFilter_BadPattern(t *testing.T) {
	if _, err := NewFilter(config.FilterConfig{IncludePaths: []string{"["}}); err == nil {
		t.Error("Expected error for bad include pattern")
	}
	if _, err := NewFilter(config.FilterConfig{ExcludePaths: []string{"("}}); err == nil {
		t.Error("Expected error for bad exclude pattern")
	}
}
