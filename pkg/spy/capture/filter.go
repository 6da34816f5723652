package capture

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/telemetry/metrics"
)

// Filter is the compiled inclusion/exclusion policy deciding whether a
// call is captured. It is immutable and safe for concurrent use.
type Filter struct {
	methods map[string]bool
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// NewFilter compiles a filter from the resolved configuration.
func NewFilter(cfg config.FilterConfig) (*Filter, error) {
	f := &Filter{
		methods: make(map[string]bool, len(cfg.Methods)),
	}

	for _, m := range cfg.Methods {
		f.methods[strings.ToUpper(m)] = true
	}

	for _, p := range cfg.IncludePaths {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", p, err)
		}
		f.include = append(f.include, re)
	}
	for _, p := range cfg.ExcludePaths {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		f.exclude = append(f.exclude, re)
	}

	return f, nil
}

// Allow evaluates all three rules for a request. It returns true when the
// request should be captured; otherwise false plus the rejection reason.
//
// The rules are a logical AND: an empty method list admits every method,
// a path matching any exclude pattern is always rejected regardless of
// include patterns, and a non-empty include list requires at least one
// match.
func (f *Filter) Allow(method, path string) (bool, string) {
	if len(f.methods) > 0 && !f.methods[strings.ToUpper(method)] {
		return false, metrics.ReasonMethod
	}

	for _, re := range f.exclude {
		if re.MatchString(path) {
			return false, metrics.ReasonExclude
		}
	}

	if len(f.include) > 0 {
		for _, re := range f.include {
			if re.MatchString(path) {
				return true, ""
			}
		}
		return false, metrics.ReasonInclude
	}

	return true, ""
}
