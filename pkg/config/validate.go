package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"
)

// knownMethods is the set of HTTP methods the interception proxy routes.
var knownMethods = map[string]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"PATCH":   true,
	"DELETE":  true,
	"HEAD":    true,
	"OPTIONS": true,
}

// Validate checks a resolved configuration for errors: unknown store
// backends, uncompilable filter patterns, invalid cron schedules, and
// nonsensical limits. It returns the first error found.
func Validate(cfg *Config) error {
	if cfg.Capture.MaxBodyLength < 0 {
		return fmt.Errorf("capture.max_body_length must not be negative, got %d", cfg.Capture.MaxBodyLength)
	}

	for _, m := range cfg.Filter.Methods {
		if !knownMethods[strings.ToUpper(m)] {
			return fmt.Errorf("filter.methods contains unknown HTTP method %q", m)
		}
	}
	for _, p := range cfg.Filter.IncludePaths {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("filter.include_paths pattern %q: %w", p, err)
		}
	}
	for _, p := range cfg.Filter.ExcludePaths {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("filter.exclude_paths pattern %q: %w", p, err)
		}
	}

	switch cfg.Store.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("store.backend must be one of file, sqlite, memory; got %q", cfg.Store.Backend)
	}

	switch cfg.Report.Console.Verbosity {
	case "compact", "full":
	default:
		return fmt.Errorf("report.console.verbosity must be compact or full, got %q", cfg.Report.Console.Verbosity)
	}

	if cfg.Retention.Days < 0 {
		return fmt.Errorf("retention.days must not be negative, got %d", cfg.Retention.Days)
	}
	if cfg.Retention.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Retention.Schedule); err != nil {
			return fmt.Errorf("retention.schedule %q: %w", cfg.Retention.Schedule, err)
		}
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level must be debug, info, warn, or error; got %q", cfg.Telemetry.Logging.Level)
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format must be json or text, got %q", cfg.Telemetry.Logging.Format)
	}

	return nil
}
