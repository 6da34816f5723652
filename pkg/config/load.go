package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file, applies defaults, applies
// APISPY_* environment variable overrides, and validates the result.
//
// A missing file is not an error: the defaults (plus environment
// overrides) are used, matching the common case of a test suite that
// never writes a config file.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	return Resolve(&cfg)
}

// Resolve turns a partial configuration into a fully-populated, validated
// one. The input is modified in place and returned. Resolution happens
// exactly once per run; the result is treated as immutable afterwards.
func Resolve(cfg *Config) (*Config, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	ApplyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Variables use the format APISPY_SECTION_FIELD and always
// take precedence over file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("APISPY_CAPTURE_MAX_BODY_LENGTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Capture.MaxBodyLength = i
		}
	}

	if val := os.Getenv("APISPY_FILTER_METHODS"); val != "" {
		cfg.Filter.Methods = splitList(val)
	}
	if val := os.Getenv("APISPY_FILTER_INCLUDE_PATHS"); val != "" {
		cfg.Filter.IncludePaths = splitList(val)
	}
	if val := os.Getenv("APISPY_FILTER_EXCLUDE_PATHS"); val != "" {
		cfg.Filter.ExcludePaths = splitList(val)
	}

	if val := os.Getenv("APISPY_REDACT_HEADERS"); val != "" {
		cfg.Redact.Headers = splitList(val)
	}
	if val := os.Getenv("APISPY_REDACT_BODY_FIELDS"); val != "" {
		cfg.Redact.BodyFields = splitList(val)
	}
	if val := os.Getenv("APISPY_REDACT_REPLACEMENT"); val != "" {
		cfg.Redact.Replacement = val
	}

	if val := os.Getenv("APISPY_STORE_BACKEND"); val != "" {
		cfg.Store.Backend = val
	}
	if val := os.Getenv("APISPY_STORE_DIR"); val != "" {
		cfg.Store.Dir = val
	}
	if val := os.Getenv("APISPY_STORE_SQLITE_PATH"); val != "" {
		cfg.Store.SQLite.Path = val
	}

	if val := os.Getenv("APISPY_REPORT_OUTPUT_DIR"); val != "" {
		cfg.Report.OutputDir = val
	}
	if val := os.Getenv("APISPY_REPORT_CONSOLE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Report.Console.Enabled = b
		}
	}

	if val := os.Getenv("APISPY_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retention.Days = i
		}
	}

	if val := os.Getenv("APISPY_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("APISPY_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("APISPY_LOG_FILE"); val != "" {
		cfg.Telemetry.Logging.File = val
	}
}

// splitList splits a comma-separated environment value into a list,
// trimming whitespace and dropping empty elements.
func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
