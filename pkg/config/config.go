package config

import "time"

// Bool returns a pointer to v, for setting the optional boolean fields.
func Bool(v bool) *bool {
	return &v
}

// Config is the root configuration structure for the API spy. It covers the
// capture pipeline, filtering and redaction policy, the cross-process
// aggregation store, report generation, retention, and telemetry.
type Config struct {
	// Capture contains capture-pipeline settings such as body size limits.
	Capture CaptureConfig `yaml:"capture"`

	// Filter decides which intercepted calls are captured at all.
	Filter FilterConfig `yaml:"filter"`

	// Redact lists the sensitive headers and body fields scrubbed from
	// entries before display or export.
	Redact RedactConfig `yaml:"redact"`

	// Store configures the durable aggregation store shared by all test
	// worker processes.
	Store StoreConfig `yaml:"store"`

	// Report configures report generation and the live console stream.
	Report ReportConfig `yaml:"report"`

	// Retention configures pruning of old entries from the store.
	Retention RetentionConfig `yaml:"retention"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CaptureConfig contains settings for the capture pipeline itself.
type CaptureConfig struct {
	// MaxBodyLength is the maximum serialized length of a captured body.
	// Longer bodies are truncated with a marker noting the omitted count.
	// Default: 10000
	MaxBodyLength int `yaml:"max_body_length"`
}

// FilterConfig is the inclusion/exclusion policy for intercepted calls.
// All three rules are independent and all must pass for a call to be
// captured; include patterns can never override an exclude rejection.
type FilterConfig struct {
	// Methods is the HTTP method allow-list. An empty list admits every
	// method.
	// Default: GET, POST, PUT, PATCH, DELETE, HEAD
	Methods []string `yaml:"methods"`

	// IncludePaths is a list of regular expressions; when non-empty, a
	// request path must match at least one to be captured.
	// Default: empty (include everything not excluded)
	IncludePaths []string `yaml:"include_paths"`

	// ExcludePaths is a list of regular expressions; a request path
	// matching any of them is never captured.
	// Default: empty
	ExcludePaths []string `yaml:"exclude_paths"`
}

// RedactConfig lists what the redaction engine scrubs.
type RedactConfig struct {
	// Headers are header names matched case-insensitively by equality.
	// Default: authorization, cookie, set-cookie, x-api-key,
	// proxy-authorization
	Headers []string `yaml:"headers"`

	// BodyFields are field names matched case-insensitively by substring
	// against object keys anywhere in the body. Only string values under
	// matching keys are replaced.
	// Default: password, token, secret, apikey, api_key, authorization,
	// access_token, refresh_token
	BodyFields []string `yaml:"body_fields"`

	// Replacement is the text substituted for redacted values.
	// Default: "[REDACTED]"
	Replacement string `yaml:"replacement"`
}

// StoreConfig configures the aggregation store backend.
type StoreConfig struct {
	// Backend selects the store implementation.
	// Options: "file" (append-only JSONL), "sqlite", "memory" (tests only).
	// Default: "file"
	Backend string `yaml:"backend"`

	// Dir is the run-scoped directory holding the file backend's
	// entries.jsonl and config.json artifacts.
	// Default: ".apispy"
	Dir string `yaml:"dir"`

	// SQLite configures the sqlite backend. Only used when Backend is
	// "sqlite".
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig contains settings for the sqlite store backend.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: ".apispy/entries.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging for concurrent workers.
	// A pointer so an explicit false in the file survives defaulting.
	// Default: true
	WALMode *bool `yaml:"wal_mode"`

	// BusyTimeout is how long to wait on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// ReportConfig configures report artifacts and the console stream.
type ReportConfig struct {
	// OutputDir is where generated reports are written.
	// Default: "apispy-report"
	OutputDir string `yaml:"output_dir"`

	// HTMLFile is the HTML report file name inside OutputDir.
	// Default: "report.html"
	HTMLFile string `yaml:"html_file"`

	// JSONFile is the JSON report file name inside OutputDir.
	// Default: "report.json"
	JSONFile string `yaml:"json_file"`

	// JSONPretty enables indented JSON output.
	// A pointer so an explicit false in the file survives defaulting.
	// Default: true
	JSONPretty *bool `yaml:"json_pretty"`

	// Console configures the live per-entry console stream.
	Console ConsoleConfig `yaml:"console"`
}

// ConsoleConfig configures the live console stream.
type ConsoleConfig struct {
	// Enabled turns the live stream on.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Color enables ANSI colors.
	// A pointer so an explicit false in the file survives defaulting.
	// Default: true
	Color *bool `yaml:"color"`

	// Verbosity selects the level of per-entry detail.
	// Options: "compact" (one line per entry), "full" (headers and bodies).
	// Default: "compact"
	Verbosity string `yaml:"verbosity"`
}

// RetentionConfig configures pruning of aged entries from the store.
type RetentionConfig struct {
	// Days is the entry age after which pruning removes entries.
	// 0 disables age-based pruning.
	// Default: 30
	Days int `yaml:"days"`

	// Schedule is a cron expression for scheduled pruning when the viewer
	// server is running. Empty disables the scheduler.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains logging and metrics configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "text"
	Format string `yaml:"format"`

	// File, when set, writes logs to a rotating file instead of stderr.
	// Default: "" (stderr)
	File string `yaml:"file"`

	// MaxSizeMB is the rotating file size limit in megabytes.
	// Default: 10
	MaxSizeMB int `yaml:"max_size_mb"`

	// MaxBackups is the number of rotated files kept.
	// Default: 3
	MaxBackups int `yaml:"max_backups"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled controls whether capture metrics are collected.
	// A pointer so an explicit false in the file survives defaulting.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	// Default: "apispy"
	Namespace string `yaml:"namespace"`
}
