package config

import "time"

// Default values for configuration fields.
const (
	// Capture defaults
	DefaultMaxBodyLength = 10000

	// Redact defaults
	DefaultRedactReplacement = "[REDACTED]"

	// Store defaults
	DefaultStoreBackend      = "file"
	DefaultStoreDir          = ".apispy"
	DefaultSQLitePath        = ".apispy/entries.db"
	DefaultSQLiteMaxOpen     = 10
	DefaultSQLiteMaxIdle     = 5
	DefaultSQLiteWALMode     = true
	DefaultSQLiteBusyTimeout = 5 * time.Second

	// Report defaults
	DefaultReportOutputDir   = "apispy-report"
	DefaultReportHTMLFile    = "report.html"
	DefaultReportJSONFile    = "report.json"
	DefaultReportJSONPretty  = true
	DefaultConsoleColor      = true
	DefaultConsoleVerbosity  = "compact"

	// Retention defaults
	DefaultRetentionDays     = 30
	DefaultRetentionSchedule = "0 3 * * *"

	// Telemetry defaults
	DefaultLoggingLevel      = "info"
	DefaultLoggingFormat     = "text"
	DefaultLoggingMaxSizeMB  = 10
	DefaultLoggingMaxBackups = 3
	DefaultMetricsEnabled    = true
	DefaultMetricsNamespace  = "apispy"
)

// DefaultFilterMethods is the default HTTP method allow-list.
var DefaultFilterMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD"}

// DefaultRedactHeaders is the default set of headers scrubbed from entries.
var DefaultRedactHeaders = []string{
	"authorization",
	"cookie",
	"set-cookie",
	"x-api-key",
	"proxy-authorization",
}

// DefaultRedactBodyFields is the default set of body field names scrubbed
// from entries.
var DefaultRedactBodyFields = []string{
	"password",
	"token",
	"secret",
	"apikey",
	"api_key",
	"authorization",
	"access_token",
	"refresh_token",
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Capture defaults
	if cfg.Capture.MaxBodyLength == 0 {
		cfg.Capture.MaxBodyLength = DefaultMaxBodyLength
	}

	// Filter defaults. A nil method list means "not configured"; an empty
	// but non-nil list is an explicit "admit everything".
	if cfg.Filter.Methods == nil {
		cfg.Filter.Methods = append([]string(nil), DefaultFilterMethods...)
	}

	// Redact defaults
	if cfg.Redact.Headers == nil {
		cfg.Redact.Headers = append([]string(nil), DefaultRedactHeaders...)
	}
	if cfg.Redact.BodyFields == nil {
		cfg.Redact.BodyFields = append([]string(nil), DefaultRedactBodyFields...)
	}
	if cfg.Redact.Replacement == "" {
		cfg.Redact.Replacement = DefaultRedactReplacement
	}

	// Store defaults
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultStoreBackend
	}
	if cfg.Store.Dir == "" {
		cfg.Store.Dir = DefaultStoreDir
	}
	if cfg.Store.SQLite.Path == "" {
		cfg.Store.SQLite.Path = DefaultSQLitePath
	}
	if cfg.Store.SQLite.MaxOpenConns == 0 {
		cfg.Store.SQLite.MaxOpenConns = DefaultSQLiteMaxOpen
	}
	if cfg.Store.SQLite.MaxIdleConns == 0 {
		cfg.Store.SQLite.MaxIdleConns = DefaultSQLiteMaxIdle
	}
	if cfg.Store.SQLite.WALMode == nil {
		cfg.Store.SQLite.WALMode = Bool(DefaultSQLiteWALMode)
	}
	if cfg.Store.SQLite.BusyTimeout == 0 {
		cfg.Store.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}

	// Report defaults
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = DefaultReportOutputDir
	}
	if cfg.Report.HTMLFile == "" {
		cfg.Report.HTMLFile = DefaultReportHTMLFile
	}
	if cfg.Report.JSONFile == "" {
		cfg.Report.JSONFile = DefaultReportJSONFile
	}
	if cfg.Report.JSONPretty == nil {
		cfg.Report.JSONPretty = Bool(DefaultReportJSONPretty)
	}
	if cfg.Report.Console.Color == nil {
		cfg.Report.Console.Color = Bool(DefaultConsoleColor)
	}
	if cfg.Report.Console.Verbosity == "" {
		cfg.Report.Console.Verbosity = DefaultConsoleVerbosity
	}

	// Retention defaults
	if cfg.Retention.Days == 0 {
		cfg.Retention.Days = DefaultRetentionDays
	}
	if cfg.Retention.Schedule == "" {
		cfg.Retention.Schedule = DefaultRetentionSchedule
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Logging.MaxSizeMB == 0 {
		cfg.Telemetry.Logging.MaxSizeMB = DefaultLoggingMaxSizeMB
	}
	if cfg.Telemetry.Logging.MaxBackups == 0 {
		cfg.Telemetry.Logging.MaxBackups = DefaultLoggingMaxBackups
	}
	if cfg.Telemetry.Metrics.Enabled == nil {
		cfg.Telemetry.Metrics.Enabled = Bool(DefaultMetricsEnabled)
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// Default returns a fully-populated configuration with every field at its
// default value.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
