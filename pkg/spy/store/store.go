package store

import (
	"context"
	"fmt"
	"time"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/spy"
	"github.com/damianovsky/playwright-api-spy/pkg/telemetry/metrics"
)

// Store is the durable accumulator shared by all worker processes and the
// report-generation phase. Implementations must be safe for concurrent
// use within a process; cross-process coordination is each backend's
// concern.
type Store interface {
	// SetConfig persists the fully-resolved run configuration so any
	// process can later retrieve the exact settings used.
	SetConfig(ctx context.Context, cfg *config.Config) error

	// Config reads the persisted configuration. A missing or malformed
	// record silently falls back to the default configuration; Config
	// never fails.
	Config(ctx context.Context) *config.Config

	// AddEntries appends a batch of already-redacted entries.
	AddEntries(ctx context.Context, entries []*spy.CapturedEntry) error

	// AllEntries reads the complete collection. Absence yields an empty
	// result; malformed content yields an empty result with a logged
	// warning, never an error the caller must handle.
	AllEntries(ctx context.Context) ([]*spy.CapturedEntry, error)

	// Reset deletes only the entries, preserving any persisted
	// configuration. Used before a run starts.
	Reset(ctx context.Context) error

	// Clear deletes both entries and configuration. Used after report
	// generation completes.
	Clear(ctx context.Context) error

	// PruneBefore removes entries captured before the cutoff and returns
	// the number removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}

// Open creates the store backend selected by the resolved configuration.
// The metrics collector may be nil.
func Open(cfg *config.Config, collector *metrics.Collector) (Store, error) {
	switch cfg.Store.Backend {
	case "file":
		return NewFileStore(cfg.Store.Dir, collector)
	case "sqlite":
		return NewSQLiteStore(cfg.Store.SQLite, collector)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
