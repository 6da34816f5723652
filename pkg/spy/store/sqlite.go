package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/spy"
	"github.com/damianovsky/playwright-api-spy/pkg/telemetry/metrics"
)

// SQLiteStore implements Store using SQLite. The database serializes
// concurrent worker writes, closing the lost-update gap a bare
// read-modify-write file store would have.
type SQLiteStore struct {
	db      *sql.DB
	cfg     config.SQLiteConfig
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewSQLiteStore opens (creating if needed) the sqlite-backed store.
// It initializes the schema and enables WAL mode if configured.
func NewSQLiteStore(cfg config.SQLiteConfig, collector *metrics.Collector) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "spy.store.sqlite")

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, spy.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	s := &SQLiteStore{
		db:      db,
		cfg:     cfg,
		logger:  logger,
		metrics: collector,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("sqlite store initialized",
		"path", cfg.Path,
		"wal_mode", s.walEnabled(),
	)

	return s, nil
}

// walEnabled reports whether WAL mode is on; an unset field means on.
func (s *SQLiteStore) walEnabled() bool {
	return s.cfg.WALMode == nil || *s.cfg.WALMode
}

// initialize sets up the database schema and enables WAL mode.
func (s *SQLiteStore) initialize() error {
	if s.walEnabled() {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return spy.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.cfg.BusyTimeout.Milliseconds())); err != nil {
		return spy.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return spy.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return spy.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return spy.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return spy.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// SetConfig persists the resolved run configuration as a single row.
func (s *SQLiteStore) SetConfig(ctx context.Context, cfg *config.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return spy.NewStorageError("sqlite", "set_config", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO run_config (id, payload) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload;
	`, string(data))
	if err != nil {
		s.metrics.ObserveStoreFailure("set_config")
		return spy.NewStorageError("sqlite", "set_config", err)
	}
	return nil
}

// Config reads the persisted configuration, falling back to defaults on
// any failure.
func (s *SQLiteStore) Config(ctx context.Context) *config.Config {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM run_config WHERE id = 1;`).Scan(&payload)
	if err != nil {
		return config.Default()
	}

	var cfg config.Config
	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		s.logger.Warn("persisted configuration is malformed, using defaults", "error", err)
		return config.Default()
	}
	return &cfg
}

// AddEntries appends a batch of entries inside one transaction.
func (s *SQLiteStore) AddEntries(ctx context.Context, entries []*spy.CapturedEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.metrics.ObserveStoreFailure("add_entries")
		return spy.NewStorageError("sqlite", "add_entries", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (id, captured_at, method, path, failed, payload)
		VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		s.metrics.ObserveStoreFailure("add_entries")
		return spy.NewStorageError("sqlite", "add_entries", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		payload, err := json.Marshal(e)
		if err != nil {
			s.metrics.ObserveStoreFailure("add_entries")
			return spy.NewStorageError("sqlite", "add_entries", err)
		}
		if _, err := stmt.ExecContext(ctx,
			e.Request.ID, e.Request.Timestamp, e.Request.Method, e.Request.Path,
			e.Failed(), string(payload),
		); err != nil {
			s.metrics.ObserveStoreFailure("add_entries")
			return spy.NewStorageError("sqlite", "add_entries", err)
		}
	}

	if err := tx.Commit(); err != nil {
		s.metrics.ObserveStoreFailure("add_entries")
		return spy.NewStorageError("sqlite", "add_entries", err)
	}

	s.metrics.ObserveStored(len(entries))
	return nil
}

// AllEntries reads the complete collection in capture order. Rows whose
// payload no longer parses are skipped with a warning.
func (s *SQLiteStore) AllEntries(ctx context.Context) ([]*spy.CapturedEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM entries ORDER BY captured_at, rowid;`)
	if err != nil {
		s.logger.Warn("failed to read entries, treating as empty", "error", err)
		return nil, nil
	}
	defer rows.Close()

	var entries []*spy.CapturedEntry
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			s.logger.Warn("skipping unreadable entry row", "error", err)
			continue
		}

		var entry spy.CapturedEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			s.logger.Warn("skipping malformed entry payload", "error", err)
			continue
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		s.logger.Warn("entry scan ended early", "error", err)
	}

	return entries, nil
}

// Reset deletes all entries, preserving the persisted configuration.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries;`); err != nil {
		return spy.NewStorageError("sqlite", "reset", err)
	}
	return nil
}

// Clear deletes both entries and configuration.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if err := s.Reset(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM run_config;`); err != nil {
		return spy.NewStorageError("sqlite", "clear", err)
	}
	return nil
}

// PruneBefore removes entries captured before the cutoff.
func (s *SQLiteStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE captured_at < ?;`, cutoff.UnixMilli())
	if err != nil {
		return 0, spy.NewStorageError("sqlite", "prune", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, spy.NewStorageError("sqlite", "prune", err)
	}
	return removed, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
