package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/spy"
	"github.com/damianovsky/playwright-api-spy/pkg/telemetry/metrics"
)

const (
	entriesFileName = "entries.jsonl"
	configFileName  = "config.json"
)

// FileStore persists entries as an append-only JSONL file plus a single
// JSON configuration record, both inside a run-scoped directory.
//
// Appends are issued as one O_APPEND write per batch, so concurrent
// workers interleave whole records instead of racing a read-modify-write
// of the full collection.
type FileStore struct {
	dir     string
	mu      sync.Mutex
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string, collector *metrics.Collector) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, spy.NewStorageError("file", "mkdir", err)
	}

	return &FileStore{
		dir:     dir,
		logger:  slog.Default().With("component", "spy.store.file"),
		metrics: collector,
	}, nil
}

func (s *FileStore) entriesPath() string { return filepath.Join(s.dir, entriesFileName) }
func (s *FileStore) configPath() string  { return filepath.Join(s.dir, configFileName) }

// SetConfig persists the resolved run configuration.
func (s *FileStore) SetConfig(ctx context.Context, cfg *config.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return spy.NewStorageError("file", "set_config", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.configPath(), data, 0o600); err != nil {
		s.metrics.ObserveStoreFailure("set_config")
		return spy.NewStorageError("file", "set_config", err)
	}
	return nil
}

// Config reads the persisted configuration, falling back to defaults on
// any read or decode failure.
func (s *FileStore) Config(ctx context.Context) *config.Config {
	s.mu.Lock()
	data, err := os.ReadFile(s.configPath())
	s.mu.Unlock()
	if err != nil {
		return config.Default()
	}

	var cfg config.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		s.logger.Warn("persisted configuration is malformed, using defaults", "error", err)
		return config.Default()
	}
	return &cfg
}

// AddEntries appends a batch of entries to the JSONL log.
func (s *FileStore) AddEntries(ctx context.Context, entries []*spy.CapturedEntry) error {
	if len(entries) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, e := range entries {
		line, err := json.Marshal(e)
		if err != nil {
			s.metrics.ObserveStoreFailure("add_entries")
			return spy.NewStorageError("file", "add_entries", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.entriesPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		s.metrics.ObserveStoreFailure("add_entries")
		return spy.NewStorageError("file", "add_entries", err)
	}
	defer f.Close()

	// One write per batch keeps whole records contiguous under
	// concurrent workers appending to the same log.
	if _, err := f.Write(buf.Bytes()); err != nil {
		s.metrics.ObserveStoreFailure("add_entries")
		return spy.NewStorageError("file", "add_entries", err)
	}

	s.metrics.ObserveStored(len(entries))
	return nil
}

// AllEntries reads the complete entries log. A missing file is the normal
// "no data yet" state; unparseable lines are skipped with a warning.
func (s *FileStore) AllEntries(ctx context.Context) ([]*spy.CapturedEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readEntries()
}

func (s *FileStore) readEntries() ([]*spy.CapturedEntry, error) {
	f, err := os.Open(s.entriesPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		s.logger.Warn("failed to read entries log, treating as empty", "error", err)
		return nil, nil
	}
	defer f.Close()

	var entries []*spy.CapturedEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var entry spy.CapturedEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			s.logger.Warn("skipping malformed entry line", "line", lineNum, "error", err)
			continue
		}
		entries = append(entries, &entry)
	}

	if err := scanner.Err(); err != nil {
		s.logger.Warn("entries log truncated mid-read", "error", err)
	}

	return entries, nil
}

// Reset deletes the entries log only, preserving configuration, so a
// previous run's leftovers never leak into a new run.
func (s *FileStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeIfExists(s.entriesPath(), "reset")
}

// Clear deletes both the entries log and the configuration record.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := removeIfExists(s.entriesPath(), "clear"); err != nil {
		return err
	}
	return removeIfExists(s.configPath(), "clear")
}

// PruneBefore rewrites the entries log keeping only entries captured at
// or after the cutoff.
func (s *FileStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readEntries()
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	cutoffMs := cutoff.UnixMilli()
	kept := entries[:0]
	var removed int64
	for _, e := range entries {
		if e.Request.Timestamp < cutoffMs {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	for _, e := range kept {
		line, err := json.Marshal(e)
		if err != nil {
			return 0, spy.NewStorageError("file", "prune", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	// Write-then-rename so a crashed prune never leaves a half-written log.
	tmp := s.entriesPath() + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return 0, spy.NewStorageError("file", "prune", err)
	}
	if err := os.Rename(tmp, s.entriesPath()); err != nil {
		return 0, spy.NewStorageError("file", "prune", err)
	}

	return removed, nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }

func removeIfExists(path, operation string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return spy.NewStorageError("file", operation, err)
	}
	return nil
}
