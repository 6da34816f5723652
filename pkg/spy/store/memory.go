package store

import (
	"context"
	"sync"
	"time"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/spy"
)

// MemoryStore implements Store with in-process state. It is intended for
// tests only: it provides no cross-process durability.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*spy.CapturedEntry
	cfg     *config.Config
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SetConfig stores the configuration.
func (s *MemoryStore) SetConfig(ctx context.Context, cfg *config.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	return nil
}

// Config returns the stored configuration or defaults.
func (s *MemoryStore) Config(ctx context.Context) *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg == nil {
		return config.Default()
	}
	return s.cfg
}

// AddEntries appends a batch of entries.
func (s *MemoryStore) AddEntries(ctx context.Context, entries []*spy.CapturedEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return nil
}

// AllEntries returns a snapshot of all entries.
func (s *MemoryStore) AllEntries(ctx context.Context) ([]*spy.CapturedEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*spy.CapturedEntry(nil), s.entries...), nil
}

// Reset drops all entries, keeping the configuration.
func (s *MemoryStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

// Clear drops entries and configuration.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.cfg = nil
	return nil
}

// PruneBefore removes entries captured before the cutoff.
func (s *MemoryStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoffMs := cutoff.UnixMilli()
	kept := s.entries[:0]
	var removed int64
	for _, e := range s.entries {
		if e.Request.Timestamp < cutoffMs {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return removed, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
