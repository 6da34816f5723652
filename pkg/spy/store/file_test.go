package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/spy"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	st, err := NewFileStore(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}
	return st
}

// TestFileStore_AddAndList tests the JSONL round trip.
func TestFileStore_AddAndList(t *testing.T) {
	st := newTestFileStore(t)
	ctx := context.Background()
	now := time.Now()

	if err := st.AddEntries(ctx, []*spy.CapturedEntry{testEntry("/a", now)}); err != nil {
		t.Fatalf("AddEntries() failed: %v", err)
	}
	if err := st.AddEntries(ctx, []*spy.CapturedEntry{testEntry("/b", now), testEntry("/c", now)}); err != nil {
		t.Fatalf("AddEntries() failed: %v", err)
	}

	entries, err := st.AllEntries(ctx)
	if err != nil {
		t.Fatalf("AllEntries() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0].Request.Path != "/a" || entries[2].Request.Path != "/c" {
		t.Error("Entries out of append order")
	}
	if entries[0].Response == nil || entries[0].Response.Status != 200 {
		t.Errorf("Response lost in round trip: %+v", entries[0].Response)
	}
}

// TestFileStore_EmptyStore tests the no-data-yet state.
func TestFileStore_EmptyStore(t *testing.T) {
	st := newTestFileStore(t)

	entries, err := st.AllEntries(context.Background())
	if err != nil {
		t.Fatalf("AllEntries() on empty store failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

// TestFileStore_SkipsMalformedLines tests resilience against a torn
// concurrent write.
func TestFileStore_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	st.AddEntries(ctx, []*spy.CapturedEntry{testEntry("/good", time.Now())})

	// Simulate a torn write from another process.
	f, err := os.OpenFile(filepath.Join(dir, "entries.jsonl"), os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString(`{"request":{"id":"torn`)
	f.WriteString("\n")
	f.Close()

	st.AddEntries(ctx, []*spy.CapturedEntry{testEntry("/after", time.Now())})

	entries, err := st.AllEntries(ctx)
	if err != nil {
		t.Fatalf("AllEntries() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 parseable entries, got %d", len(entries))
	}
	if entries[0].Request.Path != "/good" || entries[1].Request.Path != "/after" {
		t.Errorf("Wrong entries survived: %+v", entries)
	}
}

// TestFileStore_ConfigRoundTrip tests config persistence and fallback.
func TestFileStore_ConfigRoundTrip(t *testing.T) {
	st := newTestFileStore(t)
	ctx := context.Background()

	if got := st.Config(ctx); got.Store.Backend != "file" {
		t.Errorf("Expected default fallback before SetConfig, got %+v", got.Store)
	}

	cfg := config.Default()
	cfg.Capture.MaxBodyLength = 555
	if err := st.SetConfig(ctx, cfg); err != nil {
		t.Fatalf("SetConfig() failed: %v", err)
	}
	if got := st.Config(ctx); got.Capture.MaxBodyLength != 555 {
		t.Errorf("Expected persisted config, got %d", got.Capture.MaxBodyLength)
	}
}

// TestFileStore_ResetAndClear tests the two deletion scopes.
func TestFileStore_ResetAndClear(t *testing.T) {
	st := newTestFileStore(t)
	ctx := context.Background()

	cfg := config.Default()
	cfg.Capture.MaxBodyLength = 42
	st.SetConfig(ctx, cfg)
	st.AddEntries(ctx, []*spy.CapturedEntry{testEntry("/x", time.Now())})

	if err := st.Reset(ctx); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	entries, _ := st.AllEntries(ctx)
	if len(entries) != 0 {
		t.Error("Reset must drop entries")
	}
	if st.Config(ctx).Capture.MaxBodyLength != 42 {
		t.Error("Reset must keep config")
	}

	if err := st.Clear(ctx); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if st.Config(ctx).Capture.MaxBodyLength == 42 {
		t.Error("Clear must drop config")
	}

	// Reset and Clear on an already-empty store are no-ops.
	if err := st.Reset(ctx); err != nil {
		t.Errorf("Reset() on empty store failed: %v", err)
	}
	if err := st.Clear(ctx); err != nil {
		t.Errorf("Clear() on empty store failed: %v", err)
	}
}

// TestFileStore_PruneBefore tests the rewrite-based pruning.
func TestFileStore_PruneBefore(t *testing.T) {
	st := newTestFileStore(t)
	ctx := context.Background()
	now := time.Now()

	st.AddEntries(ctx, []*spy.CapturedEntry{
		testEntry("/ancient", now.AddDate(0, 0, -60)),
		testEntry("/old", now.AddDate(0, 0, -40)),
		testEntry("/new", now),
	})

	removed, err := st.PruneBefore(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("PruneBefore() failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 removed, got %d", removed)
	}

	entries, _ := st.AllEntries(ctx)
	if len(entries) != 1 || entries[0].Request.Path != "/new" {
		t.Errorf("Wrong survivor: %+v", entries)
	}

	// Nothing to prune the second time.
	removed, err = st.PruneBefore(ctx, now.AddDate(0, 0, -30))
	if err != nil || removed != 0 {
		t.Errorf("Expected 0 removed, got %d err %v", removed, err)
	}
}

// TestOpen_BackendSelection tests the store factory.
func TestOpen_BackendSelection(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Backend = "memory"
	st, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open(memory) failed: %v", err)
	}
	if _, ok := st.(*MemoryStore); !ok {
		t.Errorf("Expected *MemoryStore, got %T", st)
	}

	cfg = config.Default()
	cfg.Store.Backend = "file"
	cfg.Store.Dir = t.TempDir()
	st, err = Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open(file) failed: %v", err)
	}
	if _, ok := st.(*FileStore); !ok {
		t.Errorf("Expected *FileStore, got %T", st)
	}

	cfg = config.Default()
	cfg.Store.Backend = "bogus"
	if _, err := Open(cfg, nil); err == nil {
		t.Error("Expected error for unknown backend")
	}
}
