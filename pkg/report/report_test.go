package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/spy"
	"github.com/damianovsky/playwright-api-spy/pkg/spy/store"
)

func sampleEntries() []*spy.CapturedEntry {
	return []*spy.CapturedEntry{
		{
			Request: spy.CapturedRequest{
				ID: "1", Method: "GET", URL: "https://api.example.com/users",
				Path: "/users", Headers: map[string]string{},
				Timestamp: time.Now().UnixMilli(),
			},
			Response: &spy.CapturedResponse{
				Status: 200, StatusText: "OK",
				Headers: map[string]string{}, DurationMs: 12,
				Body: map[string]any{"users": []any{}},
			},
		},
		{
			Request: spy.CapturedRequest{
				ID: "2", Method: "POST", URL: "https://api.example.com/orders",
				Path: "/orders", Headers: map[string]string{},
				Timestamp: time.Now().UnixMilli(),
			},
			Error: &spy.ErrorDetail{Message: "connection refused"},
		},
	}
}

// TestBuildDocument tests summary assembly.
func TestBuildDocument(t *testing.T) {
	doc := BuildDocument(sampleEntries())

	if doc.GeneratedAt == "" {
		t.Error("Expected GeneratedAt set")
	}
	if doc.Summary.TotalRequests != 2 || doc.Summary.FailedRequests != 1 {
		t.Errorf("Unexpected summary: %+v", doc.Summary)
	}
	if len(doc.Entries) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(doc.Entries))
	}
}

// TestGenerator_Generate tests writing both artifacts from a store.
func TestGenerator_Generate(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	st.AddEntries(ctx, sampleEntries())

	cfg := config.Default().Report
	cfg.OutputDir = t.TempDir()

	gen := NewGenerator(st, cfg, nil)
	files, err := gen.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %v", files)
	}

	jsonData, err := os.ReadFile(filepath.Join(cfg.OutputDir, cfg.JSONFile))
	if err != nil {
		t.Fatalf("JSON report missing: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		t.Fatalf("JSON report not parseable: %v", err)
	}
	if doc.Summary.TotalRequests != 2 {
		t.Errorf("Unexpected summary in JSON report: %+v", doc.Summary)
	}

	htmlData, err := os.ReadFile(filepath.Join(cfg.OutputDir, cfg.HTMLFile))
	if err != nil {
		t.Fatalf("HTML report missing: %v", err)
	}
	if len(htmlData) == 0 {
		t.Error("HTML report empty")
	}
}

// TestGenerator_EmptyStore tests report generation with no entries.
func TestGenerator_EmptyStore(t *testing.T) {
	cfg := config.Default().Report
	cfg.OutputDir = t.TempDir()

	gen := NewGenerator(store.NewMemoryStore(), cfg, nil)
	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("Generate() on empty store failed: %v", err)
	}
}
