package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// TestJSONExporter_Export tests the document structure and pretty
// printing.
func TestJSONExporter_Export(t *testing.T) {
	doc := BuildDocument(sampleEntries())

	var compact bytes.Buffer
	if err := NewJSONExporter(false).Export(doc, &compact); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(compact.Bytes(), &parsed); err != nil {
		t.Fatalf("Output not valid JSON: %v", err)
	}
	for _, key := range []string{"generatedAt", "summary", "entries"} {
		if _, ok := parsed[key]; !ok {
			t.Errorf("Missing top-level key %q", key)
		}
	}
	if strings.Contains(compact.String(), "\n  ") {
		t.Error("Compact output should not be indented")
	}

	var pretty bytes.Buffer
	if err := NewJSONExporter(true).Export(doc, &pretty); err != nil {
		t.Fatalf("Pretty Export() failed: %v", err)
	}
	if !strings.Contains(pretty.String(), "\n  ") {
		t.Error("Pretty output should be indented")
	}
}

// TestJSONExporter_EmptyEntries tests an empty document.
func TestJSONExporter_EmptyEntries(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONExporter(false).Export(BuildDocument(nil), &buf); err != nil {
		t.Fatalf("Export() failed: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Output not valid JSON: %v", err)
	}
	if doc.Summary.TotalRequests != 0 {
		t.Errorf("Unexpected summary: %+v", doc.Summary)
	}
}
