package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/spy"
	"github.com/damianovsky/playwright-api-spy/pkg/spy/store"
)

// Document is the top-level report payload shared by the JSON exporter
// and the viewer API.
type Document struct {
	// GeneratedAt is the report generation time in RFC 3339.
	GeneratedAt string `json:"generatedAt"`

	// Summary aggregates the entry set.
	Summary spy.Summary `json:"summary"`

	// Entries is the full redacted entry list in storage order.
	Entries []*spy.CapturedEntry `json:"entries"`
}

// BuildDocument assembles a Document from an entry list.
func BuildDocument(entries []*spy.CapturedEntry) *Document {
	return &Document{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Summary:     spy.Summarize(entries),
		Entries:     entries,
	}
}

// Generator reads the aggregation store and writes the configured
// report artifacts.
type Generator struct {
	store  store.Store
	cfg    config.ReportConfig
	logger *slog.Logger
}

// NewGenerator creates a report generator over the given store.
func NewGenerator(st store.Store, cfg config.ReportConfig, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		store:  st,
		cfg:    cfg,
		logger: logger.With("component", "report.generator"),
	}
}

// Generate loads all entries and writes the JSON and HTML reports into
// the output directory. It returns the paths of the files written.
func (g *Generator) Generate(ctx context.Context) ([]string, error) {
	entries, err := g.store.AllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	doc := BuildDocument(entries)

	if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory %s: %w", g.cfg.OutputDir, err)
	}

	var written []string

	jsonPath := filepath.Join(g.cfg.OutputDir, g.cfg.JSONFile)
	pretty := g.cfg.JSONPretty == nil || *g.cfg.JSONPretty
	if err := g.writeReport(jsonPath, doc, NewJSONExporter(pretty)); err != nil {
		return written, err
	}
	written = append(written, jsonPath)

	htmlPath := filepath.Join(g.cfg.OutputDir, g.cfg.HTMLFile)
	if err := g.writeReport(htmlPath, doc, NewHTMLExporter()); err != nil {
		return written, err
	}
	written = append(written, htmlPath)

	g.logger.Info("reports generated",
		"entries", doc.Summary.TotalRequests,
		"failed", doc.Summary.FailedRequests,
		"files", len(written))
	return written, nil
}

// Exporter renders a report document to a writer in one format.
type Exporter interface {
	// Format names the export format, e.g. "json" or "html".
	Format() string

	// Export writes the rendered document.
	Export(doc *Document, w io.Writer) error
}

func (g *Generator) writeReport(path string, doc *Document, exp Exporter) error {
	f, err := os.Create(path)
	if err != nil {
		return spy.NewExportError(exp.Format(), len(doc.Entries), err)
	}
	if err := exp.Export(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
