package report

import (
	"encoding/json"
	"io"

	"github.com/damianovsky/playwright-api-spy/pkg/spy"
)

// JSONExporter renders the report document as a single JSON object with
// the summary first and the entry list after it.
type JSONExporter struct {
	// Pretty enables pretty-printing with indentation.
	Pretty bool
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{Pretty: pretty}
}

// Format returns "json".
func (e *JSONExporter) Format() string { return "json" }

// Export writes the document to w.
func (e *JSONExporter) Export(doc *Document, w io.Writer) error {
	var data []byte
	var err error

	if e.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return spy.NewExportError("json", len(doc.Entries), err)
	}

	if _, err := w.Write(data); err != nil {
		return spy.NewExportError("json", len(doc.Entries), err)
	}
	return nil
}
