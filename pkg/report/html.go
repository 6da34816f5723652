package report

import (
	"encoding/json"
	"html/template"
	"io"

	"github.com/damianovsky/playwright-api-spy/pkg/spy"
)

// HTMLExporter renders the report document as a single self-contained
// HTML page with no external assets.
type HTMLExporter struct {
	tmpl *template.Template
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter() *HTMLExporter {
	tmpl := template.Must(template.New("report").Funcs(template.FuncMap{
		"statusColor": statusColor,
		"formatPath":  formatPath,
		"prettyBody":  prettyBody,
	}).Parse(htmlTemplate))
	return &HTMLExporter{tmpl: tmpl}
}

// Format returns "html".
func (e *HTMLExporter) Format() string { return "html" }

// Export writes the rendered page to w.
func (e *HTMLExporter) Export(doc *Document, w io.Writer) error {
	if err := e.tmpl.Execute(w, doc); err != nil {
		return spy.NewExportError("html", len(doc.Entries), err)
	}
	return nil
}

func statusColor(entry *spy.CapturedEntry) string {
	if entry.Error != nil {
		return "error"
	}
	switch {
	case entry.Response.Status < 400:
		return "success"
	case entry.Response.Status < 500:
		return "warning"
	default:
		return "error"
	}
}

func formatPath(path string) string {
	if len(path) > 80 {
		return path[:77] + "..."
	}
	return path
}

// prettyBody renders a captured body for display. Strings show verbatim;
// structured values re-serialize as indented JSON.
func prettyBody(body any) string {
	switch b := body.(type) {
	case nil:
		return ""
	case string:
		return b
	default:
		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return ""
		}
		return string(data)
	}
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>API Spy Report</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif;
            background: #f5f7fa;
            color: #2d3748;
            padding: 2rem;
        }
        .container { max-width: 1400px; margin: 0 auto; }

        .header {
            background: white;
            padding: 2rem;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            margin-bottom: 2rem;
        }
        h1 { color: #1a202c; font-size: 2rem; margin-bottom: 0.5rem; }
        .meta { color: #718096; font-size: 0.9rem; }

        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(180px, 1fr));
            gap: 1rem;
            margin-bottom: 2rem;
        }
        .stat-card {
            background: white;
            padding: 1.5rem;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .stat-value { font-size: 2rem; font-weight: bold; margin-bottom: 0.25rem; }
        .stat-label { color: #718096; font-size: 0.875rem; }
        .stat-value.success { color: #48bb78; }
        .stat-value.error { color: #f56565; }

        .section {
            background: white;
            padding: 1.5rem;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            margin-bottom: 2rem;
            overflow-x: auto;
        }
        .section-title {
            font-size: 1.25rem;
            font-weight: 600;
            margin-bottom: 1rem;
            color: #2d3748;
        }

        table { width: 100%; border-collapse: collapse; }
        th, td {
            padding: 0.75rem 1rem;
            text-align: left;
            border-bottom: 1px solid #e2e8f0;
            vertical-align: top;
        }
        th {
            background: #f7fafc;
            font-weight: 600;
            color: #4a5568;
            font-size: 0.875rem;
            text-transform: uppercase;
            letter-spacing: 0.05em;
            white-space: nowrap;
        }
        tr:hover { background: #f7fafc; }

        .method-badge {
            display: inline-block;
            padding: 0.25rem 0.5rem;
            border-radius: 4px;
            font-size: 0.75rem;
            font-weight: 600;
            font-family: 'Menlo', 'Monaco', 'Courier New', monospace;
            background: #ebf4ff;
            color: #2b6cb0;
        }
        .status-badge {
            display: inline-block;
            padding: 0.25rem 0.75rem;
            border-radius: 9999px;
            font-size: 0.875rem;
            font-weight: 500;
        }
        .status-success { background: #c6f6d5; color: #22543d; }
        .status-warning { background: #feebc8; color: #7c2d12; }
        .status-error { background: #fed7d7; color: #742a2a; }

        .code {
            background: #f7fafc;
            padding: 0.25rem 0.5rem;
            border-radius: 3px;
            font-family: 'Menlo', 'Monaco', 'Courier New', monospace;
            font-size: 0.85rem;
            word-break: break-word;
            display: inline-block;
        }
        .test-info { color: #718096; font-size: 0.8rem; }
        .context-note { color: #805ad5; font-size: 0.8rem; font-style: italic; }
        .error-message { color: #c53030; font-size: 0.85rem; }

        details > summary { cursor: pointer; color: #4299e1; font-size: 0.8rem; }
        .body-view {
            font-size: 0.8rem;
            font-family: 'Menlo', 'Monaco', 'Courier New', monospace;
            white-space: pre-wrap;
            word-break: break-all;
            max-height: 240px;
            overflow-y: auto;
            background: #f7fafc;
            padding: 0.5rem;
            border-radius: 4px;
            margin-top: 0.25rem;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>API Spy Report</h1>
            <div class="meta">Generated: {{.GeneratedAt}}</div>
        </div>

        <div class="stats-grid">
            <div class="stat-card">
                <div class="stat-value">{{.Summary.TotalRequests}}</div>
                <div class="stat-label">Total Requests</div>
            </div>
            <div class="stat-card">
                <div class="stat-value success">{{.Summary.SuccessfulRequests}}</div>
                <div class="stat-label">Succeeded</div>
            </div>
            <div class="stat-card">
                <div class="stat-value error">{{.Summary.FailedRequests}}</div>
                <div class="stat-label">Failed</div>
            </div>
            <div class="stat-card">
                <div class="stat-value">{{.Summary.AvgDuration}}ms</div>
                <div class="stat-label">Avg Duration</div>
            </div>
            <div class="stat-card">
                <div class="stat-value">{{.Summary.MinDuration}}ms</div>
                <div class="stat-label">Min Duration</div>
            </div>
            <div class="stat-card">
                <div class="stat-value">{{.Summary.MaxDuration}}ms</div>
                <div class="stat-label">Max Duration</div>
            </div>
        </div>

        <div class="section">
            <div class="section-title">Captured Requests</div>
            <table>
                <thead>
                    <tr>
                        <th>Method</th>
                        <th>Path</th>
                        <th>Status</th>
                        <th>Duration</th>
                        <th>Test</th>
                        <th>Details</th>
                    </tr>
                </thead>
                <tbody>
                    {{range .Entries}}
                    <tr>
                        <td><span class="method-badge">{{.Request.Method}}</span></td>
                        <td>
                            <span class="code">{{formatPath .Request.Path}}</span>
                            {{with .Request.Metadata}}{{with index . "context"}}<div class="context-note">{{.}}</div>{{end}}{{end}}
                        </td>
                        <td>
                            {{if .Error}}
                            <span class="status-badge status-error">ERROR</span>
                            <div class="error-message">{{.Error.Message}}</div>
                            {{else}}
                            <span class="status-badge status-{{statusColor .}}">{{.Response.Status}} {{.Response.StatusText}}</span>
                            {{end}}
                        </td>
                        <td>{{if .Response}}{{.Response.DurationMs}}ms{{else}}&mdash;{{end}}</td>
                        <td>{{with .Request.Test}}<div class="test-info">{{.Title}}</div>{{end}}</td>
                        <td>
                            {{if .Request.Body}}
                            <details><summary>Request body</summary><div class="body-view">{{prettyBody .Request.Body}}</div></details>
                            {{end}}
                            {{if .Response}}{{if .Response.Body}}
                            <details><summary>Response body</summary><div class="body-view">{{prettyBody .Response.Body}}</div></details>
                            {{end}}{{end}}
                        </td>
                    </tr>
                    {{end}}
                </tbody>
            </table>
        </div>
    </div>
</body>
</html>
`
