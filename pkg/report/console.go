package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/spy"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
	ansiCyan   = "\x1b[36m"
	ansiDim    = "\x1b[2m"
)

// VerbosityCompact prints one line per entry; VerbosityFull adds
// headers and bodies.
const (
	VerbosityCompact = "compact"
	VerbosityFull    = "full"
)

// Console streams entries to a writer as they are recorded. It
// implements the capture layer's Streamer interface; entries arrive
// already redacted.
type Console struct {
	mu  sync.Mutex
	w   io.Writer
	cfg config.ConsoleConfig
}

// NewConsole creates a console streamer writing to w. A nil w defaults
// to stderr so the stream never interleaves with test stdout.
func NewConsole(w io.Writer, cfg config.ConsoleConfig) *Console {
	if w == nil {
		w = os.Stderr
	}
	return &Console{w: w, cfg: cfg}
}

// StreamEntry prints one entry according to the configured verbosity.
func (c *Console) StreamEntry(entry *spy.CapturedEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.w, c.formatLine(entry))
	if c.cfg.Verbosity == VerbosityFull {
		c.printDetail(entry)
	}
}

func (c *Console) formatLine(entry *spy.CapturedEntry) string {
	method := c.color(ansiCyan, entry.Request.Method)

	if entry.Error != nil {
		return fmt.Sprintf("%s %s %s %s",
			method,
			entry.Request.Path,
			c.color(ansiRed, "ERROR"),
			entry.Error.Message)
	}

	status := fmt.Sprintf("%d %s", entry.Response.Status, entry.Response.StatusText)
	switch {
	case entry.Response.Status >= 500:
		status = c.color(ansiRed, status)
	case entry.Response.Status >= 400:
		status = c.color(ansiYellow, status)
	default:
		status = c.color(ansiGreen, status)
	}

	return fmt.Sprintf("%s %s %s %s",
		method,
		entry.Request.Path,
		status,
		c.color(ansiDim, fmt.Sprintf("(%dms)", entry.Response.DurationMs)))
}

func (c *Console) printDetail(entry *spy.CapturedEntry) {
	for name, value := range entry.Request.Headers {
		fmt.Fprintf(c.w, "  > %s: %s\n", name, value)
	}
	if entry.Request.Body != nil {
		fmt.Fprintf(c.w, "  > body: %s\n", compactBody(entry.Request.Body))
	}
	if entry.Response != nil {
		for name, value := range entry.Response.Headers {
			fmt.Fprintf(c.w, "  < %s: %s\n", name, value)
		}
		if entry.Response.Body != nil {
			fmt.Fprintf(c.w, "  < body: %s\n", compactBody(entry.Response.Body))
		}
	}
}

func (c *Console) color(code, s string) string {
	if c.cfg.Color != nil && !*c.cfg.Color {
		return s
	}
	return code + s + ansiReset
}

func compactBody(body any) string {
	if s, ok := body.(string); ok {
		return s
	}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprintf("%v", body)
	}
	return string(data)
}
