package report

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceInterval is how long the watcher waits for the store
// to go quiet before regenerating reports. Worker processes append in
// bursts, so a short quiet period collapses a burst into one rebuild.
const DefaultDebounceInterval = 500 * time.Millisecond

// Watcher regenerates reports whenever the aggregation store's files
// change on disk. It is used by the report command's --watch mode.
type Watcher struct {
	dir      string
	interval time.Duration
	logger   *slog.Logger
	onChange func() error

	debounce *debouncer
}

// NewWatcher creates a watcher over the store directory. onChange is
// called after each debounced change burst; a returned error is logged
// and watching continues.
func NewWatcher(dir string, interval time.Duration, logger *slog.Logger, onChange func() error) *Watcher {
	if interval <= 0 {
		interval = DefaultDebounceInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		dir:      dir,
		interval: interval,
		logger:   logger.With("component", "report.watcher"),
		onChange: onChange,
		debounce: newDebouncer(interval),
	}
}

// Watch blocks processing file events until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()
	defer w.debounce.stop()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}

	w.logger.Info("watching store for changes",
		"dir", w.dir,
		"debounce_ms", w.interval.Milliseconds())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !interestingEvent(event) {
				continue
			}
			w.logger.Debug("store change detected", "path", event.Name, "op", event.Op.String())
			w.debounce.trigger(func() {
				if err := w.onChange(); err != nil {
					w.logger.Error("report regeneration failed", "error", err)
				}
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

// debouncer collapses a burst of events into a single callback after a
// quiet period.
type debouncer struct {
	interval time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	callback func()
	stopped  bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.callback = callback
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		cb := d.callback
		stopped := d.stopped
		d.mu.Unlock()

		if cb != nil && !stopped {
			cb()
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}

// interestingEvent filters out chmod noise and editor temp files.
func interestingEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	switch filepath.Ext(base) {
	case ".jsonl", ".json", ".db", ".db-wal":
		return true
	}
	return false
}
