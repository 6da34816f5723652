package capture

import (
	"context"

	"github.com/damianovsky/playwright-api-spy/pkg/spy/store"
)

// Flush hands the instance's redacted entries to the aggregation store
// at test teardown. The local entry list is left intact so the test
// can keep querying it; it is simply no longer part of the aggregated
// report.
//
// Flush is best-effort: a store failure is logged and returned, but
// callers wiring it into teardown should not fail the test over it.
func (c *Capture) Flush(ctx context.Context, st store.Store) error {
	entries := c.EntriesForReport()
	if len(entries) == 0 {
		return nil
	}

	if err := st.AddEntries(ctx, entries); err != nil {
		c.logger.Warn("failed to hand entries to aggregation store", "count", len(entries), "error", err)
		return err
	}

	c.logger.Debug("entries handed to aggregation store", "count", len(entries))
	return nil
}
