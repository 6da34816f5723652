package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/spy"
	"github.com/damianovsky/playwright-api-spy/pkg/spy/store"
)

// Pruner removes entries older than the configured retention period.
type Pruner struct {
	store  store.Store
	cfg    config.RetentionConfig
	logger *slog.Logger

	// now is overridable for tests.
	now func() time.Time
}

// NewPruner creates a pruner over the given store.
func NewPruner(st store.Store, cfg config.RetentionConfig) *Pruner {
	return &Pruner{
		store:  st,
		cfg:    cfg,
		logger: slog.Default().With("component", "spy.retention"),
		now:    time.Now,
	}
}

// Prune removes entries older than the retention period and returns the
// number removed. With retention disabled (Days == 0) it does nothing.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.cfg.Days <= 0 {
		return 0, nil
	}

	cutoff := p.now().AddDate(0, 0, -p.cfg.Days)

	removed, err := p.store.PruneBefore(ctx, cutoff)
	if err != nil {
		return 0, spy.NewRetentionError(p.cfg.Days, err)
	}

	if removed > 0 {
		p.logger.Info("pruned aged entries",
			"removed", removed,
			"retention_days", p.cfg.Days,
		)
	}

	return removed, nil
}
