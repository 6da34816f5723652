package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/damianovsky/playwright-api-spy/pkg/report/viewer"
	"github.com/damianovsky/playwright-api-spy/pkg/spy/store"
	"github.com/damianovsky/playwright-api-spy/pkg/spy/store/retention"
	"github.com/damianovsky/playwright-api-spy/pkg/telemetry/metrics"
)

var serveFlags struct {
	listen string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live report viewer",
	Long: `Serve the HTML report, a JSON API over the stored entries, and
Prometheus metrics.

While the server runs, the retention scheduler prunes aged entries on
the configured cron schedule.

Endpoints:
  GET /             HTML report
  GET /api/entries  all stored entries as JSON
  GET /api/summary  aggregate summary as JSON
  GET /metrics      Prometheus metrics (when enabled)
  GET /healthz      health probe`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listen, "listen", "l", "127.0.0.1:8799", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(cfg.Telemetry.Metrics)

	st, err := store.Open(cfg, collector)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Retention.Schedule != "" && cfg.Retention.Days > 0 {
		scheduler := retention.NewScheduler(retention.NewPruner(st, cfg.Retention))
		if err := scheduler.Start(ctx); err != nil {
			return fmt.Errorf("starting retention scheduler: %w", err)
		}
		defer scheduler.Stop()
	}

	srv := viewer.New(serveFlags.listen, viewer.Options{
		Store:   st,
		Metrics: collector,
		Logger:  slog.Default(),
	})
	return srv.Start(ctx)
}
