package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/damianovsky/playwright-api-spy/pkg/report"
	"github.com/damianovsky/playwright-api-spy/pkg/spy/store"
)

var reportFlags struct {
	outputDir string
	watch     bool
	debounce  time.Duration
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate JSON and HTML reports from the store",
	Long: `Generate the JSON and HTML report artifacts from all entries in the
aggregation store.

With --watch, the command keeps running and regenerates the reports
whenever worker processes append new entries.

Examples:
  # Generate once
  apispy report

  # Write reports somewhere else
  apispy report --output ./artifacts

  # Keep reports fresh while a suite is running
  apispy report --watch`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportFlags.outputDir, "output", "o", "", "override the report output directory")
	reportCmd.Flags().BoolVarP(&reportFlags.watch, "watch", "w", false, "regenerate reports when the store changes")
	reportCmd.Flags().DurationVar(&reportFlags.debounce, "debounce", report.DefaultDebounceInterval, "quiet period before regenerating in watch mode")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if reportFlags.outputDir != "" {
		cfg.Report.OutputDir = reportFlags.outputDir
	}

	st, err := store.Open(cfg, nil)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	gen := report.NewGenerator(st, cfg.Report, slog.Default())

	generate := func() error {
		files, err := gen.Generate(cmd.Context())
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Printf("wrote %s\n", f)
		}
		return nil
	}

	if err := generate(); err != nil {
		return err
	}
	if !reportFlags.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchDir := cfg.Store.Dir
	if cfg.Store.Backend == "sqlite" {
		watchDir = filepath.Dir(cfg.Store.SQLite.Path)
	}
	watcher := report.NewWatcher(watchDir, reportFlags.debounce, slog.Default(), generate)
	return watcher.Watch(ctx)
}
