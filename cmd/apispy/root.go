package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/damianovsky/playwright-api-spy/pkg/config"
	"github.com/damianovsky/playwright-api-spy/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "apispy",
	Short: "apispy - HTTP capture and reporting for e2e test suites",
	Long: `Apispy records the HTTP API calls made by end-to-end test suites and
aggregates them across parallel worker processes into a shared store.

The CLI operates on that store:
  - Generate JSON and HTML reports, once or continuously with --watch
  - Serve a live report viewer with a JSON API and Prometheus metrics
  - Prune aged entries or reset the store between runs`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		// Best effort; APISPY_* overrides may live in a local .env.
		_ = godotenv.Load()
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "apispy.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads, resolves, and validates the configuration, then
// installs the configured logger. A missing config file yields the
// defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if _, err := logging.Setup(cfg.Telemetry.Logging); err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}
	return cfg, nil
}
