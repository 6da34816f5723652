package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/damianovsky/playwright-api-spy/pkg/spy/store"
	"github.com/damianovsky/playwright-api-spy/pkg/spy/store/retention"
)

var cleanFlags struct {
	all bool
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Prune aged entries or reset the store",
	Long: `Prune entries older than the configured retention period.

With --all, drop every entry and the stored run configuration instead,
leaving an empty store for the next run.

Examples:
  # Remove entries past the retention window
  apispy clean

  # Reset the store between runs
  apispy clean --all`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().BoolVar(&cleanFlags.all, "all", false, "remove all entries and stored configuration")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg, nil)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	if cleanFlags.all {
		if err := st.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clearing store: %w", err)
		}
		fmt.Println("store cleared")
		return nil
	}

	removed, err := retention.NewPruner(st, cfg.Retention).Prune(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("pruned %d entries\n", removed)
	return nil
}
