package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the generated HTML report in a browser",
	Long: `Open the generated HTML report in the default browser.

Run "apispy report" first if no report has been generated yet.`,
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.Report.OutputDir, cfg.Report.HTMLFile)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no report at %s, run \"apispy report\" first", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	return openBrowser("file://" + abs)
}

func openBrowser(url string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", url)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	if err := c.Start(); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}
