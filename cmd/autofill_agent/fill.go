package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/job-autofill/internal/agent"
	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/fill"
	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/jonathan/job-autofill/internal/types"
	"github.com/spf13/cobra"
)

var (
	fillURL         string
	fillHTMLFile    string
	fillHeadless    bool
	fillVerbose     bool
	fillDatabaseURL string
	fillDelayMs     int
	fillNoHighlight bool
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill the best form on a page from the saved profile",
	Long:  `Analyze a page, pick the form most worth filling, and fill it from the saved profile, creating additional work-experience entries as needed.`,
	RunE:  runFill,
}

func init() {
	fillCmd.Flags().StringVar(&fillURL, "url", "", "URL to open (mutually exclusive with --html)")
	fillCmd.Flags().StringVar(&fillHTMLFile, "html", "", "Path to a saved HTML page")
	fillCmd.Flags().BoolVar(&fillHeadless, "headless", true, "Run the browser without a window")
	fillCmd.Flags().BoolVarP(&fillVerbose, "verbose", "v", false, "Print detailed debug information")
	fillCmd.Flags().StringVar(&fillDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	fillCmd.Flags().IntVar(&fillDelayMs, "fill-delay-ms", 0, "Pause between field writes in milliseconds (default 100)")
	fillCmd.Flags().BoolVar(&fillNoHighlight, "no-highlight", false, "Skip coloring fields while filling")
	rootCmd.AddCommand(fillCmd)
}

func runFill(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadFileConfig(config.Config{
		URL:         fillURL,
		HTMLFile:    fillHTMLFile,
		DatabaseURL: fillDatabaseURL,
		Headless:    fillHeadless,
		Verbose:     fillVerbose,
		NoHighlight: fillNoHighlight,
		FillDelayMs: fillDelayMs,
	})
	if err != nil {
		return err
	}
	if cfg.FillDelayMs == 0 {
		cfg.FillDelayMs = 100
	}

	profiles, closeStore, err := openStore(ctx, cfg.DatabaseURL, cfg.ProfileDir)
	if err != nil {
		return err
	}
	defer closeStore()

	doc, cleanup, err := attachDocument(ctx, cfg.URL, cfg.HTMLFile, cfg.Headless, cfg.Verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := agent.DefaultOptions()
	opts.Verbose = cfg.Verbose
	opts.Fill = fill.Options{
		Highlight: !cfg.NoHighlight,
		FillDelay: time.Duration(cfg.FillDelayMs) * time.Millisecond,
		Verbose:   cfg.Verbose,
	}
	a := agent.New(profiles, opts)

	resp, err := a.FillForm(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to fill form: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintFillResult(types.FillResult{
		Success: resp.Success,
		Total:   resp.FieldsTotal,
		Filled:  resp.FieldsFilled,
		Skipped: resp.FieldsSkipped,
		Failed:  resp.FieldsFailed,
		Errors:  resp.Errors,
	})

	if !resp.Success {
		return fmt.Errorf("form partially filled: %s", resp.Summary)
	}
	return nil
}
