package main

import (
	"context"
	"fmt"

	"github.com/jonathan/job-autofill/internal/agent"
	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/spf13/cobra"
)

var (
	highlightURL      string
	highlightHTMLFile string
	highlightHeadless bool
	highlightVerbose  bool
)

var highlightCmd = &cobra.Command{
	Use:   "highlight",
	Short: "Color a page's fields by classification confidence",
	Long:  `Classify every field on a page and color it by confidence band: green for high, orange for medium, yellow for low, red for unclassified.`,
	RunE:  runHighlight,
}

func init() {
	highlightCmd.Flags().StringVar(&highlightURL, "url", "", "URL to open (mutually exclusive with --html)")
	highlightCmd.Flags().StringVar(&highlightHTMLFile, "html", "", "Path to a saved HTML page")
	highlightCmd.Flags().BoolVar(&highlightHeadless, "headless", false, "Run the browser without a window")
	highlightCmd.Flags().BoolVarP(&highlightVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadFileConfig(config.Config{
		URL:      highlightURL,
		HTMLFile: highlightHTMLFile,
		Headless: highlightHeadless,
		Verbose:  highlightVerbose,
	})
	if err != nil {
		return err
	}

	doc, cleanup, err := attachDocument(ctx, cfg.URL, cfg.HTMLFile, cfg.Headless, cfg.Verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := agent.DefaultOptions()
	opts.Verbose = cfg.Verbose
	a := agent.New(store.NewMemoryStore(), opts)

	resp, err := a.HighlightFields(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to highlight fields: %w", err)
	}

	fmt.Printf("Highlighted %d field(s)\n", resp.Highlighted)
	return nil
}
