package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/job-autofill/internal/agent"
	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/spf13/cobra"
)

var (
	checkURL      string
	checkHTMLFile string
	checkHeadless bool
	checkVerbose  bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Quickly check a page for fillable forms",
	Long:  `Check whether a page has a fillable application form and report field and classification counts without filling anything.`,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkURL, "url", "", "URL to open (mutually exclusive with --html)")
	checkCmd.Flags().StringVar(&checkHTMLFile, "html", "", "Path to a saved HTML page")
	checkCmd.Flags().BoolVar(&checkHeadless, "headless", true, "Run the browser without a window")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadFileConfig(config.Config{
		URL:      checkURL,
		HTMLFile: checkHTMLFile,
		Headless: checkHeadless,
		Verbose:  checkVerbose,
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

	resp, err := a.CheckForms(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to check forms: %w", err)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
