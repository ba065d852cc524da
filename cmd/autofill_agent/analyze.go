package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jonathan/job-autofill/internal/agent"
	"github.com/jonathan/job-autofill/internal/analyze"
	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/jonathan/job-autofill/internal/store"
	"github.com/spf13/cobra"
)

var (
	analyzeURL      string
	analyzeHTMLFile string
	analyzeHeadless bool
	analyzeVerbose  bool
	analyzeWatch    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze and classify the forms on a page",
	Long:  `Detect every form on a page, classify its fields, and print per-form statistics and the form the agent would fill.`,
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "URL to open (mutually exclusive with --html)")
	analyzeCmd.Flags().StringVar(&analyzeHTMLFile, "html", "", "Path to a saved HTML page")
	analyzeCmd.Flags().BoolVar(&analyzeHeadless, "headless", true, "Run the browser without a window")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")
	analyzeCmd.Flags().BoolVar(&analyzeWatch, "watch", false, "Keep watching the page and re-print after DOM changes")
	rootCmd.AddCommand(analyzeCmd)
}

// watchForms prints the page's analyses, then re-analyzes and prints again
// after every structural mutation until the command is interrupted. Useful
// on application pages that render their forms in stages.
func watchForms(ctx context.Context, doc dom.Document, out io.Writer, verbose bool) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	w, err := analyze.NewWatcher(ctx, doc, analyze.Options{Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to analyze forms: %w", err)
	}

	printer := observability.NewPrinter(out)
	printAll := func(analyses []analyze.FormAnalysis) {
		for i := range analyses {
			printer.PrintFormAnalysis(&analyses[i])
		}
	}
	printAll(w.Latest())
	w.OnUpdate = printAll

	if err := w.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadFileConfig(config.Config{
		URL:      analyzeURL,
		HTMLFile: analyzeHTMLFile,
		Headless: analyzeHeadless,
		Verbose:  analyzeVerbose,
	})
	if err != nil {
		return err
	}

	doc, cleanup, err := attachDocument(ctx, cfg.URL, cfg.HTMLFile, cfg.Headless, cfg.Verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	if analyzeWatch {
		return watchForms(ctx, doc, os.Stdout, cfg.Verbose)
	}

	if cfg.Verbose {
		analyses, err := analyze.DetectForms(ctx, doc, analyze.Options{Verbose: true})
		if err != nil {
			return fmt.Errorf("failed to analyze forms: %w", err)
		}
		printer := observability.NewPrinter(os.Stdout)
		for i := range analyses {
			printer.PrintFormAnalysis(&analyses[i])
		}
		return nil
	}

	opts := agent.DefaultOptions()
	a := agent.New(store.NewMemoryStore(), opts)

	resp, err := a.AnalyzeForms(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to analyze forms: %w", err)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
