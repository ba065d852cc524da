package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/store"
)

// loadFileConfig overlays the --config file, when one was given, under the
// command's flag values: explicit flags win, the file covers the rest.
func loadFileConfig(flags config.Config) (config.Config, error) {
	if configPath == "" {
		return flags, nil
	}
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return flags, err
	}
	merged := flags.MergeWithDefaults(*fileCfg)
	if err := merged.Validate(); err != nil {
		return merged, err
	}
	return merged, nil
}

// openStore picks the profile backend: Postgres when a database URL is
// configured, otherwise JSON files under the profile directory.
func openStore(ctx context.Context, databaseURL, profileDir string) (store.ProfileStore, func(), error) {
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL != "" {
		pg, err := store.Connect(ctx, databaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return pg, pg.Close, nil
	}

	if profileDir == "" {
		profileDir = config.DefaultProfileDir()
	}
	fs, err := store.NewFileStore(profileDir)
	if err != nil {
		return nil, nil, err
	}
	return fs, func() {}, nil
}

// attachDocument opens the page named by exactly one of url or htmlFile.
func attachDocument(ctx context.Context, url, htmlFile string, headless, verbose bool) (dom.Document, func(), error) {
	if url != "" && htmlFile != "" {
		return nil, nil, fmt.Errorf("--url and --html are mutually exclusive")
	}

	if htmlFile != "" {
		data, err := os.ReadFile(htmlFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read html file: %w", err)
		}
		page, err := dom.NewPage(string(data))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse html file: %w", err)
		}
		return page, func() {}, nil
	}

	if url == "" {
		return nil, nil, fmt.Errorf("must provide either --url or --html")
	}

	opts := dom.DefaultBrowserOptions()
	opts.Headless = headless
	opts.Verbose = verbose
	browser, err := dom.NewBrowser(ctx, url, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open page: %w", err)
	}
	return browser, browser.Close, nil
}
