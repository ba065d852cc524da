package main

import (
	"fmt"
	"os"

	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort     int
	serveHeadless bool
	serveVerbose  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for profile management and form filling.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveHeadless, "headless", true, "Run the browser without a window")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(config.Config{
		Headless: serveHeadless,
		Verbose:  serveVerbose,
	})
	if err != nil {
		return err
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = fileCfg.DatabaseURL
	}
	if databaseURL == "" {
		return fmt.Errorf("a database URL is required: set DATABASE_URL or database_url in --config")
	}

	cfg := server.Config{
		Port:        servePort,
		DatabaseURL: databaseURL,
		Headless:    fileCfg.Headless,
		Verbose:     fileCfg.Verbose,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
