// Package main provides the entry point for the job application autofill agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autofill_agent",
	Short: "Job application autofill agent",
	Long:  "Autofill agent detects and classifies the fields of job application forms and fills them from a saved profile, via CLI or REST API.",
}

// configPath points at an optional JSON config file whose values back any
// flags the user leaves unset.
var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file supplying flag defaults")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
