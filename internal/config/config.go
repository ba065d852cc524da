// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Page attachment
	URL      string `json:"url,omitempty"`       // URL to open in the browser session
	HTMLFile string `json:"html_file,omitempty"` // Path to a saved HTML page to analyze offline

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	ProfileDir  string `json:"profile_dir,omitempty"`  // Directory for file-backed profiles

	// Behavior
	Headless    bool `json:"headless,omitempty"`      // Run the browser without a window
	Verbose     bool `json:"verbose,omitempty"`       // Print detailed debug information
	NoHighlight bool `json:"no_highlight,omitempty"`  // Skip coloring fields while filling
	FillDelayMs int  `json:"fill_delay_ms,omitempty"` // Pause between field writes
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.URL != "" && c.HTMLFile != "" {
		return fmt.Errorf("config error: 'url' and 'html_file' are mutually exclusive")
	}

	if c.FillDelayMs < 0 {
		return fmt.Errorf("config error: 'fill_delay_ms' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.HTMLFile != "" {
		if _, err := os.Stat(c.HTMLFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: html file not found: %s", c.HTMLFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.URL == "" {
		result.URL = defaults.URL
	}
	if result.HTMLFile == "" {
		result.HTMLFile = defaults.HTMLFile
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ProfileDir == "" {
		result.ProfileDir = defaults.ProfileDir
	}
	if result.FillDelayMs == 0 {
		result.FillDelayMs = defaults.FillDelayMs
	}
	if !result.Headless {
		result.Headless = defaults.Headless
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	if !result.NoHighlight {
		result.NoHighlight = defaults.NoHighlight
	}

	return result
}

// DefaultProfileDir returns the directory for file-backed profiles,
// honoring AUTOFILL_PROFILE_DIR before falling back under the home
// directory.
func DefaultProfileDir() string {
	if dir := os.Getenv("AUTOFILL_PROFILE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".autofill"
	}
	return filepath.Join(home, ".autofill")
}
