package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/job-autofill/internal/agent"
	"github.com/jonathan/job-autofill/internal/config"
	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/spf13/cobra"
)

var profileDatabaseURL string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the saved profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a summary of the saved profile",
	RunE:  runProfileShow,
}

var profileImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate and save a profile from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileImport,
}

var profileExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the saved profile to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileExport,
}

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved profile",
	RunE:  runProfileClear,
}

func init() {
	profileCmd.PersistentFlags().StringVar(&profileDatabaseURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileImportCmd)
	profileCmd.AddCommand(profileExportCmd)
	profileCmd.AddCommand(profileClearCmd)
	rootCmd.AddCommand(profileCmd)
}

func profileAgent(ctx context.Context) (*agent.Agent, func(), error) {
	cfg, err := loadFileConfig(config.Config{DatabaseURL: profileDatabaseURL})
	if err != nil {
		return nil, nil, err
	}
	profiles, closeStore, err := openStore(ctx, cfg.DatabaseURL, cfg.ProfileDir)
	if err != nil {
		return nil, nil, err
	}
	return agent.New(profiles, agent.DefaultOptions()), closeStore, nil
}

func runProfileShow(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, closeStore, err := profileAgent(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	profile, err := a.Profile(ctx)
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Println("No profile saved.")
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintProfile(profile)
	return nil
}

func runProfileImport(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	a, closeStore, err := profileAgent(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read profile file: %w", err)
	}

	profile, err := a.SaveProfile(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to import profile: %w", err)
	}

	fmt.Printf("Profile %s imported.\n", profile.ProfileID)
	return nil
}

func runProfileExport(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	a, closeStore, err := profileAgent(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	profile, err := a.Profile(ctx)
	if err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("no profile saved")
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}

	fmt.Printf("Profile exported to %s.\n", args[0])
	return nil
}

func runProfileClear(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	a, closeStore, err := profileAgent(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := a.ClearProfile(ctx); err != nil {
		return err
	}
	fmt.Println("Profile cleared.")
	return nil
}
