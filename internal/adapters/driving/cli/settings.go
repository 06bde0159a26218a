package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/roster/internal/core/domain"
)

var errSettingsNotConfigured = errors.New("settings service not configured")

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage role store settings",
	Long: `View and change where roles are stored and how names are matched.

Keys:
  store.backend         file or sqlite
  store.path            role file or database location
  store.case_sensitive  true for exact matching, false to ignore case
  store.comparison      ordinal or ignore_case, an alias for store.case_sensitive

The ROSTER_STORE_BACKEND, ROSTER_STORE_PATH, ROSTER_CASE_SENSITIVE and
ROSTER_COMPARISON environment variables override the config file.`,
	Annotations: noStore(),
	RunE:        runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Backend: %s\n", settings.Backend.Description())
	cmd.Printf("  Path: %s\n", settings.Path)
	cmd.Printf("  Matching: %s\n", settings.Comparison().Description())
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())

	effective := settings
	if storeSettings != nil && *storeSettings != *settings {
		effective = storeSettings
		cmd.Println()
		cmd.Println("[Effective] (environment overrides)")
		cmd.Printf("  Backend: %s\n", effective.Backend.Description())
		cmd.Printf("  Path: %s\n", effective.Path)
		cmd.Printf("  Matching: %s\n", effective.Comparison().Description())
	}

	if err := effective.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

// effectiveSettings returns the resolved store settings, falling back to
// the configured ones when none were resolved.
func effectiveSettings() (*domain.StoreSettings, error) {
	if storeSettings != nil {
		return storeSettings, nil
	}
	if settingsService == nil {
		return nil, errSettingsNotConfigured
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to update setting: %w", err)
	}

	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}
