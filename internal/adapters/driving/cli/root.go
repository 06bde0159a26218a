// Package cli provides the cobra command tree for roster.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driving"
	"github.com/custodia-labs/roster/internal/logger"
)

// Initializer builds the services once flags are parsed. configPath is the
// value of --config and may be empty. withStore is false for commands that
// never touch the role directory, so a misconfigured store cannot lock the
// user out of 'roster settings'.
type Initializer func(configPath string, withStore bool) error

// annotationNoStore marks a command, and every command below it, as not
// needing the role directory.
const annotationNoStore = "roster.io/no-store"

var (
	version = "dev"

	verbose    bool
	configPath string

	initializer     Initializer
	roleDirectory   driving.RoleDirectory
	settingsService driving.SettingsService
	storeSettings   *domain.StoreSettings
)

var errDirectoryNotConfigured = errors.New("role directory not configured")

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage roles and their members",
	Long: `roster keeps a list of named roles, each with a list of member usernames,
in a single file or SQLite database.

Use the role and user commands for scripted changes, 'roster tui' to browse
interactively, or 'roster mcp serve' to expose the directory to AI assistants.`,
	SilenceUsage:      true,
	PersistentPreRunE: runInit,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.roster/config.toml)")
}

func runInit(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if initializer == nil {
		return nil
	}
	return initializer(configPath, needsStore(cmd))
}

func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationNoStore]; ok {
			return false
		}
	}
	return true
}

func noStore() map[string]string {
	return map[string]string{annotationNoStore: "true"}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by 'roster version'.
func SetVersion(v string) {
	version = v
}

// SetInitializer registers the function that wires services after flag
// parsing.
func SetInitializer(fn Initializer) {
	initializer = fn
}

// SetDirectory sets the role directory used by commands.
func SetDirectory(d driving.RoleDirectory) {
	roleDirectory = d
}

// SetSettingsService sets the settings service used by commands.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetStoreSettings sets the effective store settings, after environment
// overrides, that the role directory was or would be opened with.
func SetStoreSettings(s *domain.StoreSettings) {
	storeSettings = s
}
