package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/roster/internal/adapters/driven/watch"
	"github.com/custodia-labs/roster/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream changes to the role file",
	Long: `Watch the configured role file and print a line whenever it is created,
rewritten or removed. Only the file backend on a local path can be watched.

Press Ctrl+C to stop.`,
	Args:        cobra.NoArgs,
	Annotations: noStore(),
	RunE:        runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	settings, err := effectiveSettings()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if settings.Backend != domain.StoreBackendFile {
		return fmt.Errorf("%w: watch requires the file backend, not %s",
			domain.ErrInvalidInput, settings.Backend)
	}

	w, err := watch.New(settings.Path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	changes, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s\n", w.Path())

	// The channel closes when the command context is cancelled.
	for change := range changes {
		printChange(cmd, change)
	}
	return nil
}

func printChange(cmd *cobra.Command, change domain.StoreChange) {
	switch {
	case change.Err != nil:
		cmd.Printf("error: %s: %v\n", change.Path, change.Err)
	case change.Type == domain.ChangeDeleted:
		cmd.Printf("%s: %s\n", change.Type, change.Path)
	default:
		cmd.Printf("%s: %s (%d roles)\n", change.Type, change.Path, len(change.Roles))
	}
}
