package cli

import (
	"bytes"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/roster/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/services"
)

// setupTestServices wires an in-memory directory and settings service and
// restores the package state when the test ends.
func setupTestServices(t *testing.T, roles ...domain.Role) *memory.RoleStore {
	t.Helper()

	store := memory.NewRoleStore(roles...)
	dir, err := services.NewDirectory(store, domain.ComparisonIgnoreCase)
	require.NoError(t, err)

	SetDirectory(dir)
	SetSettingsService(services.NewSettingsService(memory.NewConfigStore(), t.TempDir()))
	t.Cleanup(func() {
		SetDirectory(nil)
		SetSettingsService(nil)
		SetStoreSettings(nil)
		SetInitializer(nil)
	})
	return store
}

// resetFlags returns every flag in the tree to its default so state does
// not leak between executions of the shared rootCmd.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs rootCmd with args and returns the combined output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// syncBuffer is a bytes.Buffer safe for a writer and a reader goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
