package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/roster/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/roster/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/services"
)

// useRoleFile points the settings service at path with the given backend.
func useRoleFile(t *testing.T, backend domain.StoreBackend, path string) {
	t.Helper()
	setupTestServices(t)
	settings := services.NewSettingsService(memory.NewConfigStore(), t.TempDir())
	require.NoError(t, settings.Save(&domain.StoreSettings{Backend: backend, Path: path}))
	SetSettingsService(settings)
}

// startWatch runs 'roster watch' until ctx is cancelled and waits for the
// first line of output.
func startWatch(t *testing.T, ctx context.Context) (*syncBuffer, <-chan error) {
	t.Helper()

	resetFlags(rootCmd)
	out := &syncBuffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs([]string{"watch"})
	watchCmd.SetContext(ctx)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		watchCmd.SetContext(context.Background())
	})

	done := make(chan error, 1)
	go func() {
		done <- rootCmd.ExecuteContext(ctx)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Watching")
	}, 2*time.Second, 10*time.Millisecond)
	return out, done
}

func waitStopped(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchCmd_NotConfigured(t *testing.T) {
	SetSettingsService(nil)
	SetStoreSettings(nil)

	_, err := executeCommand(t, "watch")

	assert.ErrorIs(t, err, errSettingsNotConfigured)
}

func TestWatchCmd_RequiresFileBackend(t *testing.T) {
	useRoleFile(t, domain.StoreBackendSQLite, filepath.Join(t.TempDir(), "roles.db"))

	_, err := executeCommand(t, "watch")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "file backend")
}

func TestWatchCmd_RejectsRemoteLocation(t *testing.T) {
	useRoleFile(t, domain.StoreBackendFile, "mem://localhost/roles.xml")

	_, err := executeCommand(t, "watch")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWatchCmd_MissingDirectory(t *testing.T) {
	useRoleFile(t, domain.StoreBackendFile, filepath.Join(t.TempDir(), "missing", "roles.xml"))

	_, err := executeCommand(t, "watch")

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestWatchCmd_PrintsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.xml")
	useRoleFile(t, domain.StoreBackendFile, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, done := startWatch(t, ctx)
	assert.Contains(t, out.String(), "Watching "+path)

	store, err := file.NewRoleStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, []domain.Role{{Name: "admins", Users: []string{"alice"}}}))

	require.Eventually(t, func() bool {
		return len(out.String()) > len("Watching "+path+"\n")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	waitStopped(t, done)

	assert.Regexp(t, `(created|updated): .*roles\.xml`, out.String())
}

func TestWatchCmd_FollowsEffectiveSettings(t *testing.T) {
	configured := filepath.Join(t.TempDir(), "configured.xml")
	override := filepath.Join(t.TempDir(), "override.toml")
	useRoleFile(t, domain.StoreBackendFile, configured)
	SetStoreSettings(&domain.StoreSettings{Backend: domain.StoreBackendFile, Path: override})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, done := startWatch(t, ctx)
	cancel()
	waitStopped(t, done)

	assert.Contains(t, out.String(), "Watching "+override)
	assert.NotContains(t, out.String(), configured)
}

func TestWatchCmd_EffectiveSettingsValidated(t *testing.T) {
	useRoleFile(t, domain.StoreBackendFile, filepath.Join(t.TempDir(), "roles.xml"))
	SetStoreSettings(&domain.StoreSettings{Backend: domain.StoreBackendFile, Path: filepath.Join(t.TempDir(), "roles.json")})

	_, err := executeCommand(t, "watch")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ".json")
}
