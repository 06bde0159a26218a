// Command roster manages named roles and their member usernames.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/custodia-labs/roster/internal/adapters/driven/config/file"
	filestore "github.com/custodia-labs/roster/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/roster/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/roster/internal/adapters/driving/cli"
	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
	"github.com/custodia-labs/roster/internal/core/services"
	"github.com/custodia-labs/roster/internal/logger"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Environment overrides for the config file.
const (
	envStoreBackend  = "ROSTER_STORE_BACKEND"
	envStorePath     = "ROSTER_STORE_PATH"
	envCaseSensitive = "ROSTER_CASE_SENSITIVE"
	envComparison    = "ROSTER_COMPARISON"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &application{}
	cli.SetVersion(version)
	cli.SetInitializer(app.setup)

	err := cli.Execute(ctx)
	if cerr := app.close(); cerr != nil {
		logger.Warn("closing role store: %v", cerr)
	}
	stop()

	if err != nil {
		os.Exit(1)
	}
}

// application owns the services built for one command invocation.
type application struct {
	settings  *domain.StoreSettings
	directory *services.Directory
}

// setup builds the settings service, resolves the effective store settings
// and hands both to the command layer. The role directory is only opened
// when withStore is set.
func (a *application) setup(configPath string, withStore bool) error {
	configStore, err := file.NewConfigStore(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dataDir := filepath.Dir(configStore.Path())
	settingsService := services.NewSettingsService(configStore, dataDir)
	cli.SetSettingsService(settingsService)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if err := applyEnv(settings); err != nil {
		return err
	}
	a.settings = settings
	cli.SetStoreSettings(settings)

	if !withStore {
		return nil
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	logger.Section("Store")
	logger.Debug("backend=%s path=%s comparison=%s", settings.Backend, settings.Path, settings.Comparison())

	store, err := openStore(settings)
	if err != nil {
		return err
	}

	directory, err := services.NewDirectory(store, settings.Comparison())
	if err != nil {
		return errors.Join(err, store.Close())
	}
	a.directory = directory

	cli.SetDirectory(directory)
	cli.SetTUIConfig(&cli.TUIConfig{
		Directory:       directory,
		SettingsService: settingsService,
	})
	return nil
}

func (a *application) close() error {
	if a.directory == nil {
		return nil
	}
	return a.directory.Close()
}

// applyEnv overlays environment variables on the configured settings.
func applyEnv(settings *domain.StoreSettings) error {
	if v := os.Getenv(envStoreBackend); v != "" {
		settings.Backend = domain.StoreBackend(v)
	}
	if v := os.Getenv(envStorePath); v != "" {
		settings.Path = v
	}
	if v := os.Getenv(envCaseSensitive); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, envCaseSensitive)
		}
		settings.CaseSensitive = b
	}
	if v := os.Getenv(envComparison); v != "" {
		policy, err := domain.ParseComparison(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envComparison, err)
		}
		settings.CaseSensitive = policy.CaseSensitive()
	}
	return nil
}

func openStore(settings *domain.StoreSettings) (driven.RoleStore, error) {
	switch settings.Backend {
	case domain.StoreBackendSQLite:
		return sqlite.NewRoleStore(settings.Path)
	default:
		return filestore.NewRoleStore(settings.Path)
	}
}
