package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
	"github.com/custodia-labs/roster/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyStoreBackend       = "store.backend"
	KeyStorePath          = "store.path"
	KeyStoreCaseSensitive = "store.case_sensitive"

	// KeyStoreComparison is accepted by Set as an alias for
	// store.case_sensitive that takes a policy name.
	KeyStoreComparison = "store.comparison"
)

// SettingsService manages role store settings.
type SettingsService struct {
	configStore driven.ConfigStore
	dataDir     string
}

// NewSettingsService creates a new settings service. dataDir is used to
// derive the default role file location.
func NewSettingsService(configStore driven.ConfigStore, dataDir string) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		dataDir:     dataDir,
	}
}

// Get retrieves current store settings, falling back to defaults for
// unset keys.
func (s *SettingsService) Get() (*domain.StoreSettings, error) {
	defaults := s.GetDefaults()

	settings := &domain.StoreSettings{
		Backend:       defaults.Backend,
		Path:          s.getString(KeyStorePath, defaults.Path),
		CaseSensitive: s.getBool(KeyStoreCaseSensitive, defaults.CaseSensitive),
	}
	if backend := domain.StoreBackend(s.configStore.GetString(KeyStoreBackend)); backend.IsValid() {
		settings.Backend = backend
	}

	return settings, nil
}

// Save validates and persists store settings in a single write.
func (s *SettingsService) Save(settings *domain.StoreSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	err := s.configStore.SetAll(map[string]any{
		KeyStoreBackend:       settings.Backend.String(),
		KeyStorePath:          settings.Path,
		KeyStoreCaseSensitive: settings.CaseSensitive,
	})
	if err != nil {
		return fmt.Errorf("save store settings: %w", err)
	}
	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeyStoreBackend:
		backend := domain.StoreBackend(value)
		if !backend.IsValid() {
			return fmt.Errorf("%w: invalid store backend: %s", domain.ErrInvalidInput, value)
		}
		settings.Backend = backend
	case KeyStorePath:
		settings.Path = value
	case KeyStoreCaseSensitive:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.CaseSensitive = b
	case KeyStoreComparison:
		policy, err := domain.ParseComparison(value)
		if err != nil {
			return err
		}
		settings.CaseSensitive = policy.CaseSensitive()
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.StoreSettings {
	return domain.DefaultStoreSettings(s.dataDir)
}

// ConfigPath returns the path of the backing configuration file.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
