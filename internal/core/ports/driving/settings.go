package driving

import "github.com/custodia-labs/roster/internal/core/domain"

// SettingsService manages role store settings.
type SettingsService interface {
	// Get retrieves the current store settings.
	Get() (*domain.StoreSettings, error)

	// Save persists store settings.
	Save(settings *domain.StoreSettings) error

	// Set updates a single setting by its configuration key.
	Set(key, value string) error

	// Validate checks the current settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.StoreSettings

	// ConfigPath returns the path of the backing configuration file.
	ConfigPath() string
}
