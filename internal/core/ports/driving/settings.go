package driving

import "github.com/Alma-hanif/infinitag/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, filling unset keys with defaults.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set parses and stores a single setting given as text.
	Set(key, value string) error

	// Values returns every setting as text, keyed by setting key.
	Values() (map[string]string, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Validate checks if current settings are usable.
	Validate() error
}
