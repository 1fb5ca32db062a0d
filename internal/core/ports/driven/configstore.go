package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation, e.g. "backend.url".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString returns the value as a string, or "" when missing or not a string.
	GetString(key string) string

	// GetInt returns the value as an int, or 0 when missing or not numeric.
	GetInt(key string) int

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error

	// Load reads the configuration from storage.
	Load() error

	// Path returns where the configuration is stored.
	Path() string
}
