package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: domain.BackendSettings{
			URL:                strings.TrimRight(s.getString(domain.SettingBackendURL, defaults.Backend.URL), "/"),
			TimeoutSeconds:     s.getInt(domain.SettingBackendTimeout, defaults.Backend.TimeoutSeconds),
			RateLimit:          s.getInt(domain.SettingBackendRateLimit, defaults.Backend.RateLimit),
			BreakerFailures:    s.getInt(domain.SettingBreakerFailures, defaults.Backend.BreakerFailures),
			BreakerOpenSeconds: s.getInt(domain.SettingBreakerOpenSeconds, defaults.Backend.BreakerOpenSeconds),
		},
		Bulk: domain.BulkSettings{
			Concurrency: s.getInt(domain.SettingBulkConcurrency, defaults.Bulk.Concurrency),
		},
		Workspace: domain.WorkspaceSettings{
			DataDir: s.configStore.GetString(domain.SettingWorkspaceDataDir), // No default - the store picks ~/.infinitag/data
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{domain.SettingBackendURL, settings.Backend.URL},
		{domain.SettingBackendTimeout, settings.Backend.TimeoutSeconds},
		{domain.SettingBackendRateLimit, settings.Backend.RateLimit},
		{domain.SettingBreakerFailures, settings.Backend.BreakerFailures},
		{domain.SettingBreakerOpenSeconds, settings.Backend.BreakerOpenSeconds},
		{domain.SettingBulkConcurrency, settings.Bulk.Concurrency},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if settings.Workspace.DataDir != "" {
		if err := s.configStore.Set(domain.SettingWorkspaceDataDir, settings.Workspace.DataDir); err != nil {
			return fmt.Errorf("save %s: %w", domain.SettingWorkspaceDataDir, err)
		}
	}

	return nil
}

// Set parses value for key, validates the result and stores it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case domain.SettingBackendURL:
		settings.Backend.URL = strings.TrimRight(value, "/")
	case domain.SettingWorkspaceDataDir:
		settings.Workspace.DataDir = value
	case domain.SettingBackendTimeout, domain.SettingBackendRateLimit, domain.SettingBreakerFailures,
		domain.SettingBreakerOpenSeconds, domain.SettingBulkConcurrency:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		*s.intField(settings, key) = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := settings.Validate(); err != nil {
		return err
	}

	var stored any = value
	if field := s.intField(settings, key); field != nil {
		stored = *field
	} else if key == domain.SettingBackendURL {
		stored = settings.Backend.URL
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *SettingsService) intField(settings *domain.AppSettings, key string) *int {
	switch key {
	case domain.SettingBackendTimeout:
		return &settings.Backend.TimeoutSeconds
	case domain.SettingBackendRateLimit:
		return &settings.Backend.RateLimit
	case domain.SettingBreakerFailures:
		return &settings.Backend.BreakerFailures
	case domain.SettingBreakerOpenSeconds:
		return &settings.Backend.BreakerOpenSeconds
	case domain.SettingBulkConcurrency:
		return &settings.Bulk.Concurrency
	}
	return nil
}

// Values returns every setting rendered as text.
func (s *SettingsService) Values() (map[string]string, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	return map[string]string{
		domain.SettingBackendURL:         settings.Backend.URL,
		domain.SettingBackendTimeout:     strconv.Itoa(settings.Backend.TimeoutSeconds),
		domain.SettingBackendRateLimit:   strconv.Itoa(settings.Backend.RateLimit),
		domain.SettingBreakerFailures:    strconv.Itoa(settings.Backend.BreakerFailures),
		domain.SettingBreakerOpenSeconds: strconv.Itoa(settings.Backend.BreakerOpenSeconds),
		domain.SettingBulkConcurrency:    strconv.Itoa(settings.Bulk.Concurrency),
		domain.SettingWorkspaceDataDir:   settings.Workspace.DataDir,
	}, nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}
