package domain

import (
	"fmt"
	"net/url"
	"time"
)

// Setting keys as stored in the config file.
const (
	SettingBackendURL         = "backend.url"
	SettingBackendTimeout     = "backend.timeout_seconds"
	SettingBackendRateLimit   = "backend.rate_limit"
	SettingBreakerFailures    = "backend.breaker_failures"
	SettingBreakerOpenSeconds = "backend.breaker_open_seconds"
	SettingBulkConcurrency    = "bulk.concurrency"
	SettingWorkspaceDataDir   = "workspace.data_dir"
)

// SettingKeys returns every known setting key in display order.
func SettingKeys() []string {
	return []string{
		SettingBackendURL,
		SettingBackendTimeout,
		SettingBackendRateLimit,
		SettingBreakerFailures,
		SettingBreakerOpenSeconds,
		SettingBulkConcurrency,
		SettingWorkspaceDataDir,
	}
}

// BackendSettings configures the connection to the tagging backend.
type BackendSettings struct {
	// URL is the backend base URL.
	URL string

	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int

	// RateLimit is the maximum number of requests per second.
	RateLimit int

	// BreakerFailures is the number of consecutive failures that opens the circuit breaker.
	BreakerFailures int

	// BreakerOpenSeconds is how long the breaker stays open before probing again.
	BreakerOpenSeconds int
}

// Timeout returns the request timeout as a duration.
func (b BackendSettings) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// BreakerOpen returns the breaker open interval as a duration.
func (b BackendSettings) BreakerOpen() time.Duration {
	return time.Duration(b.BreakerOpenSeconds) * time.Second
}

// BulkSettings configures bulk keyword application.
type BulkSettings struct {
	// Concurrency bounds concurrent persistence calls.
	Concurrency int
}

// WorkspaceSettings configures the local workspace store.
type WorkspaceSettings struct {
	// DataDir holds the workspace database. Empty means ~/.infinitag/data.
	DataDir string
}

// AppSettings holds the whole application configuration.
type AppSettings struct {
	Backend   BackendSettings
	Bulk      BulkSettings
	Workspace WorkspaceSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: BackendSettings{
			URL:                "http://localhost:5000",
			TimeoutSeconds:     30,
			RateLimit:          10,
			BreakerFailures:    5,
			BreakerOpenSeconds: 30,
		},
		Bulk: BulkSettings{
			Concurrency: 4,
		},
	}
}

// Validate checks that the settings can be used.
func (s AppSettings) Validate() error {
	u, err := url.Parse(s.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: backend url %q must be an http(s) URL", ErrInvalidInput, s.Backend.URL)
	}
	positive := []struct {
		key   string
		value int
	}{
		{SettingBackendTimeout, s.Backend.TimeoutSeconds},
		{SettingBackendRateLimit, s.Backend.RateLimit},
		{SettingBreakerFailures, s.Backend.BreakerFailures},
		{SettingBreakerOpenSeconds, s.Backend.BreakerOpenSeconds},
		{SettingBulkConcurrency, s.Bulk.Concurrency},
	}
	for _, p := range positive {
		if p.value < 1 {
			return fmt.Errorf("%w: %s must be at least 1", ErrInvalidInput, p.key)
		}
	}
	return nil
}
