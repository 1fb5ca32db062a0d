package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
	"github.com/Alma-hanif/infinitag/internal/logger"
)

// Ensure Client implements the backend ports.
var _ driven.Backend = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL         = "http://localhost:5000"
	DefaultTimeout         = 30 * time.Second
	DefaultRateLimit       = 10
	DefaultBreakerFailures = 5
	DefaultBreakerOpen     = 30 * time.Second

	// maxErrorBody caps how much of an error reply is kept in APIError.
	maxErrorBody = 4096
)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the backend root (default: http://localhost:5000).
	BaseURL string

	// Timeout bounds every request (default: 30s).
	Timeout time.Duration

	// RateLimit is the sustained requests per second (default: 10).
	RateLimit int

	// BreakerFailures is the number of consecutive failures that open the breaker.
	BreakerFailures int

	// BreakerOpen is how long the breaker stays open before probing again.
	BreakerOpen time.Duration

	// HTTPClient overrides the underlying client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// ConfigFromSettings maps stored backend settings onto a client config.
func ConfigFromSettings(s domain.BackendSettings) Config {
	return Config{
		BaseURL:         s.URL,
		Timeout:         s.Timeout(),
		RateLimit:       s.RateLimit,
		BreakerFailures: s.BreakerFailures,
		BreakerOpen:     s.BreakerOpen(),
	}
}

// Client talks to the tagging backend.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

// New creates a backend client.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.BreakerFailures <= 0 {
		cfg.BreakerFailures = DefaultBreakerFailures
	}
	if cfg.BreakerOpen <= 0 {
		cfg.BreakerOpen = DefaultBreakerOpen
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	failures := uint32(cfg.BreakerFailures)
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "backend",
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpen,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return !countsAsFailure(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Client{
		http:    client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit),
		breaker: breaker,
	}
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BreakerState reports the circuit breaker state ("closed", "open", "half-open").
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// do sends a request and returns the response when the status is 2xx.
// Any other status is read into an *APIError and the body closed.
// The caller owns the returned body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	status := 0
	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		status = resp.StatusCode
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			defer resp.Body.Close()
			return nil, readAPIError(resp, url)
		}
		return resp, nil
	})
	logger.Request(method, path, status, time.Since(start), err)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}
	return resp, nil
}

// doJSON sends in as a JSON body (when non-nil) and decodes the reply into out (when non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	resp, err := c.do(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readAPIError(resp *http.Response, url string) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, URL: url}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		apiErr.Message = "failed to read response"
		return apiErr
	}
	var msg messageDTO
	if json.Unmarshal(data, &msg) == nil {
		switch {
		case msg.Message != "":
			apiErr.Message = msg.Message
			return apiErr
		case msg.Error != "":
			apiErr.Message = msg.Error
			return apiErr
		}
	}
	apiErr.Message = strings.TrimSpace(string(data))
	return apiErr
}
