package services

import (
	"context"
	"time"

	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
	"github.com/Alma-hanif/infinitag/internal/core/ports/driving"
)

var _ driving.StatusService = (*StatusService)(nil)

// StatusService probes the backend health endpoint.
type StatusService struct {
	health driven.HealthChecker
	url    string
}

// NewStatusService creates a status service for the backend at url.
func NewStatusService(health driven.HealthChecker, url string) *StatusService {
	return &StatusService{health: health, url: url}
}

// Status runs one health probe.
func (s *StatusService) Status(ctx context.Context) driving.BackendStatus {
	out := driving.BackendStatus{URL: s.url}
	start := time.Now()
	out.Status, out.Err = s.health.Health(ctx)
	out.Latency = time.Since(start)
	return out
}
