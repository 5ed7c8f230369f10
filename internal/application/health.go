package application

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Prober issues direct health calls that bypass the fallback procedure:
// probing is the one place that must see real failures.
type Prober interface {
	Probe(ctx context.Context, path string) (int, []byte, error)
}

type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type HealthService struct {
	probe Prober
}

func NewHealthService(probe Prober) *HealthService {
	return &HealthService{probe: probe}
}

// Check reports the backend's basic health endpoint.
func (s *HealthService) Check(ctx context.Context) (HealthStatus, error) {
	status, body, err := s.probe.Probe(ctx, healthPath)
	if err != nil {
		return HealthStatus{}, err
	}
	if status != http.StatusOK {
		return HealthStatus{}, fmt.Errorf("health check: status %d", status)
	}

	var payload HealthStatus
	if err := json.Unmarshal(body, &payload); err != nil {
		return HealthStatus{}, fmt.Errorf("decode health response: %w", err)
	}
	return payload, nil
}

// AwaitReady polls the readiness endpoint with exponential backoff until
// the backend accepts work or maxElapsed passes.
func (s *HealthService) AwaitReady(ctx context.Context, maxElapsed time.Duration) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 2 * time.Second
	policy.MaxElapsedTime = maxElapsed

	operation := func() error {
		status, _, err := s.probe.Probe(ctx, healthReadyPath)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("not ready: status %d", status)
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return fmt.Errorf("await ready: %w", err)
	}
	return nil
}
