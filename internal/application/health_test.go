package application

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProber struct {
	calls   atomic.Int32
	handler func(path string, call int32) (int, []byte, error)
}

func (f *fakeProber) Probe(_ context.Context, path string) (int, []byte, error) {
	return f.handler(path, f.calls.Add(1))
}

func TestHealthCheck(t *testing.T) {
	probe := &fakeProber{handler: func(path string, _ int32) (int, []byte, error) {
		require.Equal(t, "/api/health/", path)
		return http.StatusOK, []byte(`{"status":"healthy","service":"AI Text Summarizer API","version":"2.0.0"}`), nil
	}}
	svc := NewHealthService(probe)

	status, err := svc.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "2.0.0", status.Version)
}

func TestAwaitReadyRetriesUntilReady(t *testing.T) {
	probe := &fakeProber{handler: func(path string, call int32) (int, []byte, error) {
		require.Equal(t, "/api/health/ready", path)
		if call < 3 {
			return http.StatusServiceUnavailable, nil, nil
		}
		return http.StatusOK, []byte(`{"status":"ready"}`), nil
	}}
	svc := NewHealthService(probe)

	require.NoError(t, svc.AwaitReady(context.Background(), 10*time.Second))
	assert.GreaterOrEqual(t, probe.calls.Load(), int32(3))
}

func TestAwaitReadyGivesUpAfterMaxElapsed(t *testing.T) {
	probe := &fakeProber{handler: func(_ string, _ int32) (int, []byte, error) {
		return http.StatusServiceUnavailable, nil, nil
	}}
	svc := NewHealthService(probe)

	err := svc.AwaitReady(context.Background(), 500*time.Millisecond)
	require.Error(t, err)
}

func TestAwaitReadyHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	probe := &fakeProber{handler: func(_ string, _ int32) (int, []byte, error) {
		return http.StatusServiceUnavailable, nil, nil
	}}
	svc := NewHealthService(probe)

	err := svc.AwaitReady(ctx, 10*time.Second)
	require.Error(t, err)
}
