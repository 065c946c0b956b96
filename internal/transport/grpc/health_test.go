package grpc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func servingStatus(t *testing.T, h *HealthChecker, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	res, err := h.Server().Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return res.Status
}

func TestHealthChecker_Check(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	testCases := []struct {
		name     string
		pingErr  error
		expected healthpb.HealthCheckResponse_ServingStatus
	}{
		{name: "store reachable", expected: healthpb.HealthCheckResponse_SERVING},
		{name: "store unreachable", pingErr: errors.New("connection refused"), expected: healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			pinger := new(MockPinger)
			pinger.On("Ping", mock.Anything).Return(tc.pingErr)
			checker := NewHealthChecker(pinger, time.Second, logger)
			// when
			checker.Check(context.Background())
			// then
			assert.Equal(t, tc.expected, servingStatus(t, checker, ""))
			assert.Equal(t, tc.expected, servingStatus(t, checker, ServiceName))
			pinger.AssertExpectations(t)
		})
	}
}

func TestHealthChecker_RunStopsServingOnCancel(t *testing.T) {
	// given
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var calls atomic.Int32
	pinger := new(MockPinger)
	pinger.On("Ping", mock.Anything).Return(nil).Run(func(mock.Arguments) { calls.Add(1) })
	checker := NewHealthChecker(pinger, 10*time.Millisecond, logger)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	// when
	go func() { done <- checker.Run(ctx) }()
	require.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
	cancel()

	// then
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, servingStatus(t, checker, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, servingStatus(t, checker, ServiceName))
}
