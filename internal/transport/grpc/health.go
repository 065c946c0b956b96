// Package grpc exposes the product service health over the standard gRPC health protocol.
package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported alongside the overall ("") status.
const ServiceName = "product"

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker keeps the gRPC health status in line with the product store.
type HealthChecker struct {
	server   *health.Server
	pinger   Pinger
	interval time.Duration
	logger   *slog.Logger
}

// NewHealthChecker creates a checker that probes pinger every interval.
// Both services start as SERVING until the first probe says otherwise.
func NewHealthChecker(pinger Pinger, interval time.Duration, logger *slog.Logger) *HealthChecker {
	srv := health.NewServer()
	srv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	return &HealthChecker{
		server:   srv,
		pinger:   pinger,
		interval: interval,
		logger:   logger.With("component", "grpc-health"),
	}
}

// Register adds the health service to s.
func (h *HealthChecker) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.server)
}

// Check probes the store once and updates both statuses.
func (h *HealthChecker) Check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, h.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "Product store is not reachable", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
}

// Run probes the store until ctx is cancelled, then marks every service NOT_SERVING.
func (h *HealthChecker) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			h.Shutdown()
			return nil
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// Shutdown sets every service to NOT_SERVING and ignores later updates.
func (h *HealthChecker) Shutdown() {
	h.server.Shutdown()
}

// Server returns the underlying health server.
func (h *HealthChecker) Server() healthpb.HealthServer {
	return h.server
}
