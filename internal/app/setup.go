// Package app contains the application setup for the product service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/productsvc/internal/config"
	"github.com/abgdnv/productsvc/internal/service"
	"github.com/abgdnv/productsvc/internal/store"
	grpcImpl "github.com/abgdnv/productsvc/internal/transport/grpc"
	"github.com/abgdnv/productsvc/internal/transport/rest"
	"github.com/abgdnv/productsvc/migrations"
	"github.com/abgdnv/productsvc/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/productsvc/pkg/config"
	"github.com/abgdnv/productsvc/pkg/messaging"
	"github.com/abgdnv/productsvc/pkg/metrics"
	natsclient "github.com/abgdnv/productsvc/pkg/nats"
	"github.com/abgdnv/productsvc/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
)

type Dependencies struct {
	ProductService service.ProductService
	Store          store.ProductStore
	Logger         *slog.Logger
	// Metrics enables the HTTP metrics middleware and the /metrics endpoint when set.
	Metrics          *prometheus.Registry
	MetricsNamespace string
}

func SetupDependencies(productStore store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	pService := service.NewService(productStore, publisher, logger)

	return &Dependencies{
		ProductService: pService,
		Store:          productStore,
		Logger:         logger,
	}
}

// NewStore opens the store selected by cfg.Driver. The returned func releases it.
// With migrate enabled the schema is brought up to date before the pool is used.
func NewStore(ctx context.Context, cfg pkgconfig.DatabaseConfig, logger *slog.Logger) (store.ProductStore, func(), error) {
	if cfg.Driver == pkgconfig.DriverMemory {
		logger.Info("Using in-memory product store")
		return store.NewInMemoryStore(), func() {}, nil
	}

	if cfg.Migrate {
		if err := bootstrap.MigrateUp(migrations.FS, cfg.URL, logger); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}
	dbPool, err := bootstrap.NewDbPool(ctx, cfg.URL, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection pool established")
	return store.NewPgStore(dbPool), dbPool.Close, nil
}

// NewPublisher connects to NATS JetStream when enabled and returns a publisher guarded by
// a circuit breaker. Otherwise events are dropped. The returned func closes the connection.
func NewPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.Nats.Enabled {
		logger.Info("NATS is disabled, product events will not be published")
		return messaging.NoopPublisher{}, func() {}, nil
	}

	nc, err := natsclient.NewClient(cfg.Nats.Url, cfg.Nats.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := natsclient.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}
	if err := natsclient.EnsureStream(ctx, js, cfg.Nats.Stream, messaging.ProductsSubjects); err != nil {
		nc.Close()
		return nil, nil, err
	}
	logger.Info("Connected to NATS", "url", cfg.Nats.Url, "stream", cfg.Nats.Stream)

	publisher := natsclient.NewBreakerPublisher(
		natsclient.NewNatsPublisher(js, cfg.Resilience.Retry),
		cfg.Resilience.CircuitBreaker,
	)
	closeFn := func() {
		if err := nc.Drain(); err != nil {
			logger.Error("Failed to drain NATS connection", "error", err)
		}
	}
	return publisher, closeFn, nil
}

// SetupHttpHandler initializes the routes and middleware of the product service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	var extra []func(http.Handler) http.Handler
	if deps.Metrics != nil {
		extra = append(extra, metrics.NewHTTPMetrics(deps.MetricsNamespace, deps.Metrics).Middleware)
	}
	mux := server.NewChiRouter(deps.Logger, extra...)
	wireRoutes(mux, deps)
	if deps.Metrics != nil {
		mux.Handle("/metrics", metrics.Handler(deps.Metrics))
	}
	return mux
}

// wireRoutes sets up the HTTP routes for the product service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the product service.
// Every request is traced with otelhttp.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)
	return server.NewHTTPServer(cfg.HTTPServer, otelhttp.NewHandler(mux, "product-service"), deps.Logger)
}

// SetupGrpcServer initializes the gRPC server with the health service backed by the product store.
func SetupGrpcServer(deps *Dependencies, cfg *config.Config) (*grpc.Server, *grpcImpl.HealthChecker) {
	checker := grpcImpl.NewHealthChecker(deps.Store, cfg.GRPC.HealthInterval, deps.Logger)
	return server.NewGRPCServer(deps.Logger, cfg.GRPC.ReflectionEnabled, checker.Register), checker
}
