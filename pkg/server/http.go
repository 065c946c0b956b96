package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/productsvc/pkg/config"
	"github.com/abgdnv/productsvc/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewHTTPServer builds the server from the shared HTTP config section. Errors that
// net/http would print on its own go to logger instead.
func NewHTTPServer(cfg config.HTTPConfig, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.Timeout.Read,
		WriteTimeout:      cfg.Timeout.Write,
		IdleTimeout:       cfg.Timeout.Idle,
		ReadHeaderTimeout: cfg.Timeout.ReadHeader,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

// NewChiRouter creates a new Chi router with request ID, structured logging and
// recovery middleware, followed by any extra middleware given. Unknown routes and
// methods are answered with JSON errors.
func NewChiRouter(logger *slog.Logger, extra ...func(http.Handler) http.Handler) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(web.RequestIDInjector)
	mux.Use(web.StructuredLogger(logger))
	mux.Use(web.Recoverer(logger))
	mux.Use(extra...)
	mux.NotFound(web.NotFoundHandler(logger))
	mux.MethodNotAllowed(web.MethodNotAllowedHandler(logger))
	return mux
}
