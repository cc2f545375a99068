// Package health serves the operational HTTP endpoints: liveness, readiness,
// Prometheus metrics and a JSON view of the open round.
package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gustavomchagas/chuta/internal/pkg/config"
	"github.com/gustavomchagas/chuta/internal/pkg/health/handlers"
)

// Deps are the sources behind the endpoints. Nil fields disable the routes
// that need them, except Checker which falls back to always healthy.
type Deps struct {
	Checker handlers.Checker
	Metrics http.Handler
	Window  handlers.WindowSource
}

// NewRouter builds the endpoint router.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", handlers.HandlePing)
	r.Get("/health", handlers.Health(deps.Checker))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}
	if deps.Window != nil {
		r.Get("/matches/open", handlers.OpenMatches(deps.Window))
	}
	return r
}

// Run serves handler on cfg.Addr until ctx is cancelled.
func Run(ctx context.Context, cfg config.HealthConfig, service string, handler http.Handler) error {
	if cfg.ReadHeaderTimeout <= 0 {
		return errors.New("read_header_timeout must be specified in config")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		slog.Info("Health server listening", "service", service, "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Health server error", "service", service, "error", err)
		}
	}()
	return nil
}

// AddrFor returns the listen address for port.
func AddrFor(port int) (string, error) {
	if port <= 0 {
		return "", fmt.Errorf("port must be greater than 0, got %d", port)
	}
	return fmt.Sprintf(":%d", port), nil
}
