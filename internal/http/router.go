// Package http assembles the public router out of the per-module handlers.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	comparisonHandler "github.com/ENEASJO/sistema-de-filtro/internal/comparison/handler"
	"github.com/ENEASJO/sistema-de-filtro/internal/platform/middleware"
	screeningHandler "github.com/ENEASJO/sistema-de-filtro/internal/screening/handler"
)

// NewRouter wires the middleware chain and mounts every endpoint.
func NewRouter(
	screening *screeningHandler.Handler,
	comparison *comparisonHandler.Handler,
	logger *slog.Logger,
	requestTimeout time.Duration,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		screening.Register(r)
		comparison.Register(r)
	})

	return r
}
