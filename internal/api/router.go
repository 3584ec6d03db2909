// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/racemap/cell-service/internal/middleware"
	"github.com/racemap/cell-service/internal/store"
)

// NewRouter builds the full HTTP surface over s: the four domain routes,
// /health, and /metrics, wrapped in request-id, recovery, CORS,
// compression, rate limiting, and Prometheus instrumentation.
func NewRouter(s store.Store) http.Handler {
	h := NewHandler(s)
	limiter := NewLookupLimiter()

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(adapt(middleware.RequestID))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(adapt(middleware.Compression))
	r.Use(adapt(middleware.PrometheusMetrics))

	r.Get("/health", h.Health)
	r.Get("/cell", h.GetCell)
	r.Get("/cells", h.GetCells)
	r.With(adapt(limiter.Middleware)).Post("/cells/lookup", h.LookupCells)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

// adapt lifts the project's func(http.HandlerFunc) http.HandlerFunc
// middleware shape onto chi's func(http.Handler) http.Handler.
func adapt(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
		})
	}
}
