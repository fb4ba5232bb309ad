package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yegors/notamify/internal/config"
	"github.com/yegors/notamify/internal/notam"
	"github.com/yegors/notamify/internal/observability"
	"github.com/yegors/notamify/pkg/logger"
)

// Router assembles the HTTP routes for the API
type Router struct {
	handler  *Handler
	metrics  *observability.Metrics
	registry *prometheus.Registry
	logger   *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(notamService *notam.Service, cfg *config.Config, metrics *observability.Metrics, registry *prometheus.Registry, logger *logger.Logger) *Router {
	return &Router{
		handler:  NewHandler(notamService, cfg, logger),
		metrics:  metrics,
		registry: registry,
		logger:   logger.Named("api-router"),
	}
}

// Routes returns the configured HTTP handler
func (rt *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(rt.instrument)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/notams", rt.handler.GetNOTAMs)
		r.Get("/notams/summary", rt.handler.GetNOTAMSummary)
		r.Get("/info", rt.handler.GetAPIInfo)
		r.Get("/prompts/analyze", rt.handler.GetAnalysisPrompt)
		r.Get("/health", rt.handler.GetHealth)
	})

	r.Handle("/metrics", promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{}))

	return r
}

// instrument records request counts and durations per route pattern and logs
// each completed request.
func (rt *Router) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}
		elapsed := time.Since(start)

		rt.metrics.APIRequests.WithLabelValues(pattern, strconv.Itoa(ww.Status())).Inc()
		rt.metrics.APIDuration.WithLabelValues(pattern).Observe(elapsed.Seconds())

		rt.logger.Debug("Request served",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", ww.Status()),
			logger.Duration("elapsed", elapsed))
	})
}
