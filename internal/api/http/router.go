// Package http serves operational endpoints next to the trigger API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/idlink/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether the directory backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter mounts:
//   - GET /metrics - Prometheus exposition of gatherer
//   - GET /healthz - liveness
//   - GET /healthz/ready - readiness; pings the directory when pinger is set
func NewRouter(gatherer prometheus.Gatherer, pinger Pinger, logger *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/healthz", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		r.Get("/ready", func(w http.ResponseWriter, req *http.Request) {
			if pinger != nil {
				if err := pinger.Ping(req.Context()); err != nil {
					logger.Warn("HTTP: readiness check failed",
						"request_id", middleware.GetReqID(req.Context()),
						"error", err.Error())
					http.Error(w, "directory unavailable", http.StatusServiceUnavailable)
					return
				}
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
		})
	})

	return r
}
