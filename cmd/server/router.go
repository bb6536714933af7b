package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"amparo/internal/assignment"
	"amparo/internal/beneficiary"
	"amparo/internal/benefit"
	"amparo/internal/distribution"
	"amparo/internal/operator"
	platformmetrics "amparo/internal/platform/metrics"
	platformmw "amparo/internal/platform/middleware"
	"amparo/internal/reporting"
	"amparo/pkg/platform/httputil"
	"amparo/pkg/platform/middleware/auth"
	"amparo/pkg/platform/middleware/scrape"
)

// handlers groups the module endpoints mounted under /v1.
type handlers struct {
	operators     *operator.Handler
	beneficiaries *beneficiary.Handler
	benefits      *benefit.Handler
	assignments   *assignment.Handler
	distributions *distribution.Handler
	reports       *reporting.Handler
}

// Pinger is a dependency checked by /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type routerConfig struct {
	logger       *slog.Logger
	metrics      *platformmetrics.Metrics
	timeout      time.Duration
	metricsToken string
	tokens       auth.JWTValidator
	revocations  auth.TokenRevocationChecker
	dependencies map[string]Pinger
}

func newRouter(cfg routerConfig, h handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(platformmw.Standard(cfg.logger, cfg.metrics, cfg.timeout)...)

	r.Get("/health", healthHandler(cfg.dependencies))
	r.With(scrape.RequireToken(cfg.metricsToken, cfg.logger)).Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		h.operators.RegisterPublic(r)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(cfg.tokens, cfg.revocations, cfg.logger))
			h.operators.Register(r)
			h.beneficiaries.Register(r)
			h.benefits.Register(r)
			h.assignments.Register(r)
			h.distributions.Register(r)
			h.reports.Register(r)
		})
	})
	return r
}

// healthHandler reports 503 when any dependency fails its ping.
func healthHandler(deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]string, len(deps))
		status := http.StatusOK
		for name, dep := range deps {
			if err := dep.PingContext(r.Context()); err != nil {
				checks[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}
		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		httputil.WriteJSON(w, status, map[string]any{"status": state, "checks": checks})
	}
}
