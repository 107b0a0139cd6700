// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velora-labs/skinmatch/internal/logging"
	"github.com/velora-labs/skinmatch/internal/middleware"
)

// Router assembles the full HTTP surface.
type Router struct {
	handler *Handler
	gate    *middleware.SecurityGate
}

// NewRouter creates a router over the handler set and security gate.
func NewRouter(handler *Handler, gate *middleware.SecurityGate) *Router {
	return &Router{handler: handler, gate: gate}
}

// Setup wires middleware and routes. The security gate fronts the API
// group; /metrics stays outside it so scrapes never consume rate
// limit budget.
func (rt *Router) Setup() http.Handler {
	h := rt.handler
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))
	r.Use(middleware.PrometheusMetrics)
	r.Use(h.perf.Middleware)
	r.Use(middleware.Compression)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.gate.Handler)

		r.Get("/health", h.Health)
		r.Post("/quiz", h.Quiz)
		r.Post("/recommendations", h.Recommendations)
		r.Get("/deals/search", h.DealsSearch)
		r.Post("/routine", h.Routine)
		r.Post("/routine/step-deals", h.StepDeals)
		r.Post("/routine/deals", h.RoutineDeals)

		if h.admin != nil {
			r.Route("/admin", func(r chi.Router) {
				r.Use(httprate.LimitByRealIP(
					h.cfg.Admin.RateLimitRequests,
					h.cfg.Admin.RateLimitWindow,
				))

				r.Post("/login", h.AdminLogin)

				r.Group(func(r chi.Router) {
					r.Use(h.admin.RequireAdmin)

					r.Get("/security/blocked", h.AdminBlocked)
					r.Post("/security/block", h.AdminBlock)
					r.Post("/security/unblock", h.AdminUnblock)
					r.Get("/security/events", h.AdminSecurityEvents)
					r.Get("/visits", h.AdminVisits)
					r.Get("/analytics/summary", h.AdminSummary)
					r.Get("/performance", h.AdminPerformance)
				})
			})
		} else {
			logging.Warn().Msg("Admin surface disabled: credentials not configured")
		}
	})

	return r
}
