// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package api

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/velora-labs/skinmatch/internal/advice"
	"github.com/velora-labs/skinmatch/internal/analytics"
	"github.com/velora-labs/skinmatch/internal/auth"
	"github.com/velora-labs/skinmatch/internal/config"
	"github.com/velora-labs/skinmatch/internal/deals"
	"github.com/velora-labs/skinmatch/internal/geo"
	"github.com/velora-labs/skinmatch/internal/logging"
	"github.com/velora-labs/skinmatch/internal/middleware"
	"github.com/velora-labs/skinmatch/internal/models"
	"github.com/velora-labs/skinmatch/internal/profile"
	"github.com/velora-labs/skinmatch/internal/recommend"
	"github.com/velora-labs/skinmatch/internal/security"
	"github.com/velora-labs/skinmatch/internal/validation"
)

// Version is reported by the health endpoint.
const Version = "1.2.0"

// Handler carries the wired services behind the HTTP surface.
type Handler struct {
	cfg        *config.Config
	engine     *recommend.Engine
	aggregator *deals.Aggregator
	resolver   geo.Resolver
	builder    *advice.Builder
	stepFinder *advice.StepDealFinder
	admin      *auth.AdminAuthenticator
	recorder   *analytics.Recorder
	blockList  *security.BlockList
	perf       *middleware.PerformanceMonitor
	startTime  time.Time
}

// HandlerDeps are the services a Handler serves. resolver, admin, and
// recorder may be nil when the corresponding feature is disabled.
type HandlerDeps struct {
	Config     *config.Config
	Engine     *recommend.Engine
	Aggregator *deals.Aggregator
	Resolver   geo.Resolver
	Builder    *advice.Builder
	StepFinder *advice.StepDealFinder
	Admin      *auth.AdminAuthenticator
	Recorder   *analytics.Recorder
	BlockList  *security.BlockList
	Perf       *middleware.PerformanceMonitor
}

// NewHandler wires the handler set.
func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		cfg:        deps.Config,
		engine:     deps.Engine,
		aggregator: deps.Aggregator,
		resolver:   deps.Resolver,
		builder:    deps.Builder,
		stepFinder: deps.StepFinder,
		admin:      deps.Admin,
		recorder:   deps.Recorder,
		blockList:  deps.BlockList,
		perf:       deps.Perf,
		startTime:  time.Now(),
	}
}

// Health reports service liveness and deal cache effectiveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	stats := h.aggregator.CacheStats()
	hitRate := 0.0
	if total := stats.Hits + stats.Misses; total > 0 {
		hitRate = float64(stats.Hits) / float64(total) * 100.0
	}

	respondSuccess(w, map[string]interface{}{
		"status":         "healthy",
		"version":        Version,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"deal_cache": map[string]interface{}{
			"entries":  stats.TotalKeys,
			"hit_rate": hitRate,
		},
	})
}

// Quiz validates a submitted skin profile and returns its normalized
// form, letting the client confirm what the recommender will see.
func (h *Handler) Quiz(w http.ResponseWriter, r *http.Request) {
	var p models.SkinProfile
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	normalized, err := profile.Normalize(&p)
	if err != nil {
		respondValidation(w, err)
		return
	}

	respondSuccess(w, map[string]interface{}{"profile": normalized})
}

// Recommendations runs the full recommendation pipeline for a profile.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var p models.SkinProfile
	if err := decodeJSON(r, &p); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	recommendations, err := h.engine.Recommend(r.Context(), &p)
	if err != nil {
		respondValidation(w, err)
		return
	}

	respondSuccess(w, map[string]interface{}{
		"recommendations": recommendations,
		"count":           len(recommendations),
	})
}

// DealsSearch aggregates retailer offers for one product query.
// use_location=true resolves the caller's IP for localized results.
func (h *Handler) DealsSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "query parameter 'q' is required")
		return
	}

	maxResults := queryInt(r, "max_results", h.cfg.Deals.MaxResults)

	var loc *models.Location
	if h.resolver != nil && r.URL.Query().Get("use_location") == "true" {
		ip := clientIP(r)
		resolved, err := h.resolver.Lookup(r.Context(), ip)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Str("ip", ip).Msg("Geolocation failed, searching globally")
		} else {
			loc = resolved
		}
	}

	result, cached := h.aggregator.Search(r.Context(), query, loc, maxResults)
	respondCached(w, result, cached)
}

// stepDealsRequest carries one routine step plus profile context.
type stepDealsRequest struct {
	Step     advice.RoutineStep `json:"step"`
	SkinType string             `json:"skin_type"`
	Concerns []string           `json:"concerns"`
}

// routineDealsRequest carries a whole routine plus profile context.
type routineDealsRequest struct {
	Routine  advice.Routine `json:"routine"`
	SkinType string         `json:"skin_type"`
	Concerns []string       `json:"concerns"`
}

// Routine builds a personalized AM/PM routine structure.
func (h *Handler) Routine(w http.ResponseWriter, r *http.Request) {
	var req advice.RoutineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if req.SkinType == "" {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "skin_type is required")
		return
	}

	respondSuccess(w, map[string]interface{}{"routine": h.builder.BuildRoutine(r.Context(), req)})
}

// StepDeals finds tiered offers for a single routine step.
func (h *Handler) StepDeals(w http.ResponseWriter, r *http.Request) {
	var req stepDealsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if req.Step.StepName == "" {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "step.step_name is required")
		return
	}

	tiered := h.stepFinder.StepDeals(r.Context(), req.Step, req.SkinType, req.Concerns)
	respondSuccess(w, map[string]interface{}{"step": req.Step.StepName, "deals": tiered})
}

// RoutineDeals assembles the combined shopping view for a routine.
func (h *Handler) RoutineDeals(w http.ResponseWriter, r *http.Request) {
	var req routineDealsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if len(req.Routine.AM) == 0 && len(req.Routine.PM) == 0 {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "routine has no steps")
		return
	}

	combined := h.stepFinder.RoutineDeals(r.Context(), req.Routine, req.SkinType, req.Concerns)
	respondSuccess(w, map[string]interface{}{"deals": combined})
}

// respondValidation maps normalization failures to 400 with per-field
// details, and anything else to 500.
func respondValidation(w http.ResponseWriter, err error) {
	var ve *validation.RequestValidationError
	if errors.As(err, &ve) {
		respondAPIError(w, http.StatusBadRequest, ve.ToAPIError())
		return
	}
	logging.Error().Err(err).Msg("Request failed")
	respondError(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
