// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package api

import (
	"errors"
	"net/http"

	"github.com/velora-labs/skinmatch/internal/auth"
	"github.com/velora-labs/skinmatch/internal/logging"
	"github.com/velora-labs/skinmatch/internal/metrics"
	"github.com/velora-labs/skinmatch/internal/validation"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type blockRequest struct {
	IP     string `json:"ip" validate:"required,ip"`
	Reason string `json:"reason"`
}

type unblockRequest struct {
	IP string `json:"ip" validate:"required,ip"`
}

// AdminLogin exchanges the admin credentials for a Bearer token.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if ve := validation.ValidateStruct(&req); ve != nil {
		respondAPIError(w, http.StatusBadRequest, ve.ToAPIError())
		return
	}

	token, err := h.admin.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, ErrCodeAuthentication, "invalid username or password")
			return
		}
		logging.Error().Err(err).Msg("Admin login failed")
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}

	respondSuccess(w, map[string]interface{}{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int64(h.cfg.Admin.TokenTTL.Seconds()),
	})
}

// AdminBlocked lists the currently blocked IPs.
func (h *Handler) AdminBlocked(w http.ResponseWriter, r *http.Request) {
	blocked := h.blockList.List()
	respondSuccess(w, map[string]interface{}{
		"blocked": blocked,
		"count":   len(blocked),
	})
}

// AdminBlock manually blocks an IP.
func (h *Handler) AdminBlock(w http.ResponseWriter, r *http.Request) {
	var req blockRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if ve := validation.ValidateStruct(&req); ve != nil {
		respondAPIError(w, http.StatusBadRequest, ve.ToAPIError())
		return
	}
	if req.Reason == "" {
		req.Reason = "manually blocked by administrator"
	}

	h.blockList.Block(req.IP, req.Reason)
	metrics.BlockedIPs.Set(float64(h.blockList.Len()))

	claims := auth.ClaimsFromContext(r.Context())
	logging.Info().
		Str("ip", req.IP).
		Str("admin", adminName(claims)).
		Msg("IP manually blocked")

	respondSuccess(w, map[string]interface{}{"blocked": req.IP})
}

// AdminUnblock removes an IP from the block list.
func (h *Handler) AdminUnblock(w http.ResponseWriter, r *http.Request) {
	var req unblockRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if ve := validation.ValidateStruct(&req); ve != nil {
		respondAPIError(w, http.StatusBadRequest, ve.ToAPIError())
		return
	}

	if !h.blockList.Unblock(req.IP) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "IP is not blocked")
		return
	}
	metrics.BlockedIPs.Set(float64(h.blockList.Len()))

	claims := auth.ClaimsFromContext(r.Context())
	logging.Info().
		Str("ip", req.IP).
		Str("admin", adminName(claims)).
		Msg("IP unblocked")

	respondSuccess(w, map[string]interface{}{"unblocked": req.IP})
}

// AdminSecurityEvents returns recent security events, newest first.
func (h *Handler) AdminSecurityEvents(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	events := h.recorder.SecurityEvents(limit)
	respondSuccess(w, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// AdminVisits returns recent visits, newest first.
func (h *Handler) AdminVisits(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	visits := h.recorder.Visits(limit)
	respondSuccess(w, map[string]interface{}{
		"visits": visits,
		"count":  len(visits),
	})
}

// AdminSummary returns the aggregate traffic and security view.
func (h *Handler) AdminSummary(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, h.recorder.Summarize())
}

// AdminPerformance returns per-endpoint latency statistics.
func (h *Handler) AdminPerformance(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]interface{}{"endpoints": h.perf.Stats()})
}

func adminName(claims *auth.Claims) string {
	if claims == nil {
		return ""
	}
	return claims.Username
}
