// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package middleware

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/velora-labs/skinmatch/internal/events"
	"github.com/velora-labs/skinmatch/internal/logging"
	"github.com/velora-labs/skinmatch/internal/metrics"
	"github.com/velora-labs/skinmatch/internal/models"
	"github.com/velora-labs/skinmatch/internal/security"
)

// maxInspectBody caps how much of a request body the threat detector
// reads. Larger bodies are inspected up to this prefix.
const maxInspectBody = 64 * 1024

// SecurityGate fronts every route with the block list, the
// sliding-window rate limiter, and the threat detector, in that
// order. Findings and completed visits are published to the bus.
type SecurityGate struct {
	blockList         *security.BlockList
	limiter           *security.RateLimiter
	detector          *security.Detector
	bus               *events.Bus
	rateLimitDisabled bool
}

// NewSecurityGate assembles the gate. bus may be nil, in which case
// events are only logged.
func NewSecurityGate(blockList *security.BlockList, limiter *security.RateLimiter, detector *security.Detector, bus *events.Bus, rateLimitDisabled bool) *SecurityGate {
	return &SecurityGate{
		blockList:         blockList,
		limiter:           limiter,
		detector:          detector,
		bus:               bus,
		rateLimitDisabled: rateLimitDisabled,
	}
}

// Handler wraps next with the full gate.
func (g *SecurityGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		if g.blockList.IsBlocked(ip) {
			metrics.BlockedRequests.Inc()
			g.publishEvent(events.SecurityEvent{
				EventType:   "blocked_request",
				Severity:    security.SeverityHigh,
				Description: "request from blocked IP rejected",
				IPAddress:   ip,
				Path:        r.URL.Path,
			})
			g.deny(w, r, ip, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
			return
		}

		if !g.rateLimitDisabled && !g.limiter.Allow(ip) {
			metrics.RateLimitRejections.Inc()
			g.publishEvent(events.SecurityEvent{
				EventType:   "rate_limit_exceeded",
				Severity:    security.SeverityHigh,
				Description: "sliding-window rate limit exceeded",
				IPAddress:   ip,
				Path:        r.URL.Path,
			})
			g.deny(w, r, ip, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests")
			return
		}

		threats := g.detector.Inspect(requestSurface(r))
		for _, t := range threats {
			metrics.RecordThreat(string(t.Category), t.Severity)
			g.publishEvent(events.SecurityEvent{
				EventType:   string(t.Category),
				Severity:    t.Severity,
				Description: t.Describe(),
				IPAddress:   ip,
				Path:        r.URL.Path,
				Evidence:    t.Evidence,
			})
		}

		if g.detector.ShouldBlock(threats) {
			g.blockList.Block(ip, "automatic block: threat threshold exceeded")
			metrics.BlockedIPs.Set(float64(g.blockList.Len()))
			g.publishEvent(events.SecurityEvent{
				EventType:   "ip_blocked",
				Severity:    security.SeverityCritical,
				Description: "IP automatically blocked after repeated threat matches",
				IPAddress:   ip,
				Path:        r.URL.Path,
			})
			logging.Warn().
				Str("ip", ip).
				Int("threats", len(threats)).
				Msg("IP automatically blocked")
			g.deny(w, r, ip, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
			return
		}

		start := time.Now()
		wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		g.publishVisit(events.Visit{
			IPAddress:  ip,
			Method:     r.Method,
			Path:       r.URL.Path,
			StatusCode: wrapper.statusCode,
			UserAgent:  r.UserAgent(),
			Referrer:   r.Referer(),
			DurationMs: float64(time.Since(start).Microseconds()) / 1000.0,
		})
	})
}

func (g *SecurityGate) deny(w http.ResponseWriter, r *http.Request, ip string, status int, code, message string) {
	logging.Ctx(r.Context()).Warn().
		Str("ip", ip).
		Str("path", r.URL.Path).
		Str("code", code).
		Msg("Request rejected by security gate")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message},
	})
}

func (g *SecurityGate) publishEvent(ev events.SecurityEvent) {
	if g.bus == nil {
		return
	}
	ev.EventID = uuid.NewString()
	ev.Timestamp = time.Now().UTC()
	if err := g.bus.PublishSecurityEvent(ev); err != nil {
		logging.Error().Err(err).Str("event_type", ev.EventType).Msg("Failed to publish security event")
	}
}

func (g *SecurityGate) publishVisit(v events.Visit) {
	if g.bus == nil {
		return
	}
	v.VisitID = uuid.NewString()
	v.Timestamp = time.Now().UTC()
	if err := g.bus.PublishVisit(v); err != nil {
		logging.Error().Err(err).Msg("Failed to publish visit")
	}
}

// requestSurface extracts the inspectable parts of a request. The body
// is read up to maxInspectBody and restored for downstream handlers.
func requestSurface(r *http.Request) security.RequestSurface {
	surface := security.RequestSurface{
		Path:      r.URL.Path,
		Query:     r.URL.RawQuery,
		Headers:   headerString(r.Header),
		UserAgent: r.UserAgent(),
	}

	if r.Body != nil && r.Body != http.NoBody {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxInspectBody))
		if err == nil {
			rest, _ := io.ReadAll(r.Body)
			_ = r.Body.Close()
			r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), bytes.NewReader(rest)))
			surface.Body = string(body)
		}
	}

	return surface
}

// headerString renders headers as "Key: v1, v2" lines in a stable key
// order, excluding User-Agent which is inspected separately.
func headerString(h http.Header) string {
	keys := make([]string, 0, len(h))
	for k := range h {
		if k == "User-Agent" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(h[k], ", "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// clientIP resolves the caller's IP from RemoteAddr. The router's
// RealIP middleware runs first, so RemoteAddr already reflects
// X-Forwarded-For behind a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
