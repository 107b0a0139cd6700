// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Security Screening Metrics
	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "security_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)

	ThreatsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "security_threats_detected_total",
			Help: "Total number of threat signature matches",
		},
		[]string{"category", "severity"},
	)

	BlockedIPs = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "security_blocked_ips",
			Help: "Current number of blocked IP addresses",
		},
	)

	BlockedRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "security_blocked_requests_total",
			Help: "Total number of requests denied due to a blocked IP",
		},
	)

	// Deal Aggregator Metrics
	DealCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deal_cache_hits_total",
			Help: "Total number of deal search cache hits",
		},
	)

	DealCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deal_cache_misses_total",
			Help: "Total number of deal search cache misses",
		},
	)

	DealSourceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deal_source_requests_total",
			Help: "Total number of upstream deal source requests",
		},
		[]string{"source", "status"}, // status: "success", "no_results", "error"
	)

	DealSourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deal_source_duration_seconds",
			Help:    "Duration of upstream deal source calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation Engine Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation pipeline runs",
		},
		[]string{"outcome"}, // "success", "no_candidates", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation pipeline runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_candidates",
			Help:    "Number of candidates scored per recommendation run",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)

	// Product Store Metrics
	ProductUpserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_upserts_total",
			Help: "Total number of product store upserts",
		},
		[]string{"result"}, // "ok", "error"
	)

	// Geolocation Metrics
	GeolocationLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geolocation_lookups_total",
			Help: "Total number of IP geolocation lookups",
		},
		[]string{"result"}, // "ok", "error", "unknown"
	)
)

// RecordAPIRequest records a completed API request with timing.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordThreat records one threat signature match.
func RecordThreat(category, severity string) {
	ThreatsDetected.WithLabelValues(category, severity).Inc()
}

// RecordDealSource records the outcome of one upstream source query.
func RecordDealSource(source, status string, duration time.Duration) {
	DealSourceRequests.WithLabelValues(source, status).Inc()
	DealSourceDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordBreakerTransition updates breaker gauges on a state change.
// State values follow gobreaker ordering: closed=0, half-open=1, open=2.
func RecordBreakerTransition(name, from, to string, toValue float64) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(toValue)
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
