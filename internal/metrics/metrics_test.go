// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	RecordAPIRequest("POST", "/api/v1/recommendations", "200", 25*time.Millisecond)

	got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/recommendations", "200"))
	if got < 1 {
		t.Errorf("counter = %f, want >= 1", got)
	}
}

func TestRecordThreat(t *testing.T) {
	RecordThreat("sql_injection", "critical")
	got := testutil.ToFloat64(ThreatsDetected.WithLabelValues("sql_injection", "critical"))
	if got < 1 {
		t.Errorf("counter = %f, want >= 1", got)
	}
}

func TestRecordDealSource(t *testing.T) {
	RecordDealSource("real_time_product_search", "success", 120*time.Millisecond)
	got := testutil.ToFloat64(DealSourceRequests.WithLabelValues("real_time_product_search", "success"))
	if got < 1 {
		t.Errorf("counter = %f, want >= 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != start+1 {
		t.Errorf("gauge = %f, want %f", got, start+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("gauge = %f, want %f", got, start)
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	RecordBreakerTransition("deal_source", "closed", "open", 2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("deal_source")); got != 2 {
		t.Errorf("state gauge = %f, want 2", got)
	}
}
