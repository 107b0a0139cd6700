// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package analytics

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/velora-labs/skinmatch/internal/events"
)

func startRecorder(t *testing.T, capacity int) (*events.Bus, *Recorder) {
	t.Helper()
	bus := events.NewBus()
	t.Cleanup(func() { _ = bus.Close() })

	recorder := NewRecorder(bus, capacity)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = recorder.Serve(ctx) }()

	// Give the subscriptions a moment to register before publishing.
	time.Sleep(50 * time.Millisecond)
	return bus, recorder
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestRecorderVisits(t *testing.T) {
	bus, recorder := startRecorder(t, 100)

	for i := 0; i < 3; i++ {
		err := bus.PublishVisit(events.Visit{
			VisitID:    fmt.Sprintf("v%d", i),
			IPAddress:  "10.0.0.1",
			Method:     "GET",
			Path:       "/api/v1/health",
			StatusCode: 200,
		})
		if err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	waitFor(t, func() bool { return len(recorder.Visits(0)) == 3 })

	visits := recorder.Visits(2)
	if len(visits) != 2 {
		t.Fatalf("got %d visits, want 2", len(visits))
	}
	if visits[0].VisitID != "v2" {
		t.Errorf("newest first expected, got %q", visits[0].VisitID)
	}
}

func TestRecorderSecurityEvents(t *testing.T) {
	bus, recorder := startRecorder(t, 100)

	err := bus.PublishSecurityEvent(events.SecurityEvent{
		EventID:   "e1",
		EventType: "sql_injection",
		Severity:  "critical",
		IPAddress: "10.0.0.9",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	waitFor(t, func() bool { return len(recorder.SecurityEvents(0)) == 1 })

	got := recorder.SecurityEvents(0)[0]
	if got.EventType != "sql_injection" || got.IPAddress != "10.0.0.9" {
		t.Errorf("event = %+v", got)
	}
}

func TestRecorderCapacityBound(t *testing.T) {
	bus, recorder := startRecorder(t, 2)

	for i := 0; i < 5; i++ {
		if err := bus.PublishVisit(events.Visit{VisitID: fmt.Sprintf("v%d", i), Path: "/x"}); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	waitFor(t, func() bool { return recorder.Summarize().TotalVisits == 5 })

	if got := len(recorder.Visits(0)); got != 2 {
		t.Errorf("retained %d visits, want 2", got)
	}
	if recorder.Visits(0)[0].VisitID != "v4" {
		t.Errorf("newest retained = %q", recorder.Visits(0)[0].VisitID)
	}
}

func TestRecorderSummarize(t *testing.T) {
	bus, recorder := startRecorder(t, 100)

	paths := []string{"/a", "/a", "/b"}
	for i, p := range paths {
		err := bus.PublishVisit(events.Visit{
			VisitID:    fmt.Sprintf("v%d", i),
			IPAddress:  fmt.Sprintf("10.0.0.%d", i%2),
			Path:       p,
			StatusCode: 200,
		})
		if err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	if err := bus.PublishSecurityEvent(events.SecurityEvent{EventID: "e1", EventType: "xss_attack"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	waitFor(t, func() bool {
		s := recorder.Summarize()
		return s.TotalVisits == 3 && s.SecurityEvents == 1
	})

	summary := recorder.Summarize()
	if summary.UniqueVisitors != 2 {
		t.Errorf("unique visitors = %d, want 2", summary.UniqueVisitors)
	}
	if summary.StatusCounts[200] != 3 {
		t.Errorf("status counts = %v", summary.StatusCounts)
	}
	if len(summary.TopPaths) == 0 || summary.TopPaths[0].Path != "/a" || summary.TopPaths[0].Count != 2 {
		t.Errorf("top paths = %v", summary.TopPaths)
	}
	if summary.EventsByType["xss_attack"] != 1 {
		t.Errorf("events by type = %v", summary.EventsByType)
	}
}
