// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package analytics

import (
	"context"
	"sort"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/velora-labs/skinmatch/internal/events"
	"github.com/velora-labs/skinmatch/internal/logging"
)

// defaultCapacity bounds each history when no capacity is given.
const defaultCapacity = 1000

// Summary is the aggregate traffic view.
type Summary struct {
	TotalVisits    int            `json:"total_visits"`
	UniqueVisitors int            `json:"unique_visitors"`
	StatusCounts   map[int]int    `json:"status_counts"`
	TopPaths       []PathCount    `json:"top_paths"`
	SecurityEvents int            `json:"security_events"`
	EventsByType   map[string]int `json:"events_by_type"`
}

// PathCount is one entry of the top-paths ranking.
type PathCount struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// Recorder subscribes to the bus and retains the most recent visits
// and security events. It implements suture's Service contract via
// Serve.
type Recorder struct {
	bus      *events.Bus
	capacity int

	mu             sync.RWMutex
	visits         []events.Visit
	securityEvents []events.SecurityEvent
	totalVisits    int
	totalEvents    int
}

// NewRecorder creates a recorder retaining up to capacity entries per
// history. capacity <= 0 uses the default.
func NewRecorder(bus *events.Bus, capacity int) *Recorder {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Recorder{bus: bus, capacity: capacity}
}

// Serve consumes both topics until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context) error {
	visits, err := r.bus.SubscribeVisits(ctx)
	if err != nil {
		return err
	}
	securityEvents, err := r.bus.SubscribeSecurityEvents(ctx)
	if err != nil {
		return err
	}

	logging.Info().Msg("Analytics recorder started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-visits:
			if !ok {
				return nil
			}
			r.consumeVisit(msg)
		case msg, ok := <-securityEvents:
			if !ok {
				return nil
			}
			r.consumeSecurityEvent(msg)
		}
	}
}

func (r *Recorder) consumeVisit(msg *message.Message) {
	defer msg.Ack()

	var visit events.Visit
	if err := json.Unmarshal(msg.Payload, &visit); err != nil {
		logging.Error().Err(err).Str("message_id", msg.UUID).Msg("Undecodable visit payload")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.totalVisits++
	r.visits = append(r.visits, visit)
	if len(r.visits) > r.capacity {
		r.visits = r.visits[1:]
	}
}

func (r *Recorder) consumeSecurityEvent(msg *message.Message) {
	defer msg.Ack()

	var ev events.SecurityEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		logging.Error().Err(err).Str("message_id", msg.UUID).Msg("Undecodable security event payload")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.totalEvents++
	r.securityEvents = append(r.securityEvents, ev)
	if len(r.securityEvents) > r.capacity {
		r.securityEvents = r.securityEvents[1:]
	}
}

// Visits returns up to limit retained visits, newest first. limit <= 0
// returns everything retained.
func (r *Recorder) Visits(limit int) []events.Visit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.visits)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]events.Visit, n)
	for i := 0; i < n; i++ {
		out[i] = r.visits[len(r.visits)-1-i]
	}
	return out
}

// SecurityEvents returns up to limit retained events, newest first.
func (r *Recorder) SecurityEvents(limit int) []events.SecurityEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.securityEvents)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]events.SecurityEvent, n)
	for i := 0; i < n; i++ {
		out[i] = r.securityEvents[len(r.securityEvents)-1-i]
	}
	return out
}

// Summarize aggregates the retained histories. Top paths are limited
// to the ten most visited.
func (r *Recorder) Summarize() Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	uniqueIPs := make(map[string]struct{})
	statusCounts := make(map[int]int)
	pathCounts := make(map[string]int)
	for _, v := range r.visits {
		uniqueIPs[v.IPAddress] = struct{}{}
		statusCounts[v.StatusCode]++
		pathCounts[v.Path]++
	}

	topPaths := make([]PathCount, 0, len(pathCounts))
	for path, count := range pathCounts {
		topPaths = append(topPaths, PathCount{Path: path, Count: count})
	}
	sort.Slice(topPaths, func(i, j int) bool {
		if topPaths[i].Count != topPaths[j].Count {
			return topPaths[i].Count > topPaths[j].Count
		}
		return topPaths[i].Path < topPaths[j].Path
	})
	if len(topPaths) > 10 {
		topPaths = topPaths[:10]
	}

	eventsByType := make(map[string]int)
	for _, ev := range r.securityEvents {
		eventsByType[ev.EventType]++
	}

	return Summary{
		TotalVisits:    r.totalVisits,
		UniqueVisitors: len(uniqueIPs),
		StatusCounts:   statusCounts,
		TopPaths:       topPaths,
		SecurityEvents: r.totalEvents,
		EventsByType:   eventsByType,
	}
}
