// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package events

import (
	"time"
)

// Topics for the in-process bus.
const (
	TopicSecurity = "security.events"
	TopicVisits   = "analytics.visits"
)

// SecurityEvent is the bus payload for one security occurrence:
// a threat match, a rate limit rejection, a blocked-IP attempt, or an
// HTTP error worth auditing.
type SecurityEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	IPAddress   string    `json:"ip_address"`
	Path        string    `json:"path"`
	Evidence    string    `json:"evidence,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Visit is the bus payload for one completed request.
type Visit struct {
	VisitID    string    `json:"visit_id"`
	IPAddress  string    `json:"ip_address"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	UserAgent  string    `json:"user_agent"`
	Referrer   string    `json:"referrer,omitempty"`
	DurationMs float64   `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}
