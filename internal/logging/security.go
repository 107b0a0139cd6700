// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package logging

import (
	"github.com/rs/zerolog"
)

// SecurityEvent represents a security-relevant event for audit logging:
// detected threats, rate-limit rejections, and block/unblock operations.
type SecurityEvent struct {
	// Event is the type of event (e.g., "sql_injection", "rate_limit_exceeded",
	// "ip_auto_blocked", "ip_manual_block").
	Event string
	// Severity is the event severity: warning, high, or critical.
	Severity string
	// IPAddress is the client's IP address.
	IPAddress string
	// Path is the request path (if applicable).
	Path string
	// Component is the request component the event was detected in
	// (path, query, form, body, headers, user_agent).
	Component string
	// Evidence is a truncated excerpt of the offending request data.
	Evidence string
	// Description is a human-readable summary of the event.
	Description string
}

// SecurityLogger provides structured logging for security events.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a new security logger bound to the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{
		logger: With().Str("component", "security").Logger(),
	}
}

// NewSecurityLoggerWithLogger creates a security logger with a custom zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{
		logger: logger.With().Str("component", "security").Logger(),
	}
}

// LogEvent logs a security event. Severity maps to log level: critical and
// high are logged at error and warn level respectively, everything else at
// info level.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	var e *zerolog.Event
	switch event.Severity {
	case "critical":
		e = l.logger.Error()
	case "high":
		e = l.logger.Warn()
	default:
		e = l.logger.Info()
	}

	e = e.Str("event", event.Event).Str("severity", event.Severity)

	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.Path != "" {
		e = e.Str("path", event.Path)
	}
	if event.Component != "" {
		e = e.Str("request_component", event.Component)
	}
	if event.Evidence != "" {
		e = e.Str("evidence", truncateString(event.Evidence, 200))
	}

	e.Msg(event.Description)
}

// truncateString truncates s to at most n bytes.
func truncateString(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
