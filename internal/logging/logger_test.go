// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitAndLog(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf, Timestamp: true})

	Info().Str("component", "test").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"component":"test"`) {
		t.Errorf("expected component field in output, got %q", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSecurityLoggerSeverityLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	sl := NewSecurityLoggerWithLogger(logger)

	sl.LogEvent(&SecurityEvent{
		Event:       "sql_injection",
		Severity:    "critical",
		IPAddress:   "203.0.113.9",
		Component:   "query",
		Evidence:    "' OR 1=1 --",
		Description: "SQL injection detected in query",
	})

	out := buf.String()
	if !strings.Contains(out, `"level":"error"`) {
		t.Errorf("critical severity should log at error level, got %q", out)
	}
	if !strings.Contains(out, `"ip":"203.0.113.9"`) {
		t.Errorf("expected ip field, got %q", out)
	}
}

func TestSecurityLoggerTruncatesEvidence(t *testing.T) {
	var buf bytes.Buffer
	sl := NewSecurityLoggerWithLogger(zerolog.New(&buf))

	sl.LogEvent(&SecurityEvent{
		Event:    "xss_attack",
		Severity: "high",
		Evidence: strings.Repeat("x", 500),
	})

	if strings.Contains(buf.String(), strings.Repeat("x", 201)) {
		t.Error("evidence should be truncated to 200 bytes")
	}
}

func TestSlogHandlerWritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer Init(DefaultConfig())

	slogger := slog.New(NewSlogHandler())
	slogger.Info("supervisor started", "service", "http")

	out := buf.String()
	if !strings.Contains(out, "supervisor started") {
		t.Errorf("expected message via slog adapter, got %q", out)
	}
	if !strings.Contains(out, `"service":"http"`) {
		t.Errorf("expected attr via slog adapter, got %q", out)
	}
}
