// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package security

import (
	"regexp"
	"strings"
)

// ThreatCategory identifies the class of attack a signature detects.
type ThreatCategory string

const (
	ThreatSQLInjection        ThreatCategory = "sql_injection"
	ThreatXSSAttack           ThreatCategory = "xss_attack"
	ThreatPathTraversal       ThreatCategory = "path_traversal"
	ThreatCommandInjection    ThreatCategory = "command_injection"
	ThreatSuspiciousUserAgent ThreatCategory = "suspicious_user_agent"
)

// Severity levels assigned to threat categories.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
)

// evidenceLimit caps how much of the matched component is retained in
// a threat record.
const evidenceLimit = 200

// signatureSet groups the patterns for one threat category.
type signatureSet struct {
	category ThreatCategory
	severity string
	patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+expr))
	}
	return out
}

// signatures are compiled once at package load. All matching is
// case-insensitive.
var signatures = []signatureSet{
	{
		category: ThreatSQLInjection,
		severity: SeverityCritical,
		patterns: compileAll(
			`\bUNION\b.*\bSELECT\b`,
			`\bOR\b.*=.*`,
			`\bDROP\b.*\bTABLE\b`,
			`\bINSERT\b.*\bINTO\b`,
			`\bDELETE\b.*\bFROM\b`,
			`;.*--`,
			`\bEXEC\b.*\(`,
			`xp_cmdshell`,
		),
	},
	{
		category: ThreatXSSAttack,
		severity: SeverityHigh,
		patterns: compileAll(
			`<script[^>]*>.*</script>`,
			`javascript:`,
			`onerror\s*=`,
			`onload\s*=`,
			`<iframe`,
			`eval\s*\(`,
		),
	},
	{
		category: ThreatPathTraversal,
		severity: SeverityHigh,
		patterns: compileAll(
			`\.\./`,
			`\.\.\\`,
			`/etc/passwd`,
			`/etc/shadow`,
			`c:\\windows`,
			`/proc/`,
		),
	},
	{
		category: ThreatCommandInjection,
		severity: SeverityCritical,
		patterns: compileAll(
			`;\s*(ls|cat|wget|curl|nc|bash|sh)\s`,
			`\|\s*(ls|cat|wget|curl|nc|bash|sh)\s`,
			"`.*`",
			`\$\(.*\)`,
		),
	},
	{
		category: ThreatSuspiciousUserAgent,
		severity: SeverityHigh,
		patterns: compileAll(
			`(sqlmap|nikto|nmap|masscan|nessus)`,
			`(metasploit|burp|zap)`,
		),
	},
}

// RequestSurface is the inspectable content of one HTTP request.
type RequestSurface struct {
	Path      string
	Query     string
	Body      string
	Headers   string
	UserAgent string
}

// components returns the surface as named strings, in a fixed order so
// detection output is deterministic.
func (s RequestSurface) components() []struct{ name, data string } {
	return []struct{ name, data string }{
		{"path", s.Path},
		{"query", s.Query},
		{"body", s.Body},
		{"headers", s.Headers},
		{"user_agent", s.UserAgent},
	}
}

// Threat is one signature match found in a request.
type Threat struct {
	Category  ThreatCategory `json:"category"`
	Severity  string         `json:"severity"`
	Component string         `json:"component"`
	Pattern   string         `json:"pattern"`
	Evidence  string         `json:"evidence"`
}

// Detector inspects request surfaces against the signature sets and
// decides when an IP should be blocked.
type Detector struct {
	autoBlockThreshold int
}

// NewDetector creates a detector that recommends blocking once a
// single request accumulates threshold high or critical matches.
func NewDetector(autoBlockThreshold int) *Detector {
	return &Detector{autoBlockThreshold: autoBlockThreshold}
}

// Inspect scans every component of the surface against every
// signature. Each (pattern, component) match produces one Threat, so a
// payload hitting multiple patterns escalates quickly.
func (d *Detector) Inspect(surface RequestSurface) []Threat {
	var threats []Threat

	for _, set := range signatures {
		for _, pattern := range set.patterns {
			for _, c := range surface.components() {
				if c.data == "" {
					continue
				}
				if pattern.MatchString(c.data) {
					threats = append(threats, Threat{
						Category:  set.category,
						Severity:  set.severity,
						Component: c.name,
						Pattern:   pattern.String(),
						Evidence:  truncate(c.data, evidenceLimit),
					})
				}
			}
		}
	}

	return threats
}

// ShouldBlock reports whether the threats from one request cross the
// auto-block threshold. All signature severities currently count, as
// every category is high or critical.
func (d *Detector) ShouldBlock(threats []Threat) bool {
	count := 0
	for _, t := range threats {
		if t.Severity == SeverityCritical || t.Severity == SeverityHigh {
			count++
		}
	}
	return count >= d.autoBlockThreshold
}

// Describe renders a short human-readable summary for a threat, used
// in security event logs.
func (t Threat) Describe() string {
	caser := strings.NewReplacer("_", " ")
	return caser.Replace(string(t.Category)) + " detected in " + t.Component
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
