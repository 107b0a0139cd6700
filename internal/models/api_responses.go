// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package models

import "time"

// APIResponse is the standard envelope for every API response.
//
// Status is "success" or "error". Data carries the payload on success and
// is null on error. Error is present only on error responses.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Cached is set when the response was served from the deal cache rather
// than a fresh upstream fetch.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Cached    bool      `json:"cached,omitempty"`
}

// APIError represents an error response with structured details.
//
// Common error codes:
//   - VALIDATION_ERROR: invalid input (Details lists every violation)
//   - RATE_LIMIT_EXCEEDED: too many requests (429)
//   - ACCESS_DENIED: blocked identity or detected threat (403)
//   - AUTHENTICATION_ERROR: invalid/missing admin credentials
//   - NOT_FOUND: resource doesn't exist
//   - INTERNAL_ERROR: unexpected server failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
