// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package security implements the request-screening layer: a sliding
// window rate limiter, a signature-based threat detector, and an IP
// block list with automatic escalation.
//
// Screening order is fixed: block list first, then rate limit, then
// threat inspection. A request that accumulates three or more high or
// critical severity threat matches has its source IP blocked for all
// subsequent requests.
package security
