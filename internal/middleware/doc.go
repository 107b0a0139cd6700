// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package middleware provides the HTTP middleware chain: request ID
// propagation, Prometheus instrumentation, gzip compression, response
// time monitoring, and the security gate that fronts every route.
//
// The security gate runs the block list, the sliding-window rate
// limiter, and the threat detector in that order, publishing security
// events and visit records to the event bus as requests pass through.
package middleware
