// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package deals aggregates retail price offers for a product query.
// Results are fetched from configured upstream sources, sorted by
// price, cached per (query, zip) for a configurable TTL, and can be
// partitioned into affordable and luxury tiers for the routine views.
//
// Upstream calls run behind a circuit breaker and a client-side
// request throttle so a degraded source fails fast instead of stalling
// request handlers.
package deals
