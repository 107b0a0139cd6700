// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package metrics exposes Prometheus instrumentation for the API
// surface, the deal aggregator, the security screening layer, and the
// recommendation engine. All collectors are registered with the
// default registry via promauto and served at /metrics.
package metrics
