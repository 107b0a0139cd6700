// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package geo resolves client IP addresses to approximate locations
// for zip-scoped deal searches. Lookups are best effort: any failure
// degrades to a nil location and the deal search proceeds globally.
package geo
