// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package api provides the HTTP surface: quiz validation,
// recommendations, deal search, routine building, and the
// JWT-protected admin group, all behind the security gate.
package api
