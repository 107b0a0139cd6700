// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package recommend orchestrates the recommendation pipeline: fetch
// candidates from every configured source, filter by budget, score
// against the normalized profile, rank, persist the winners, and
// format the response.
//
// The pipeline is partial-failure tolerant throughout. A failed source
// contributes zero candidates, a malformed candidate is skipped, and a
// persistence failure drops only that item's stored ID. An empty
// result is a valid outcome, not an error.
package recommend
