// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package store persists the product catalog. Products discovered
// during recommendation runs are upserted keyed by their source and
// external identifier, so repeat encounters update mutable fields
// while keeping the original record identity and first-seen time.
//
// Two implementations are provided: a BadgerDB-backed store for
// durable catalogs and an in-memory store for tests and ephemeral
// deployments.
package store
