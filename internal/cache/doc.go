// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package cache provides a thread-safe in-memory TTL cache used by the
// deal aggregator to avoid repeated upstream searches. Entries expire
// after a configurable duration and a background janitor removes stale
// entries periodically.
package cache
