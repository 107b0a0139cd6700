// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package events carries security and visit events from the request
// screening middleware to the analytics recorder over an in-process
// Watermill pub/sub. Publishing is fire-and-forget: a slow or absent
// subscriber never delays request handling.
package events
