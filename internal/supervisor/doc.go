// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package supervisor runs the service tree: the analytics recorder in
// the messaging layer and the HTTP server in the api layer, each
// restarted independently on failure.
package supervisor
