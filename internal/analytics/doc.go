// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package analytics consumes visit and security events from the bus
// into bounded in-memory histories, serving the admin surface's
// traffic and security views.
package analytics
