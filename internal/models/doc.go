// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package models defines the shared data shapes for SkinMatch: the API
// response envelope, skin profiles, candidate products, scored
// recommendations, and normalized deal records.
//
// Models carry json tags for the API surface and validate tags consumed by
// the validation package at the request boundary. They hold no behavior
// beyond trivial accessors; all domain logic lives in the scoring,
// recommend, deals, and security packages.
package models
