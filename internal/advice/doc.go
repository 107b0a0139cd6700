// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package advice builds personalized skincare routines and deal
// commentary. Routine structures come from an external text-generation
// model when one is configured; without a model, or when the model
// response cannot be parsed, a curated default routine is served
// instead so the endpoint always succeeds.
package advice
