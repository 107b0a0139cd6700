// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package auth secures the admin surface. Login exchanges the
// configured admin credentials (bcrypt-hashed password) for an HS256
// JWT, and RequireAdmin gates the admin route group on a valid Bearer
// token.
package auth
