// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package store

import (
	"context"
	"errors"

	"github.com/velora-labs/skinmatch/internal/models"
)

// ErrProductNotFound is returned when no product exists for the
// requested source and external ID.
var ErrProductNotFound = errors.New("product not found")

// ErrMissingKey is returned when a product lacks the source or external
// ID needed to key it.
var ErrMissingKey = errors.New("product source and external_id are required")

// ProductStore persists products encountered during recommendation
// runs.
//
// Upsert is keyed by (Source, ExternalID): inserting a new product
// assigns it a fresh ID and sets FirstSeenAt, while upserting a known
// product updates its mutable fields and LastSeenAt but never changes
// the ID or FirstSeenAt.
type ProductStore interface {
	// Upsert inserts or updates a product and returns the stored record.
	Upsert(ctx context.Context, p *models.Product) (*models.StoredProduct, error)

	// Get retrieves a product by source and external ID.
	Get(ctx context.Context, source, externalID string) (*models.StoredProduct, error)

	// Count returns the number of stored products.
	Count(ctx context.Context) (int, error)

	// Close releases underlying resources.
	Close() error
}
