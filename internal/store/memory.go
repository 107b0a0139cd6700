// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/velora-labs/skinmatch/internal/models"
)

// MemoryProductStore implements ProductStore with an in-memory map.
// Suitable for tests and ephemeral deployments with no storage path
// configured.
type MemoryProductStore struct {
	mu       sync.RWMutex
	products map[string]models.StoredProduct

	now func() time.Time
}

// NewMemoryProductStore creates an empty in-memory product store.
func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{
		products: make(map[string]models.StoredProduct),
		now:      time.Now,
	}
}

// Upsert inserts or updates a product keyed by (Source, ExternalID).
func (s *MemoryProductStore) Upsert(ctx context.Context, p *models.Product) (*models.StoredProduct, error) {
	if p.Source == "" || p.ExternalID == "" {
		return nil, ErrMissingKey
	}

	now := s.now()
	key := string(productKey(p.Source, p.ExternalID))

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := models.StoredProduct{
		Product:    *p,
		LastSeenAt: now,
	}
	if existing, ok := s.products[key]; ok {
		stored.ID = existing.ID
		stored.FirstSeenAt = existing.FirstSeenAt
	} else {
		stored.ID = uuid.NewString()
		stored.FirstSeenAt = now
	}
	s.products[key] = stored

	p.ID = stored.ID
	out := stored
	return &out, nil
}

// Get retrieves a product by source and external ID.
func (s *MemoryProductStore) Get(ctx context.Context, source, externalID string) (*models.StoredProduct, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.products[string(productKey(source, externalID))]
	if !ok {
		return nil, ErrProductNotFound
	}
	out := stored
	return &out, nil
}

// Count returns the number of stored products.
func (s *MemoryProductStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryProductStore) Close() error {
	return nil
}
