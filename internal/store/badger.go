// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/velora-labs/skinmatch/internal/models"
)

// Key prefix for BadgerDB storage
const productKeyPrefix = "product:"

// BadgerProductStore implements ProductStore using BadgerDB for durable
// storage across restarts.
type BadgerProductStore struct {
	db *badger.DB

	// now is swapped in tests to control timestamps.
	now func() time.Time
}

// NewBadgerProductStore creates a BadgerDB-backed product store over an
// already-open database.
func NewBadgerProductStore(db *badger.DB) *BadgerProductStore {
	return &BadgerProductStore{db: db, now: time.Now}
}

// OpenBadgerProductStore opens a BadgerDB at path and wraps it in a
// product store. An empty path opens an in-memory database.
func OpenBadgerProductStore(path string) (*BadgerProductStore, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for products: %w", err)
	}

	return NewBadgerProductStore(db), nil
}

func productKey(source, externalID string) []byte {
	return []byte(productKeyPrefix + source + ":" + externalID)
}

// Upsert inserts or updates a product keyed by (Source, ExternalID).
// On update the stored ID and FirstSeenAt are preserved and the
// incoming product's ID field is populated from the stored record.
func (s *BadgerProductStore) Upsert(ctx context.Context, p *models.Product) (*models.StoredProduct, error) {
	if p.Source == "" || p.ExternalID == "" {
		return nil, ErrMissingKey
	}

	now := s.now()
	key := productKey(p.Source, p.ExternalID)

	var stored models.StoredProduct
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			stored = models.StoredProduct{
				Product:     *p,
				FirstSeenAt: now,
				LastSeenAt:  now,
			}
			stored.ID = uuid.NewString()
		case err != nil:
			return fmt.Errorf("get product: %w", err)
		default:
			var existing models.StoredProduct
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &existing)
			}); err != nil {
				return fmt.Errorf("unmarshal product: %w", err)
			}
			stored = models.StoredProduct{
				Product:     *p,
				FirstSeenAt: existing.FirstSeenAt,
				LastSeenAt:  now,
			}
			stored.ID = existing.ID
		}

		data, err := json.Marshal(&stored)
		if err != nil {
			return fmt.Errorf("marshal product: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return nil, err
	}

	p.ID = stored.ID
	return &stored, nil
}

// Get retrieves a product by source and external ID.
func (s *BadgerProductStore) Get(ctx context.Context, source, externalID string) (*models.StoredProduct, error) {
	var stored models.StoredProduct

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(productKey(source, externalID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
	})
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// Count returns the number of stored products.
func (s *BadgerProductStore) Count(ctx context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(productKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *BadgerProductStore) Close() error {
	return s.db.Close()
}
