// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/velora-labs/skinmatch/internal/models"
)

func setupBadgerStore(t *testing.T) *BadgerProductStore {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open badger: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return NewBadgerProductStore(db)
}

func floatPtr(f float64) *float64 { return &f }

func sampleProduct() *models.Product {
	return &models.Product{
		ExternalID:  "ext-100",
		Source:      "real_time_product_search",
		Name:        "Gentle Foaming Cleanser",
		Brand:       "CeraVe",
		Price:       floatPtr(12.99),
		Currency:    "USD",
		SkinTypes:   []string{"oily", "combination"},
		Tags:        []string{"acne"},
		Ingredients: []string{"niacinamide"},
		Rating:      floatPtr(4.5),
	}
}

// stores returns both implementations so every test exercises the same
// contract against each.
func stores(t *testing.T) map[string]ProductStore {
	t.Helper()
	return map[string]ProductStore{
		"badger": setupBadgerStore(t),
		"memory": NewMemoryProductStore(),
	}
}

func TestUpsertInsert(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			stored, err := s.Upsert(ctx, sampleProduct())
			if err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}
			if stored.ID == "" {
				t.Error("expected generated ID on insert")
			}
			if stored.FirstSeenAt.IsZero() || stored.LastSeenAt.IsZero() {
				t.Error("expected timestamps to be set on insert")
			}
			if !stored.FirstSeenAt.Equal(stored.LastSeenAt) {
				t.Error("expected FirstSeenAt == LastSeenAt on insert")
			}

			count, err := s.Count(ctx)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if count != 1 {
				t.Errorf("Count = %d, want 1", count)
			}
		})
	}
}

func TestUpsertUpdatePreservesIdentity(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first, err := s.Upsert(ctx, sampleProduct())
			if err != nil {
				t.Fatalf("first Upsert failed: %v", err)
			}

			updated := sampleProduct()
			updated.Price = floatPtr(9.99)
			updated.Rating = floatPtr(4.7)
			updated.Name = "Gentle Foaming Cleanser 236ml"

			second, err := s.Upsert(ctx, updated)
			if err != nil {
				t.Fatalf("second Upsert failed: %v", err)
			}

			if second.ID != first.ID {
				t.Errorf("ID changed on upsert: %s -> %s", first.ID, second.ID)
			}
			if !second.FirstSeenAt.Equal(first.FirstSeenAt) {
				t.Errorf("FirstSeenAt changed on upsert: %v -> %v", first.FirstSeenAt, second.FirstSeenAt)
			}
			if *second.Price != 9.99 {
				t.Errorf("Price = %f, want 9.99", *second.Price)
			}
			if second.Name != "Gentle Foaming Cleanser 236ml" {
				t.Errorf("Name not updated: %s", second.Name)
			}

			count, err := s.Count(ctx)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if count != 1 {
				t.Errorf("Count = %d, want 1 (same key should not duplicate)", count)
			}
		})
	}
}

func TestUpsertSetsCallerID(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			p := sampleProduct()
			stored, err := s.Upsert(context.Background(), p)
			if err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}
			if p.ID != stored.ID {
				t.Errorf("caller product ID = %q, want %q", p.ID, stored.ID)
			}
		})
	}
}

func TestUpsertDistinctSources(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			a := sampleProduct()
			b := sampleProduct()
			b.Source = "other_catalog"

			sa, err := s.Upsert(ctx, a)
			if err != nil {
				t.Fatalf("Upsert a failed: %v", err)
			}
			sb, err := s.Upsert(ctx, b)
			if err != nil {
				t.Fatalf("Upsert b failed: %v", err)
			}

			if sa.ID == sb.ID {
				t.Error("same external ID from different sources must get distinct records")
			}

			count, _ := s.Count(ctx)
			if count != 2 {
				t.Errorf("Count = %d, want 2", count)
			}
		})
	}
}

func TestUpsertMissingKey(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			p := sampleProduct()
			p.ExternalID = ""
			if _, err := s.Upsert(context.Background(), p); !errors.Is(err, ErrMissingKey) {
				t.Errorf("expected ErrMissingKey, got %v", err)
			}
		})
	}
}

func TestGet(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := s.Get(ctx, "real_time_product_search", "ext-100"); !errors.Is(err, ErrProductNotFound) {
				t.Errorf("expected ErrProductNotFound, got %v", err)
			}

			stored, err := s.Upsert(ctx, sampleProduct())
			if err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}

			got, err := s.Get(ctx, "real_time_product_search", "ext-100")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got.ID != stored.ID {
				t.Errorf("Get ID = %q, want %q", got.ID, stored.ID)
			}
			if got.Brand != "CeraVe" {
				t.Errorf("Brand = %q, want CeraVe", got.Brand)
			}
		})
	}
}

func TestBadgerUpsertTimestamps(t *testing.T) {
	s := setupBadgerStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	ctx := context.Background()
	first, err := s.Upsert(ctx, sampleProduct())
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	s.now = func() time.Time { return base.Add(time.Hour) }
	second, err := s.Upsert(ctx, sampleProduct())
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	if !second.FirstSeenAt.Equal(first.FirstSeenAt) {
		t.Errorf("FirstSeenAt drifted: %v -> %v", first.FirstSeenAt, second.FirstSeenAt)
	}
	if !second.LastSeenAt.Equal(base.Add(time.Hour)) {
		t.Errorf("LastSeenAt = %v, want %v", second.LastSeenAt, base.Add(time.Hour))
	}
}
