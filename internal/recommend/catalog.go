// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package recommend

import (
	"context"

	"github.com/velora-labs/skinmatch/internal/models"
	"github.com/velora-labs/skinmatch/internal/profile"
)

// CatalogSource serves candidates from a fixed product list. It backs
// deployments without live retailer integrations and keeps the
// pipeline exercisable in demos and tests.
type CatalogSource struct {
	name     string
	products []models.Product
}

// NewCatalogSource wraps a fixed product list as a candidate source.
func NewCatalogSource(name string, products []models.Product) *CatalogSource {
	return &CatalogSource{name: name, products: products}
}

// Name returns the catalog's source identifier.
func (s *CatalogSource) Name() string { return s.name }

// Fetch returns the full catalog; filtering happens downstream in the
// pipeline.
func (s *CatalogSource) Fetch(ctx context.Context, n *profile.Normalized) ([]models.Product, error) {
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func fp(f float64) *float64 { return &f }

// DefaultCatalog is a small curated catalog spanning the supported
// skin types and concerns.
func DefaultCatalog() []models.Product {
	return []models.Product{
		{
			ExternalID:  "SEP001",
			Name:        "CeraVe Foaming Facial Cleanser",
			Brand:       "CeraVe",
			Price:       fp(14.99),
			Currency:    "USD",
			URL:         "https://www.sephora.com/product/foaming-facial-cleanser",
			ImageURL:    "https://images.example.com/cerave-cleanser.jpg",
			Source:      "sephora",
			SkinTypes:   []string{"oily", "combination", "normal"},
			Tags:        []string{"cleanser", "daily-use", "fragrance-free"},
			Ingredients: []string{"niacinamide", "hyaluronic acid", "ceramides"},
			Rating:      fp(4.5),
			NumReviews:  1250,
		},
		{
			ExternalID:  "SEP002",
			Name:        "The Ordinary Niacinamide 10% + Zinc 1%",
			Brand:       "The Ordinary",
			Price:       fp(5.90),
			Currency:    "USD",
			URL:         "https://www.sephora.com/product/niacinamide-zinc",
			ImageURL:    "https://images.example.com/ordinary-niacinamide.jpg",
			Source:      "sephora",
			SkinTypes:   []string{"oily", "combination"},
			Tags:        []string{"serum", "acne", "pore-minimizing"},
			Ingredients: []string{"niacinamide", "zinc"},
			Rating:      fp(4.3),
			NumReviews:  2100,
		},
		{
			ExternalID:  "SEP003",
			Name:        "La Roche-Posay Effaclar Duo",
			Brand:       "La Roche-Posay",
			Price:       fp(19.99),
			Currency:    "USD",
			URL:         "https://www.sephora.com/product/effaclar-duo",
			ImageURL:    "https://images.example.com/lrp-effaclar.jpg",
			Source:      "sephora",
			SkinTypes:   []string{"oily"},
			Tags:        []string{"moisturizer", "acne"},
			Ingredients: []string{"benzoyl peroxide", "niacinamide"},
			Rating:      fp(4.6),
			NumReviews:  890,
		},
		{
			ExternalID:  "AMZ001",
			Name:        "Neutrogena Oil-Free Acne Wash",
			Brand:       "Neutrogena",
			Price:       fp(8.99),
			Currency:    "USD",
			URL:         "https://www.amazon.com/dp/AMZ001",
			ImageURL:    "https://images.example.com/neutrogena-wash.jpg",
			Source:      "amazon",
			SkinTypes:   []string{"oily"},
			Tags:        []string{"cleanser", "acne"},
			Ingredients: []string{"salicylic acid"},
			Rating:      fp(4.4),
			NumReviews:  3500,
		},
		{
			ExternalID:  "AMZ002",
			Name:        "Paula's Choice 2% BHA Liquid Exfoliant",
			Brand:       "Paula's Choice",
			Price:       fp(32.00),
			Currency:    "USD",
			URL:         "https://www.amazon.com/dp/AMZ002",
			ImageURL:    "https://images.example.com/paulas-choice.jpg",
			Source:      "amazon",
			SkinTypes:   []string{"all"},
			Tags:        []string{"exfoliant", "pores"},
			Ingredients: []string{"salicylic acid", "green tea"},
			Rating:      fp(4.7),
			NumReviews:  5200,
		},
		{
			ExternalID:  "AMZ003",
			Name:        "Vanicream Gentle Facial Cleanser",
			Brand:       "Vanicream",
			Price:       fp(9.49),
			Currency:    "USD",
			URL:         "https://www.amazon.com/dp/AMZ003",
			ImageURL:    "https://images.example.com/vanicream-cleanser.jpg",
			Source:      "amazon",
			SkinTypes:   []string{"sensitive", "dry", "normal"},
			Tags:        []string{"cleanser", "sensitivity", "fragrance-free"},
			Ingredients: []string{"glycerin"},
			Rating:      fp(4.6),
			NumReviews:  4100,
		},
		{
			ExternalID:  "SEP004",
			Name:        "First Aid Beauty Ultra Repair Cream",
			Brand:       "First Aid Beauty",
			Price:       fp(38.00),
			Currency:    "USD",
			URL:         "https://www.sephora.com/product/ultra-repair-cream",
			ImageURL:    "https://images.example.com/fab-repair.jpg",
			Source:      "sephora",
			SkinTypes:   []string{"dry", "sensitive"},
			Tags:        []string{"moisturizer", "dryness", "redness"},
			Ingredients: []string{"colloidal oatmeal", "shea butter", "ceramides"},
			Rating:      fp(4.5),
			NumReviews:  2700,
		},
		{
			ExternalID:  "SEP005",
			Name:        "Drunk Elephant C-Firma Fresh Day Serum",
			Brand:       "Drunk Elephant",
			Price:       fp(78.00),
			Currency:    "USD",
			URL:         "https://www.sephora.com/product/c-firma-day-serum",
			ImageURL:    "https://images.example.com/de-cfirma.jpg",
			Source:      "sephora",
			SkinTypes:   []string{"all"},
			Tags:        []string{"serum", "dullness", "aging", "dark-spots"},
			Ingredients: []string{"vitamin c", "ferulic acid"},
			Rating:      fp(4.1),
			NumReviews:  1900,
		},
	}
}
