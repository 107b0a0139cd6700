// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package deals

import (
	"sort"

	"github.com/velora-labs/skinmatch/internal/models"
)

// Tier boundaries. Offers priced above AffordableMax and below
// LuxuryMin fall into neither bucket, keeping the mid-range out of the
// budget-vs-splurge comparison view.
const (
	AffordableMax = 30.0
	LuxuryMin     = 50.0

	// tierCap limits each bucket to a browsable number of offers.
	tierCap = 8
)

// Tier partitions deals into affordable and luxury buckets.
//
// Affordable holds offers priced in (0, AffordableMax], sorted by
// price ascending then rating descending. Luxury holds offers priced
// at or above LuxuryMin, sorted by rating descending then price
// descending. Zero-priced offers are excluded from both buckets.
func Tier(deals []models.DealRecord) models.TieredDeals {
	tiered := models.TieredDeals{
		Affordable: []models.DealRecord{},
		Luxury:     []models.DealRecord{},
	}

	for _, d := range deals {
		switch {
		case d.Price > 0 && d.Price <= AffordableMax:
			tiered.Affordable = append(tiered.Affordable, d)
		case d.Price >= LuxuryMin:
			tiered.Luxury = append(tiered.Luxury, d)
		}
	}

	sort.SliceStable(tiered.Affordable, func(i, j int) bool {
		a, b := tiered.Affordable[i], tiered.Affordable[j]
		if a.Price != b.Price {
			return a.Price < b.Price
		}
		return a.Rating > b.Rating
	})
	sort.SliceStable(tiered.Luxury, func(i, j int) bool {
		a, b := tiered.Luxury[i], tiered.Luxury[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.Price > b.Price
	})

	if len(tiered.Affordable) > tierCap {
		tiered.Affordable = tiered.Affordable[:tierCap]
	}
	if len(tiered.Luxury) > tierCap {
		tiered.Luxury = tiered.Luxury[:tierCap]
	}

	return tiered
}
