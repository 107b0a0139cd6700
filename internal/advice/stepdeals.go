// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package advice

import (
	"context"
	"strings"

	"github.com/velora-labs/skinmatch/internal/deals"
	"github.com/velora-labs/skinmatch/internal/models"
)

// stepSearchResults is how many offers one step search requests before
// tiering; wide enough to fill both buckets.
const stepSearchResults = 30

// perStepTierCap limits each routine step's contribution to the
// combined shopping view.
const perStepTierCap = 2

// DealSearcher is the slice of the deal aggregator the step-deal
// lookups need.
type DealSearcher interface {
	Search(ctx context.Context, productName string, loc *models.Location, maxResults int) (*models.DealsResult, bool)
}

// StepDealFinder resolves routine steps to tiered purchase options.
type StepDealFinder struct {
	searcher DealSearcher
}

// NewStepDealFinder creates a finder over the deal aggregator.
func NewStepDealFinder(searcher DealSearcher) *StepDealFinder {
	return &StepDealFinder{searcher: searcher}
}

// stepQuery joins a step's search keywords with the profile context
// into one search string.
func stepQuery(step RoutineStep, skinType string, concerns []string) string {
	keywords := step.SearchKeywords
	if len(keywords) == 0 {
		keywords = []string{step.StepName}
	}
	parts := append([]string{}, keywords...)
	if skinType != "" {
		parts = append(parts, skinType)
	}
	parts = append(parts, concerns...)

	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// StepDeals finds tiered offers for one routine step.
func (f *StepDealFinder) StepDeals(ctx context.Context, step RoutineStep, skinType string, concerns []string) models.TieredDeals {
	result, _ := f.searcher.Search(ctx, stepQuery(step, skinType, concerns), nil, stepSearchResults)
	return deals.Tier(result.AllDeals)
}

// RoutineDeals assembles a combined affordable/luxury shopping view
// across every step of a routine, capped per step so one step cannot
// crowd out the rest.
func (f *StepDealFinder) RoutineDeals(ctx context.Context, routine Routine, skinType string, concerns []string) models.TieredDeals {
	combined := models.TieredDeals{
		Affordable: []models.DealRecord{},
		Luxury:     []models.DealRecord{},
	}

	steps := append(append([]RoutineStep{}, routine.AM...), routine.PM...)
	for _, step := range steps {
		tiered := f.StepDeals(ctx, step, skinType, concerns)
		combined.Affordable = append(combined.Affordable, capDeals(tiered.Affordable, perStepTierCap)...)
		combined.Luxury = append(combined.Luxury, capDeals(tiered.Luxury, perStepTierCap)...)
	}

	return combined
}

func capDeals(deals []models.DealRecord, n int) []models.DealRecord {
	if len(deals) <= n {
		return deals
	}
	return deals[:n]
}
