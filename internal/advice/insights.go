// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/velora-labs/skinmatch/internal/logging"
	"github.com/velora-labs/skinmatch/internal/models"
)

// DealAdvisor generates short commentary about a deal set. It
// implements the deal aggregator's InsightGenerator contract.
type DealAdvisor struct {
	client ChatClient
}

// NewDealAdvisor creates an advisor. client may be nil.
func NewDealAdvisor(client ChatClient) *DealAdvisor {
	return &DealAdvisor{client: client}
}

const insightsSystemPrompt = "You are a helpful shopping advisor who provides quick, actionable insights about product deals."

// DealInsights summarizes the price spread across the found deals.
// Returns ok=false when the model is unavailable, no deal carries a
// usable price, or the call fails; the deal payload then ships without
// commentary.
func (a *DealAdvisor) DealInsights(ctx context.Context, productName string, deals []models.DealRecord) (string, bool) {
	if a.client == nil || !a.client.Available() || len(deals) == 0 {
		return "", false
	}

	var prices []float64
	for _, d := range deals {
		if d.Price > 0 {
			prices = append(prices, d.Price)
		}
	}
	if len(prices) == 0 {
		return "", false
	}

	minPrice, maxPrice, sum := prices[0], prices[0], 0.0
	for _, p := range prices {
		if p < minPrice {
			minPrice = p
		}
		if p > maxPrice {
			maxPrice = p
		}
		sum += p
	}

	sellers := topSellers(deals, 3)

	prompt := fmt.Sprintf(`Provide a brief, helpful insight about these deals for %q:

- Found %d deals
- Price range: $%.2f - $%.2f
- Average price: $%.2f
- Top sellers: %s

In 1-2 sentences, highlight the best value and any notable findings. Be concise and actionable.`,
		productName, len(deals), minPrice, maxPrice, sum/float64(len(prices)), strings.Join(sellers, ", "))

	reply, err := a.client.Complete(ctx, insightsSystemPrompt, prompt)
	if err != nil {
		logging.Error().Err(err).Msg("Deal insight generation failed")
		return "", false
	}

	return strings.TrimSpace(reply), true
}

// topSellers returns up to n distinct seller names from the leading
// deals, which arrive sorted by price.
func topSellers(deals []models.DealRecord, n int) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range deals {
		if len(out) >= n {
			break
		}
		seller := d.Seller
		if seller == "" {
			seller = "Unknown"
		}
		if _, dup := seen[seller]; dup {
			continue
		}
		seen[seller] = struct{}{}
		out = append(out, seller)
	}
	return out
}
