// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package recommend

import (
	"context"
	"sort"
	"time"

	"github.com/velora-labs/skinmatch/internal/logging"
	"github.com/velora-labs/skinmatch/internal/metrics"
	"github.com/velora-labs/skinmatch/internal/models"
	"github.com/velora-labs/skinmatch/internal/profile"
	"github.com/velora-labs/skinmatch/internal/scoring"
	"github.com/velora-labs/skinmatch/internal/store"
)

// CandidateSource supplies raw product candidates for a normalized
// profile. Implementations decode their upstream payloads into the
// common Product shape; the engine drops candidates that arrive
// structurally incomplete.
type CandidateSource interface {
	Name() string
	Fetch(ctx context.Context, n *profile.Normalized) ([]models.Product, error)
}

// sourceResult is the explicit per-source outcome of the fetch stage.
type sourceResult struct {
	name  string
	count int
	err   error
}

// Engine runs the recommendation pipeline.
type Engine struct {
	sources  []CandidateSource
	products store.ProductStore
	maxItems int
}

// NewEngine creates an engine returning at most maxItems
// recommendations per request.
func NewEngine(sources []CandidateSource, products store.ProductStore, maxItems int) *Engine {
	if maxItems <= 0 {
		maxItems = 3
	}
	return &Engine{
		sources:  sources,
		products: products,
		maxItems: maxItems,
	}
}

// Recommend produces the top-scored products for a profile.
//
// The profile is validated and canonicalized first; an invalid profile
// is the only error condition. An empty slice means no candidate
// matched, which callers must distinguish from failure.
func (e *Engine) Recommend(ctx context.Context, p *models.SkinProfile) ([]models.Recommendation, error) {
	start := time.Now()

	n, err := profile.Normalize(p)
	if err != nil {
		metrics.RecommendationRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	candidates := e.fetchAll(ctx, n)
	candidates = filterByBudget(candidates, n)

	scored := make([]models.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		product := c
		scored = append(scored, models.ScoredCandidate{
			Product: product,
			Score:   scoring.Score(&product, n),
			Reason:  scoring.Explain(&product, n),
		})
	}
	metrics.RecommendationCandidates.Observe(float64(len(scored)))

	// Stable sort keeps source-fetch order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > e.maxItems {
		scored = scored[:e.maxItems]
	}

	recs := make([]models.Recommendation, 0, len(scored))
	for i := range scored {
		e.persist(ctx, &scored[i])
		recs = append(recs, formatRecommendation(&scored[i]))
	}

	outcome := "success"
	if len(recs) == 0 {
		outcome = "no_candidates"
	}
	metrics.RecommendationRequests.WithLabelValues(outcome).Inc()
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())

	logging.Info().
		Str("skin_type", n.SkinType).
		Int("results", len(recs)).
		Dur("elapsed", time.Since(start)).
		Msg("Recommendation pipeline completed")

	return recs, nil
}

// fetchAll queries every source independently and aggregates the
// per-source outcomes. A source failure contributes zero candidates.
func (e *Engine) fetchAll(ctx context.Context, n *profile.Normalized) []models.Product {
	var all []models.Product
	results := make([]sourceResult, 0, len(e.sources))

	for _, src := range e.sources {
		products, err := src.Fetch(ctx, n)
		if err != nil {
			results = append(results, sourceResult{name: src.Name(), err: err})
			continue
		}

		kept := 0
		for _, p := range products {
			if !usable(&p) {
				logging.Debug().
					Str("source", src.Name()).
					Str("name", p.Name).
					Msg("Skipping incomplete candidate")
				continue
			}
			if p.Source == "" {
				p.Source = src.Name()
			}
			all = append(all, p)
			kept++
		}
		results = append(results, sourceResult{name: src.Name(), count: kept})
	}

	for _, r := range results {
		if r.err != nil {
			logging.Error().Err(r.err).Str("source", r.name).Msg("Candidate source failed")
		} else {
			logging.Debug().Str("source", r.name).Int("count", r.count).Msg("Candidate source fetched")
		}
	}

	return all
}

// usable reports whether a candidate carries the minimum fields the
// pipeline needs downstream.
func usable(p *models.Product) bool {
	return p.Name != "" && p.ExternalID != ""
}

// filterByBudget drops candidates priced outside the profile's budget
// bounds. With a budget set, a missing price also disqualifies the
// candidate. Without bounds the list passes through untouched.
func filterByBudget(candidates []models.Product, n *profile.Normalized) []models.Product {
	if !n.HasBudget() {
		return candidates
	}

	kept := candidates[:0]
	for _, c := range candidates {
		if c.Price == nil {
			continue
		}
		if n.BudgetMin != nil && *c.Price < *n.BudgetMin {
			continue
		}
		if n.BudgetMax != nil && *c.Price > *n.BudgetMax {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// persist upserts one selected candidate. Failure is logged and leaves
// the recommendation without a stored ID.
func (e *Engine) persist(ctx context.Context, c *models.ScoredCandidate) {
	if e.products == nil {
		return
	}
	stored, err := e.products.Upsert(ctx, &c.Product)
	if err != nil {
		metrics.ProductUpserts.WithLabelValues("error").Inc()
		logging.Error().Err(err).
			Str("source", c.Source).
			Str("external_id", c.ExternalID).
			Msg("Product upsert failed")
		return
	}
	metrics.ProductUpserts.WithLabelValues("ok").Inc()
	c.ID = stored.ID
}

func formatRecommendation(c *models.ScoredCandidate) models.Recommendation {
	return models.Recommendation{
		ProductID: c.ID,
		Name:      c.Name,
		Brand:     c.Brand,
		Price:     c.Price,
		Currency:  c.Currency,
		URL:       c.URL,
		ImageURL:  c.ImageURL,
		Score:     c.Score,
		Reason:    c.Reason,
	}
}
