// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package deals

import (
	"context"
	"sort"
	"time"

	"github.com/velora-labs/skinmatch/internal/cache"
	"github.com/velora-labs/skinmatch/internal/logging"
	"github.com/velora-labs/skinmatch/internal/metrics"
	"github.com/velora-labs/skinmatch/internal/models"
)

// InsightGenerator produces optional commentary about a deal set.
// Implementations that are unavailable return ok=false and the result
// ships without insights.
type InsightGenerator interface {
	DealInsights(ctx context.Context, productName string, deals []models.DealRecord) (string, bool)
}

// Aggregator runs deal searches across the configured sources and
// caches assembled results.
type Aggregator struct {
	sources  []Source
	cache    *cache.Cache
	insights InsightGenerator

	now func() time.Time
}

// NewAggregator creates an aggregator caching results for ttl.
// insights may be nil.
func NewAggregator(sources []Source, ttl time.Duration, insights InsightGenerator) *Aggregator {
	return &Aggregator{
		sources:  sources,
		cache:    cache.New(ttl),
		insights: insights,
		now:      time.Now,
	}
}

// cacheKey scopes cached results by query and zip code. Searches with
// no location share the "global" scope.
func cacheKey(query string, loc *models.Location) string {
	zip := "global"
	if loc != nil && loc.ZipCode != "" {
		zip = loc.ZipCode
	}
	return query + "_" + zip
}

// Search fetches deals for a product query. Results are cached per
// (query, zip); a repeat search within the TTL returns the stored
// result unchanged and reports cached=true. Source failures degrade to
// an empty result with the failure recorded in Sources rather than an
// error.
func (a *Aggregator) Search(ctx context.Context, productName string, loc *models.Location, maxResults int) (*models.DealsResult, bool) {
	key := cacheKey(productName, loc)
	if entry, ok := a.cache.Get(key); ok {
		metrics.DealCacheHits.Inc()
		logging.Debug().Str("key", key).Msg("Returning cached deal results")
		return entry.(*models.DealsResult), true
	}
	metrics.DealCacheMisses.Inc()

	result := &models.DealsResult{
		ProductName: productName,
		Location:    locationLabel(loc),
		AllDeals:    []models.DealRecord{},
		Sources:     make([]models.SourceStatus, 0, len(a.sources)),
		Timestamp:   a.now(),
	}

	var all []models.DealRecord
	for _, src := range a.sources {
		records, err := src.Search(ctx, productName, maxResults)
		switch {
		case err != nil:
			logging.Error().Err(err).Str("source", src.Name()).Msg("Deal source failed")
			result.Sources = append(result.Sources, models.SourceStatus{
				Name:   src.Name(),
				Status: "error",
				Error:  err.Error(),
			})
		case len(records) == 0:
			result.Sources = append(result.Sources, models.SourceStatus{
				Name:   src.Name(),
				Status: "no_results",
			})
		default:
			result.Sources = append(result.Sources, models.SourceStatus{
				Name:   src.Name(),
				Count:  len(records),
				Status: "success",
			})
			all = append(all, records...)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Price < all[j].Price
	})

	result.TotalDeals = len(all)
	if len(all) > 0 {
		result.AllDeals = all
		best := all[0]
		result.BestDeal = &best

		if a.insights != nil {
			if text, ok := a.insights.DealInsights(ctx, productName, all); ok {
				result.Insights = text
			}
		}
	}

	a.cache.Set(key, result)
	return result, false
}

// CacheStats exposes the underlying cache statistics for the health
// surface.
func (a *Aggregator) CacheStats() cache.Stats {
	return a.cache.GetStats()
}

// Close releases the cache janitor.
func (a *Aggregator) Close() {
	a.cache.Close()
}

func locationLabel(loc *models.Location) string {
	if loc == nil {
		return "global"
	}
	if loc.ZipCode != "" {
		return loc.ZipCode
	}
	if loc.City != "" {
		return loc.City
	}
	return "global"
}
