// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package models

import "time"

// DealRecord is a normalized price offer from one retailer.
type DealRecord struct {
	ProductName   string  `json:"product_name"`
	Seller        string  `json:"seller"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
	URL           string  `json:"url"`
	ImageURL      string  `json:"image_url"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	InStock       bool    `json:"in_stock"`
	Source        string  `json:"source"`
}

// SourceStatus records the outcome of querying one deal source:
// success, no_results, or error.
type SourceStatus struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// DealsResult is the aggregate response for one deal search.
// BestDeal is the lowest-priced offer, null when no deals were found.
type DealsResult struct {
	ProductName string         `json:"product_name"`
	Location    string         `json:"location"`
	TotalDeals  int            `json:"total_deals"`
	BestDeal    *DealRecord    `json:"best_deal"`
	AllDeals    []DealRecord   `json:"all_deals"`
	Sources     []SourceStatus `json:"sources"`
	Timestamp   time.Time      `json:"timestamp"`

	// Insights is optional text-generation commentary; omitted when the
	// text-generation endpoint is unavailable.
	Insights string `json:"insights,omitempty"`
}

// TieredDeals partitions offers into affordable and luxury buckets for the
// routine step-deal view. Offers priced in the open interval (30, 50) land
// in neither bucket.
type TieredDeals struct {
	Affordable []DealRecord `json:"affordable"`
	Luxury     []DealRecord `json:"luxury"`
}

// Location is a reverse-geocoded position for an IP address.
type Location struct {
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	ZipCode  string `json:"zip_code"`
	Timezone string `json:"timezone"`
}
