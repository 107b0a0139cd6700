// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package models

import "time"

// Product is a candidate product normalized from an external source
// payload. Constructed fresh per recommendation request; persisted as a
// side effect keyed by (Source, ExternalID) with upsert semantics.
type Product struct {
	// ID is the persistent store identifier, populated after upsert.
	ID string `json:"product_id,omitempty"`

	// ExternalID identifies the product within its source catalog.
	ExternalID string `json:"external_id"`

	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Currency string `json:"currency"`
	URL      string `json:"url"`
	ImageURL string `json:"image_url"`

	// Source tags which external catalog the product came from.
	Source string `json:"source"`

	// Price is nullable: sources sometimes omit it, in which case the
	// budget filter drops the candidate when a budget is set.
	Price *float64 `json:"price"`

	// SkinTypes the product declares itself suitable for. May contain
	// "all" or "universal".
	SkinTypes []string `json:"skin_types"`

	// Tags are the concerns the product claims to address.
	Tags []string `json:"tags"`

	Ingredients []string `json:"ingredients"`

	// Rating is 0-5, nullable.
	Rating     *float64 `json:"rating"`
	NumReviews int      `json:"num_reviews"`
}

// StoredProduct is a Product as persisted, with store bookkeeping fields.
type StoredProduct struct {
	Product
	FirstSeenAt time.Time `json:"first_seen_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
}

// ScoredCandidate is a Product augmented with its match score and a
// human-readable justification. Transient - exists only within one
// recommendation request's lifetime.
type ScoredCandidate struct {
	Product
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Recommendation is the API shape of one recommended product.
type Recommendation struct {
	ProductID string   `json:"product_id,omitempty"`
	Name      string   `json:"name"`
	Brand     string   `json:"brand"`
	Price     *float64 `json:"price"`
	Currency  string   `json:"currency"`
	URL       string   `json:"url"`
	ImageURL  string   `json:"image_url"`
	Score     float64  `json:"score"`
	Reason    string   `json:"reason"`
}
