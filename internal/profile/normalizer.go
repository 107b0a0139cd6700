// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package profile canonicalizes skin profiles into a comparable form.
//
// Normalization happens exactly once at the request boundary; everything
// downstream (scoring, recommendation, routine building) assumes
// lowercased, trimmed, deduplicated values and ordered budget bounds.
package profile

import (
	"strings"

	"github.com/velora-labs/skinmatch/internal/models"
	"github.com/velora-labs/skinmatch/internal/validation"
)

// Normalized is a canonical skin profile. All string values are lowercase
// and trimmed; list fields are deduplicated preserving first-seen order.
type Normalized struct {
	SkinType             string   `json:"skin_type"`
	Concerns             []string `json:"concerns,omitempty"`
	BudgetMin            *float64 `json:"budget_min,omitempty"`
	BudgetMax            *float64 `json:"budget_max,omitempty"`
	PreferredIngredients []string `json:"preferred_ingredients,omitempty"`
	AvoidedIngredients   []string `json:"avoided_ingredients,omitempty"`
}

// HasBudget reports whether the profile constrains price at all.
func (n *Normalized) HasBudget() bool {
	return n.BudgetMin != nil || n.BudgetMax != nil
}

// Normalize validates and canonicalizes a submitted profile. Validation
// failures carry every violated constraint; see validation.ValidateStruct.
func Normalize(p *models.SkinProfile) (*Normalized, error) {
	if err := validation.ValidateStruct(p); err != nil {
		return nil, err
	}

	return &Normalized{
		SkinType:             strings.ToLower(strings.TrimSpace(p.SkinType)),
		Concerns:             canonicalizeList(p.Concerns),
		BudgetMin:            p.BudgetMin,
		BudgetMax:            p.BudgetMax,
		PreferredIngredients: canonicalizeList(p.PreferredIngredients),
		AvoidedIngredients:   canonicalizeList(p.AvoidedIngredients),
	}, nil
}

// canonicalizeList lowercases, trims, and deduplicates values, dropping
// empties and preserving first-seen order.
func canonicalizeList(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// ToSet converts a canonical list to a membership set.
func ToSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// LowerSet lowercases raw values into a membership set. Used for product
// fields, which are not canonicalized at the boundary.
func LowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}
