// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package models

// Valid vocabulary for profile fields. Validation rejects anything outside
// these sets with a full list of violations.
var (
	// ValidSkinTypes are the accepted skin_type values.
	ValidSkinTypes = []string{"oily", "dry", "combination", "normal", "sensitive"}

	// ValidConcerns are the accepted concern values.
	ValidConcerns = []string{
		"acne", "redness", "wrinkles", "dark-spots", "dryness",
		"oiliness", "sensitivity", "pores", "aging", "dullness",
	}
)

// SkinProfile describes a user's skincare preferences as submitted by the
// quiz. Budget bounds are optional; when both are present they must be
// non-negative and ordered. Preferred and avoided ingredients need not be
// disjoint - that is the caller's responsibility.
type SkinProfile struct {
	SkinType             string   `json:"skin_type" koanf:"skin_type" validate:"required,oneof=oily dry combination normal sensitive"`
	Concerns             []string `json:"concerns,omitempty" validate:"omitempty,dive,skinconcern"`
	BudgetMin            *float64 `json:"budget_min,omitempty" validate:"omitempty,gte=0"`
	BudgetMax            *float64 `json:"budget_max,omitempty" validate:"omitempty,gte=0"`
	PreferredIngredients []string `json:"preferred_ingredients,omitempty"`
	AvoidedIngredients   []string `json:"avoided_ingredients,omitempty"`
}

// HasBudget reports whether the profile constrains price at all.
func (p *SkinProfile) HasBudget() bool {
	return p.BudgetMin != nil || p.BudgetMax != nil
}
