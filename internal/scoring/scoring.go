// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package scoring computes the match score between a candidate product and
// a normalized skin profile.
//
// The model is weighted additive-subtractive with fixed weights:
//
//	skin-type match        +0.4  (half weight for universal products)
//	concerns match         +0.3  x (matched / profile concerns)
//	preferred ingredients  +0.2  x (matched / preferred)
//	avoided ingredients    -0.1  x (present / avoided)
//	rating bonus           +0.1  when rating >= 4.0
//
// The final score is clamped to [0, 1] and rounded to 2 decimals. Score is
// a pure function: identical inputs always yield identical output.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/velora-labs/skinmatch/internal/models"
	"github.com/velora-labs/skinmatch/internal/profile"
)

// Scoring weights. These are product decisions, not tunables; changing one
// changes every stored score's meaning.
const (
	SkinTypeWeight             = 0.4
	ConcernsWeight             = 0.3
	PreferredIngredientsWeight = 0.2
	AvoidedIngredientsPenalty  = 0.1
	RatingBonus                = 0.1

	RatingThreshold = 4.0
)

// maxNamedIngredients caps how many matched ingredients Explain names.
const maxNamedIngredients = 2

// Score calculates the match score for a product against a profile.
// Missing or empty profile fields contribute zero to their term; ratio
// terms are skipped entirely when the profile list is empty, so there is
// never a division by zero.
func Score(p *models.Product, n *profile.Normalized) float64 {
	score := 0.0

	score += scoreSkinType(p, n)
	score += scoreConcerns(p, n)
	score += scorePreferredIngredients(p, n)
	score -= scoreAvoidedIngredients(p, n)
	score += scoreRating(p)

	score = math.Max(0.0, math.Min(1.0, score))
	return math.Round(score*100) / 100
}

// scoreSkinType awards full weight for an exact skin-type match and half
// weight when the product declares itself universal.
func scoreSkinType(p *models.Product, n *profile.Normalized) float64 {
	if n.SkinType == "" || len(p.SkinTypes) == 0 {
		return 0.0
	}

	types := profile.LowerSet(p.SkinTypes)
	if _, ok := types[n.SkinType]; ok {
		return SkinTypeWeight
	}
	if _, ok := types["all"]; ok {
		return SkinTypeWeight * 0.5
	}
	if _, ok := types["universal"]; ok {
		return SkinTypeWeight * 0.5
	}
	return 0.0
}

// scoreConcerns awards weight proportional to how many of the profile's
// concerns the product's tags address.
func scoreConcerns(p *models.Product, n *profile.Normalized) float64 {
	if len(n.Concerns) == 0 {
		return 0.0
	}

	tags := profile.LowerSet(p.Tags)
	matched := 0
	for _, c := range n.Concerns {
		if _, ok := tags[c]; ok {
			matched++
		}
	}
	if matched == 0 {
		return 0.0
	}

	return ConcernsWeight * float64(matched) / float64(len(n.Concerns))
}

// scorePreferredIngredients awards weight proportional to how many
// preferred ingredients the product contains. Matching is exact token
// match after lowercasing, not substring.
func scorePreferredIngredients(p *models.Product, n *profile.Normalized) float64 {
	if len(n.PreferredIngredients) == 0 {
		return 0.0
	}

	ingredients := profile.LowerSet(p.Ingredients)
	matched := 0
	for _, i := range n.PreferredIngredients {
		if _, ok := ingredients[i]; ok {
			matched++
		}
	}
	if matched == 0 {
		return 0.0
	}

	return PreferredIngredientsWeight * float64(matched) / float64(len(n.PreferredIngredients))
}

// scoreAvoidedIngredients returns the penalty proportional to how many of
// the profile's avoided ingredients appear in the product.
func scoreAvoidedIngredients(p *models.Product, n *profile.Normalized) float64 {
	if len(n.AvoidedIngredients) == 0 {
		return 0.0
	}

	ingredients := profile.LowerSet(p.Ingredients)
	present := 0
	for _, i := range n.AvoidedIngredients {
		if _, ok := ingredients[i]; ok {
			present++
		}
	}
	if present == 0 {
		return 0.0
	}

	return AvoidedIngredientsPenalty * float64(present) / float64(len(n.AvoidedIngredients))
}

// scoreRating awards the flat bonus for highly rated products.
func scoreRating(p *models.Product) float64 {
	if p.Rating != nil && *p.Rating >= RatingThreshold {
		return RatingBonus
	}
	return 0.0
}

// Explain builds a human-readable justification for a recommendation,
// naming each term that contributed. Matched items are listed in profile
// order so the sentence is deterministic for identical inputs.
func Explain(p *models.Product, n *profile.Normalized) string {
	var reasons []string

	types := profile.LowerSet(p.SkinTypes)
	if _, ok := types[n.SkinType]; ok && n.SkinType != "" {
		reasons = append(reasons, fmt.Sprintf("suitable for %s skin", n.SkinType))
	}

	tags := profile.LowerSet(p.Tags)
	var matchedConcerns []string
	for _, c := range n.Concerns {
		if _, ok := tags[c]; ok {
			matchedConcerns = append(matchedConcerns, c)
		}
	}
	if len(matchedConcerns) > 0 {
		reasons = append(reasons, "addresses "+strings.Join(matchedConcerns, ", "))
	}

	ingredients := profile.LowerSet(p.Ingredients)
	var matchedIngredients []string
	for _, i := range n.PreferredIngredients {
		if _, ok := ingredients[i]; ok {
			matchedIngredients = append(matchedIngredients, i)
			if len(matchedIngredients) == maxNamedIngredients {
				break
			}
		}
	}
	if len(matchedIngredients) > 0 {
		reasons = append(reasons, "contains "+strings.Join(matchedIngredients, ", "))
	}

	if len(n.AvoidedIngredients) > 0 {
		present := false
		for _, i := range n.AvoidedIngredients {
			if _, ok := ingredients[i]; ok {
				present = true
				break
			}
		}
		if !present {
			reasons = append(reasons, "free from ingredients you avoid")
		}
	}

	if p.Rating != nil && *p.Rating >= RatingThreshold {
		reasons = append(reasons, fmt.Sprintf("highly rated (%.1f/5)", *p.Rating))
	}

	if len(reasons) == 0 {
		return "Matches your general preferences"
	}
	return "Great choice: " + strings.Join(reasons, ", ")
}
