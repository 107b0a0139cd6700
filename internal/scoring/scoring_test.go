// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package scoring

import (
	"math"
	"strings"
	"testing"

	"github.com/velora-labs/skinmatch/internal/models"
	"github.com/velora-labs/skinmatch/internal/profile"
)

func floatPtr(f float64) *float64 { return &f }

func testProfile(t *testing.T, p models.SkinProfile) *profile.Normalized {
	t.Helper()
	n, err := profile.Normalize(&p)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return n
}

func TestScoreFullMatch(t *testing.T) {
	n := testProfile(t, models.SkinProfile{
		SkinType: "oily",
		Concerns: []string{"acne"},
	})
	p := &models.Product{
		SkinTypes: []string{"oily"},
		Tags:      []string{"acne"},
		Rating:    floatPtr(4.5),
	}

	// skin type 0.4 + concerns 0.3 + rating 0.1
	if got := Score(p, n); got != 0.8 {
		t.Errorf("expected score 0.8, got %v", got)
	}
}

func TestScoreBounds(t *testing.T) {
	n := testProfile(t, models.SkinProfile{
		SkinType:             "combination",
		Concerns:             []string{"acne", "pores", "redness"},
		PreferredIngredients: []string{"niacinamide", "zinc"},
		AvoidedIngredients:   []string{"fragrance", "alcohol"},
	})

	products := []*models.Product{
		{},
		{SkinTypes: []string{"combination"}, Tags: []string{"acne", "pores", "redness"},
			Ingredients: []string{"niacinamide", "zinc"}, Rating: floatPtr(5)},
		{Ingredients: []string{"fragrance", "alcohol"}},
		{SkinTypes: []string{"dry"}, Rating: floatPtr(1)},
	}

	for i, p := range products {
		got := Score(p, n)
		if got < 0.0 || got > 1.0 {
			t.Errorf("product %d: score %v out of [0,1]", i, got)
		}
		// rounded to 2 decimals
		if math.Round(got*100)/100 != got {
			t.Errorf("product %d: score %v not rounded to 2 decimals", i, got)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	n := testProfile(t, models.SkinProfile{
		SkinType:             "oily",
		Concerns:             []string{"acne", "pores"},
		PreferredIngredients: []string{"niacinamide"},
	})
	p := &models.Product{
		SkinTypes:   []string{"oily", "combination"},
		Tags:        []string{"acne"},
		Ingredients: []string{"niacinamide", "water"},
		Rating:      floatPtr(4.2),
	}

	first := Score(p, n)
	for i := 0; i < 100; i++ {
		if got := Score(p, n); got != first {
			t.Fatalf("score not deterministic: %v vs %v", got, first)
		}
	}
}

func TestScoreUniversalSkinTypeHalfWeight(t *testing.T) {
	n := testProfile(t, models.SkinProfile{SkinType: "dry"})
	p := &models.Product{SkinTypes: []string{"ALL"}}

	if got := Score(p, n); got != 0.2 {
		t.Errorf("universal product should get half skin-type weight, got %v", got)
	}
}

func TestScoreConcernsProportional(t *testing.T) {
	n := testProfile(t, models.SkinProfile{
		SkinType: "normal",
		Concerns: []string{"acne", "pores", "redness", "dullness"},
	})
	// Addresses 2 of 4 concerns, no skin-type match.
	p := &models.Product{Tags: []string{"acne", "pores"}}

	if got := Score(p, n); got != 0.15 {
		t.Errorf("expected 0.3 * 2/4 = 0.15, got %v", got)
	}
}

func TestScoreEmptyConcernsContributeZero(t *testing.T) {
	n := testProfile(t, models.SkinProfile{SkinType: "normal"})
	p := &models.Product{Tags: []string{"acne", "redness", "pores"}}

	if got := Score(p, n); got != 0.0 {
		t.Errorf("concerns term should be 0 for empty profile concerns, got %v", got)
	}
}

func TestScoreAvoidedPenalty(t *testing.T) {
	n := testProfile(t, models.SkinProfile{
		SkinType:           "oily",
		AvoidedIngredients: []string{"fragrance", "alcohol"},
	})

	clean := &models.Product{SkinTypes: []string{"oily"}, Ingredients: []string{"water"}}
	if got := Score(clean, n); got != 0.4 {
		t.Errorf("no avoided ingredients present: expected 0.4, got %v", got)
	}

	dirty := &models.Product{SkinTypes: []string{"oily"}, Ingredients: []string{"fragrance"}}
	// 0.4 - 0.1 * 1/2 = 0.35
	if got := Score(dirty, n); got != 0.35 {
		t.Errorf("one of two avoided present: expected 0.35, got %v", got)
	}
}

func TestScorePreferredIngredientsProportional(t *testing.T) {
	n := testProfile(t, models.SkinProfile{
		SkinType:             "dry",
		PreferredIngredients: []string{"hyaluronic acid", "ceramides", "squalane", "glycerin"},
	})
	p := &models.Product{Ingredients: []string{"Hyaluronic Acid", "water"}}

	if got := Score(p, n); got != 0.05 {
		t.Errorf("expected 0.2 * 1/4 = 0.05, got %v", got)
	}
}

func TestScoreRatingThreshold(t *testing.T) {
	n := testProfile(t, models.SkinProfile{SkinType: "oily"})

	tests := []struct {
		rating *float64
		want   float64
	}{
		{floatPtr(4.0), 0.1},
		{floatPtr(3.9), 0.0},
		{nil, 0.0},
	}

	for _, tt := range tests {
		p := &models.Product{Rating: tt.rating}
		if got := Score(p, n); got != tt.want {
			t.Errorf("rating %v: expected %v, got %v", tt.rating, tt.want, got)
		}
	}
}

func TestScoreClampsAtZero(t *testing.T) {
	n := testProfile(t, models.SkinProfile{
		SkinType:           "oily",
		AvoidedIngredients: []string{"fragrance"},
	})
	p := &models.Product{SkinTypes: []string{"dry"}, Ingredients: []string{"fragrance"}}

	if got := Score(p, n); got != 0.0 {
		t.Errorf("score should clamp at 0, got %v", got)
	}
}

func TestExplainNamesContributingTerms(t *testing.T) {
	n := testProfile(t, models.SkinProfile{
		SkinType:             "oily",
		Concerns:             []string{"acne"},
		PreferredIngredients: []string{"niacinamide", "zinc", "retinol"},
		AvoidedIngredients:   []string{"fragrance"},
	})
	p := &models.Product{
		SkinTypes:   []string{"oily"},
		Tags:        []string{"acne"},
		Ingredients: []string{"niacinamide", "zinc", "retinol"},
		Rating:      floatPtr(4.7),
	}

	reason := Explain(p, n)
	for _, want := range []string{
		"suitable for oily skin",
		"addresses acne",
		"contains niacinamide, zinc",
		"free from ingredients you avoid",
		"highly rated (4.7/5)",
	} {
		if !strings.Contains(reason, want) {
			t.Errorf("expected %q in reason %q", want, reason)
		}
	}
	// Named ingredients are capped at 2.
	if strings.Contains(reason, "retinol") {
		t.Errorf("reason should name at most 2 ingredients, got %q", reason)
	}
}

func TestExplainFallback(t *testing.T) {
	n := testProfile(t, models.SkinProfile{SkinType: "normal"})
	p := &models.Product{}

	if got := Explain(p, n); got != "Matches your general preferences" {
		t.Errorf("expected generic fallback, got %q", got)
	}
}
