// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/velora-labs/skinmatch/internal/logging"
)

// RoutineStep is one step of an AM or PM routine: a product category
// with guidance, not a specific product.
type RoutineStep struct {
	StepName       string   `json:"step_name"`
	Order          int      `json:"order"`
	WhyThisMatters string   `json:"why_this_matters"`
	WhatToLookFor  []string `json:"what_to_look_for"`
	WhatToAvoid    []string `json:"what_to_avoid"`
	SearchKeywords []string `json:"search_keywords"`
}

// Routine is a personalized AM and PM step structure.
type Routine struct {
	AM []RoutineStep `json:"AM"`
	PM []RoutineStep `json:"PM"`

	// Generated marks whether the structure came from the model (true)
	// or the curated default (false).
	Generated bool `json:"generated"`
}

// RoutineRequest carries the quiz answers the builder personalizes on.
type RoutineRequest struct {
	SkinType             string   `json:"skin_type"`
	Concerns             []string `json:"concerns"`
	Budget               string   `json:"budget"`
	Lifestyle            []string `json:"lifestyle"`
	PreferredIngredients []string `json:"preferred_ingredients"`
	AvoidedIngredients   []string `json:"avoided_ingredients"`
}

// Builder generates routine structures.
type Builder struct {
	client ChatClient
}

// NewBuilder creates a builder. client may be nil for
// fallback-only operation.
func NewBuilder(client ChatClient) *Builder {
	return &Builder{client: client}
}

const routineSystemPrompt = "You are a professional skincare expert who creates personalized skincare routines. Return responses in JSON format."

// BuildRoutine produces an AM/PM routine for the request. Model
// failures of any kind fall back to the curated default so the caller
// always receives a routine.
func (b *Builder) BuildRoutine(ctx context.Context, req RoutineRequest) Routine {
	if b.client == nil || !b.client.Available() {
		logging.Warn().Msg("Text-generation model not configured, using default routine")
		return DefaultRoutine()
	}

	reply, err := b.client.Complete(ctx, routineSystemPrompt, buildRoutinePrompt(req))
	if err != nil {
		logging.Error().Err(err).Msg("Routine generation failed, using default routine")
		return DefaultRoutine()
	}

	routine, err := parseRoutine(reply)
	if err != nil {
		logging.Error().Err(err).Msg("Unparseable routine response, using default routine")
		return DefaultRoutine()
	}

	logging.Info().Str("skin_type", req.SkinType).Msg("Generated routine structure")
	routine.Generated = true
	return routine
}

func orDefault(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

func buildRoutinePrompt(req RoutineRequest) string {
	var sb strings.Builder
	sb.WriteString("You are a professional skincare expert creating a personalized routine structure.\n\n")
	sb.WriteString("User Profile:\n")
	fmt.Fprintf(&sb, "- Skin Type: %s\n", req.SkinType)
	fmt.Fprintf(&sb, "- Main Concerns: %s\n", orDefault(req.Concerns, "general healthy skin"))
	fmt.Fprintf(&sb, "- Budget Preference: %s\n", req.Budget)
	fmt.Fprintf(&sb, "- Lifestyle: %s\n", orDefault(req.Lifestyle, "typical daily routine"))
	fmt.Fprintf(&sb, "- Prefers Ingredients: %s\n", orDefault(req.PreferredIngredients, "no specific preferences"))
	fmt.Fprintf(&sb, "- Wants to Avoid: %s\n", orDefault(req.AvoidedIngredients, "none"))
	sb.WriteString(`
Create a personalized AM and PM routine with STEP NAMES ONLY (no specific products).

For each step, specify:
1. step_name: The product category (e.g., "Cleanser", "Toner", "Serum", "Moisturizer", "Sunscreen")
2. order: Step number in routine
3. why_this_matters: Why this step is important for their specific skin concerns (1-2 sentences)
4. what_to_look_for: Key ingredients or product characteristics to seek
5. what_to_avoid: Ingredients to avoid
6. search_keywords: Keywords for product search

Guidelines:
- Always include SPF in the AM routine
- Adjust complexity to lifestyle: "minimal" means 3-4 steps, "extensive" means 6-8
- For acne concerns include BHA/salicylic acid products
- For aging concerns include retinol (PM) and vitamin C (AM)

Return a JSON object with "AM" and "PM" arrays of step objects and nothing else.`)
	return sb.String()
}

// parseRoutine decodes the model reply, tolerating surrounding prose
// by extracting the outermost JSON object.
func parseRoutine(reply string) (Routine, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return Routine{}, fmt.Errorf("no JSON object in reply")
	}

	var routine Routine
	if err := json.Unmarshal([]byte(reply[start:end+1]), &routine); err != nil {
		return Routine{}, fmt.Errorf("decode routine: %w", err)
	}
	if len(routine.AM) == 0 && len(routine.PM) == 0 {
		return Routine{}, fmt.Errorf("routine has no steps")
	}
	return routine, nil
}

// DefaultRoutine is the curated structure served when generation is
// unavailable.
func DefaultRoutine() Routine {
	return Routine{
		AM: []RoutineStep{
			{
				StepName:       "Cleanser",
				Order:          1,
				WhyThisMatters: "Removes overnight oils and prepares skin for treatment",
				WhatToLookFor:  []string{"gentle surfactants", "glycerin", "ceramides"},
				WhatToAvoid:    []string{"sulfates", "harsh alcohols"},
				SearchKeywords: []string{"gentle cleanser", "morning cleanser"},
			},
			{
				StepName:       "Toner",
				Order:          2,
				WhyThisMatters: "Balances pH and preps skin for better absorption",
				WhatToLookFor:  []string{"hyaluronic acid", "niacinamide", "glycerin"},
				WhatToAvoid:    []string{"alcohol", "fragrance"},
				SearchKeywords: []string{"hydrating toner", "balancing toner"},
			},
			{
				StepName:       "Serum",
				Order:          3,
				WhyThisMatters: "Delivers concentrated active ingredients",
				WhatToLookFor:  []string{"vitamin C", "antioxidants", "niacinamide"},
				WhatToAvoid:    []string{"fragrance", "essential oils"},
				SearchKeywords: []string{"vitamin C serum", "antioxidant serum"},
			},
			{
				StepName:       "Moisturizer",
				Order:          4,
				WhyThisMatters: "Locks in hydration and protects skin barrier",
				WhatToLookFor:  []string{"ceramides", "peptides", "hyaluronic acid"},
				WhatToAvoid:    []string{"heavy oils", "comedogenic ingredients"},
				SearchKeywords: []string{"day moisturizer", "hydrating cream"},
			},
			{
				StepName:       "Sunscreen",
				Order:          5,
				WhyThisMatters: "Protects against UV damage and premature aging",
				WhatToLookFor:  []string{"SPF 30+", "broad spectrum", "PA+++"},
				WhatToAvoid:    []string{"oxybenzone", "octinoxate"},
				SearchKeywords: []string{"facial sunscreen", "SPF moisturizer"},
			},
		},
		PM: []RoutineStep{
			{
				StepName:       "Cleanser",
				Order:          1,
				WhyThisMatters: "Removes makeup, sunscreen, and daily buildup",
				WhatToLookFor:  []string{"gentle surfactants", "oil cleansers", "micellar water"},
				WhatToAvoid:    []string{"sulfates", "harsh scrubs"},
				SearchKeywords: []string{"double cleanse", "makeup remover cleanser"},
			},
			{
				StepName:       "Toner",
				Order:          2,
				WhyThisMatters: "Restores pH balance after cleansing",
				WhatToLookFor:  []string{"hyaluronic acid", "glycerin", "aloe vera"},
				WhatToAvoid:    []string{"alcohol", "fragrance"},
				SearchKeywords: []string{"hydrating toner", "soothing toner"},
			},
			{
				StepName:       "Treatment Serum",
				Order:          3,
				WhyThisMatters: "Targets specific concerns while skin repairs overnight",
				WhatToLookFor:  []string{"retinol", "niacinamide", "peptides"},
				WhatToAvoid:    []string{"fragrance", "essential oils"},
				SearchKeywords: []string{"night serum", "anti-aging serum"},
			},
			{
				StepName:       "Moisturizer",
				Order:          4,
				WhyThisMatters: "Seals in treatment and supports overnight repair",
				WhatToLookFor:  []string{"ceramides", "hyaluronic acid", "squalane"},
				WhatToAvoid:    []string{"heavy fragrances", "comedogenic oils"},
				SearchKeywords: []string{"night cream", "repair moisturizer"},
			},
		},
	}
}
