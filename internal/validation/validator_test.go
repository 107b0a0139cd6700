// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package validation

import (
	"strings"
	"testing"

	"github.com/velora-labs/skinmatch/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestValidateProfileSuccess(t *testing.T) {
	profile := models.SkinProfile{
		SkinType:  "oily",
		Concerns:  []string{"acne", "pores"},
		BudgetMin: floatPtr(10),
		BudgetMax: floatPtr(30),
	}

	if err := ValidateStruct(&profile); err != nil {
		t.Errorf("valid profile should pass, got %v", err)
	}
}

func TestValidateProfileBadSkinType(t *testing.T) {
	profile := models.SkinProfile{SkinType: "reptilian"}

	err := ValidateStruct(&profile)
	if err == nil {
		t.Fatal("expected validation error for bad skin type")
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("expected enumerated message, got %q", err.Error())
	}
}

func TestValidateProfileReportsEveryViolation(t *testing.T) {
	profile := models.SkinProfile{
		SkinType:  "plastic",
		Concerns:  []string{"acne", "world-domination"},
		BudgetMin: floatPtr(-5),
	}

	err := ValidateStruct(&profile)
	if err == nil {
		t.Fatal("expected validation errors")
	}

	if len(err.Errors()) != 3 {
		t.Errorf("expected 3 violations (skin type, concern, budget), got %d: %v",
			len(err.Errors()), err.Error())
	}
}

func TestValidateProfileBadConcern(t *testing.T) {
	profile := models.SkinProfile{
		SkinType: "dry",
		Concerns: []string{"acne", "bogus"},
	}

	err := ValidateStruct(&profile)
	if err == nil {
		t.Fatal("expected validation error for invalid concern")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR code, got %q", apiErr.Code)
	}
	if apiErr.Details == nil {
		t.Error("expected details with violated fields")
	}
}

func TestValidateProfileBudgetOrder(t *testing.T) {
	profile := models.SkinProfile{
		SkinType:  "oily",
		BudgetMin: floatPtr(50),
		BudgetMax: floatPtr(10),
	}

	err := ValidateStruct(&profile)
	if err == nil {
		t.Fatal("expected validation error for inverted budget bounds")
	}
	if !strings.Contains(err.Error(), "budget_min cannot be greater than budget_max") {
		t.Errorf("expected budget order message, got %q", err.Error())
	}
}

func TestValidateProfileEmptyConcernsAllowed(t *testing.T) {
	profile := models.SkinProfile{SkinType: "normal"}
	if err := ValidateStruct(&profile); err != nil {
		t.Errorf("profile without concerns should pass, got %v", err)
	}
}

func TestToAPIErrorListsAllFields(t *testing.T) {
	profile := models.SkinProfile{
		SkinType:  "",
		BudgetMax: floatPtr(-1),
	}

	err := ValidateStruct(&profile)
	if err == nil {
		t.Fatal("expected validation errors")
	}

	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("expected fields detail, got %T", apiErr.Details["fields"])
	}
	if len(fields) != 2 {
		t.Errorf("expected 2 field entries, got %d", len(fields))
	}
}
