// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package advice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/velora-labs/skinmatch/internal/models"
)

type fakeChat struct {
	reply     string
	err       error
	available bool
	lastUser  string
}

func (f *fakeChat) Available() bool { return f.available }

func (f *fakeChat) Complete(ctx context.Context, system, user string) (string, error) {
	f.lastUser = user
	return f.reply, f.err
}

func TestBuildRoutineDefaultWithoutClient(t *testing.T) {
	b := NewBuilder(nil)
	routine := b.BuildRoutine(context.Background(), RoutineRequest{SkinType: "oily"})

	if routine.Generated {
		t.Error("default routine must not be marked generated")
	}
	if len(routine.AM) != 5 || len(routine.PM) != 4 {
		t.Errorf("default routine has %d AM / %d PM steps, want 5/4", len(routine.AM), len(routine.PM))
	}
	if routine.AM[len(routine.AM)-1].StepName != "Sunscreen" {
		t.Errorf("AM routine must end with Sunscreen, got %q", routine.AM[len(routine.AM)-1].StepName)
	}
}

func TestBuildRoutineDefaultWhenUnavailable(t *testing.T) {
	b := NewBuilder(&fakeChat{available: false})
	if routine := b.BuildRoutine(context.Background(), RoutineRequest{SkinType: "dry"}); routine.Generated {
		t.Error("unavailable client must fall back to default")
	}
}

func TestBuildRoutineDefaultOnError(t *testing.T) {
	b := NewBuilder(&fakeChat{available: true, err: errors.New("quota")})
	if routine := b.BuildRoutine(context.Background(), RoutineRequest{SkinType: "dry"}); routine.Generated {
		t.Error("model error must fall back to default")
	}
}

func TestBuildRoutineDefaultOnBadJSON(t *testing.T) {
	b := NewBuilder(&fakeChat{available: true, reply: "here is your routine!"})
	if routine := b.BuildRoutine(context.Background(), RoutineRequest{SkinType: "dry"}); routine.Generated {
		t.Error("unparseable reply must fall back to default")
	}
}

func TestBuildRoutineParsesModelReply(t *testing.T) {
	reply := `Sure! {"AM":[{"step_name":"Cleanser","order":1,"why_this_matters":"w","what_to_look_for":["a"],"what_to_avoid":["b"],"search_keywords":["gentle cleanser"]}],"PM":[{"step_name":"Moisturizer","order":1}]}`
	chat := &fakeChat{available: true, reply: reply}
	b := NewBuilder(chat)

	routine := b.BuildRoutine(context.Background(), RoutineRequest{
		SkinType: "combination",
		Concerns: []string{"redness"},
		Budget:   "mid-range",
	})

	if !routine.Generated {
		t.Fatal("expected generated routine")
	}
	if len(routine.AM) != 1 || routine.AM[0].StepName != "Cleanser" {
		t.Errorf("unexpected AM steps: %+v", routine.AM)
	}
	if !strings.Contains(chat.lastUser, "combination") || !strings.Contains(chat.lastUser, "redness") {
		t.Error("prompt must include the profile details")
	}
}

func TestDealInsights(t *testing.T) {
	chat := &fakeChat{available: true, reply: "  Ulta has the best value.  "}
	advisor := NewDealAdvisor(chat)

	deals := []models.DealRecord{
		{Seller: "Ulta", Price: 10},
		{Seller: "Amazon", Price: 20},
	}
	text, ok := advisor.DealInsights(context.Background(), "serum", deals)
	if !ok {
		t.Fatal("expected insights")
	}
	if text != "Ulta has the best value." {
		t.Errorf("insights = %q", text)
	}
	if !strings.Contains(chat.lastUser, "$10.00 - $20.00") {
		t.Errorf("prompt missing price range: %q", chat.lastUser)
	}
	if !strings.Contains(chat.lastUser, "Average price: $15.00") {
		t.Errorf("prompt missing average: %q", chat.lastUser)
	}
}

func TestDealInsightsUnavailable(t *testing.T) {
	advisor := NewDealAdvisor(nil)
	if _, ok := advisor.DealInsights(context.Background(), "serum", []models.DealRecord{{Price: 10}}); ok {
		t.Error("nil client must not produce insights")
	}
}

func TestDealInsightsNoPrices(t *testing.T) {
	advisor := NewDealAdvisor(&fakeChat{available: true, reply: "x"})
	if _, ok := advisor.DealInsights(context.Background(), "serum", []models.DealRecord{{Seller: "a"}}); ok {
		t.Error("deals without prices must not produce insights")
	}
}

// fakeSearcher returns a fixed deal set and records queries.
type fakeSearcher struct {
	deals   []models.DealRecord
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, productName string, loc *models.Location, maxResults int) (*models.DealsResult, bool) {
	f.queries = append(f.queries, productName)
	return &models.DealsResult{AllDeals: f.deals, TotalDeals: len(f.deals)}, false
}

func TestStepQuery(t *testing.T) {
	step := RoutineStep{StepName: "Cleanser", SearchKeywords: []string{"gentle cleanser"}}
	got := stepQuery(step, "oily", []string{"acne"})
	if got != "gentle cleanser oily acne" {
		t.Errorf("stepQuery = %q", got)
	}

	bare := RoutineStep{StepName: "Toner"}
	if got := stepQuery(bare, "", nil); got != "Toner" {
		t.Errorf("stepQuery fallback = %q", got)
	}
}

func TestStepDeals(t *testing.T) {
	searcher := &fakeSearcher{deals: []models.DealRecord{
		{ProductName: "cheap", Price: 12, Rating: 4.0},
		{ProductName: "lux", Price: 80, Rating: 4.5},
		{ProductName: "mid", Price: 40, Rating: 5.0},
	}}
	finder := NewStepDealFinder(searcher)

	tiered := finder.StepDeals(context.Background(), RoutineStep{StepName: "Serum"}, "oily", nil)
	if len(tiered.Affordable) != 1 || tiered.Affordable[0].ProductName != "cheap" {
		t.Errorf("affordable = %+v", tiered.Affordable)
	}
	if len(tiered.Luxury) != 1 || tiered.Luxury[0].ProductName != "lux" {
		t.Errorf("luxury = %+v", tiered.Luxury)
	}
}

func TestRoutineDealsCapsPerStep(t *testing.T) {
	var offers []models.DealRecord
	for i := 0; i < 6; i++ {
		offers = append(offers, models.DealRecord{ProductName: "a", Price: float64(5 + i)})
		offers = append(offers, models.DealRecord{ProductName: "l", Price: float64(60 + i), Rating: 4})
	}
	searcher := &fakeSearcher{deals: offers}
	finder := NewStepDealFinder(searcher)

	routine := Routine{
		AM: []RoutineStep{{StepName: "Cleanser"}, {StepName: "Sunscreen"}},
		PM: []RoutineStep{{StepName: "Moisturizer"}},
	}
	combined := finder.RoutineDeals(context.Background(), routine, "dry", []string{"dryness"})

	if len(searcher.queries) != 3 {
		t.Errorf("ran %d searches, want 3", len(searcher.queries))
	}
	if len(combined.Affordable) != 6 {
		t.Errorf("affordable = %d offers, want 2 per step * 3 steps", len(combined.Affordable))
	}
	if len(combined.Luxury) != 6 {
		t.Errorf("luxury = %d offers, want 2 per step * 3 steps", len(combined.Luxury))
	}
}
