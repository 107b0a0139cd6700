// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/velora-labs/skinmatch/internal/models"
	"github.com/velora-labs/skinmatch/internal/profile"
	"github.com/velora-labs/skinmatch/internal/store"
)

type fakeCandidateSource struct {
	name     string
	products []models.Product
	err      error
}

func (f *fakeCandidateSource) Name() string { return f.name }

func (f *fakeCandidateSource) Fetch(ctx context.Context, n *profile.Normalized) ([]models.Product, error) {
	return f.products, f.err
}

// failingStore rejects every upsert.
type failingStore struct{}

func (failingStore) Upsert(ctx context.Context, p *models.Product) (*models.StoredProduct, error) {
	return nil, errors.New("store down")
}
func (failingStore) Get(ctx context.Context, source, externalID string) (*models.StoredProduct, error) {
	return nil, store.ErrProductNotFound
}
func (failingStore) Count(ctx context.Context) (int, error) { return 0, nil }
func (failingStore) Close() error                           { return nil }

func candidate(id, name string, price *float64, rating float64) models.Product {
	return models.Product{
		ExternalID: id,
		Name:       name,
		Brand:      "Brand",
		Price:      price,
		Currency:   "USD",
		Source:     "test",
		SkinTypes:  []string{"oily"},
		Tags:       []string{"acne"},
		Rating:     &rating,
	}
}

func oilyAcneProfile() *models.SkinProfile {
	min, max := 10.0, 30.0
	return &models.SkinProfile{
		SkinType:  "oily",
		Concerns:  []string{"acne"},
		BudgetMin: &min,
		BudgetMax: &max,
	}
}

func TestRecommendBudgetFilterAndScore(t *testing.T) {
	cheap := candidate("p1", "Budget Cleanser", fp(15.0), 4.5)
	pricey := candidate("p2", "Splurge Cleanser", fp(50.0), 4.5)

	engine := NewEngine(
		[]CandidateSource{&fakeCandidateSource{name: "test", products: []models.Product{cheap, pricey}}},
		store.NewMemoryProductStore(),
		3,
	)

	recs, err := engine.Recommend(context.Background(), oilyAcneProfile())
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1 (budget excludes the $50 item)", len(recs))
	}
	if recs[0].Name != "Budget Cleanser" {
		t.Errorf("recommended %q, want Budget Cleanser", recs[0].Name)
	}
	// skin type 0.4 + concerns 0.3 + rating bonus 0.1.
	if recs[0].Score != 0.8 {
		t.Errorf("score = %f, want 0.8", recs[0].Score)
	}
	if recs[0].ProductID == "" {
		t.Error("expected ProductID populated after persistence")
	}
	if recs[0].Reason == "" {
		t.Error("expected a reason on the recommendation")
	}
}

func TestRecommendDropsMissingPriceWhenBudgetSet(t *testing.T) {
	noPrice := candidate("p1", "Mystery Price", nil, 4.0)

	engine := NewEngine(
		[]CandidateSource{&fakeCandidateSource{name: "test", products: []models.Product{noPrice}}},
		store.NewMemoryProductStore(),
		3,
	)

	recs, err := engine.Recommend(context.Background(), oilyAcneProfile())
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d recommendations, want 0", len(recs))
	}
}

func TestRecommendNoBudgetKeepsMissingPrice(t *testing.T) {
	noPrice := candidate("p1", "Mystery Price", nil, 4.0)

	engine := NewEngine(
		[]CandidateSource{&fakeCandidateSource{name: "test", products: []models.Product{noPrice}}},
		store.NewMemoryProductStore(),
		3,
	)

	recs, err := engine.Recommend(context.Background(), &models.SkinProfile{SkinType: "oily", Concerns: []string{"acne"}})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("got %d recommendations, want 1 (no budget, no filter)", len(recs))
	}
}

func TestRecommendRanksDescendingStable(t *testing.T) {
	// Same score for b and c: fetch order must hold.
	a := candidate("a", "Weak Match", fp(15.0), 3.0)
	a.SkinTypes = []string{"dry"}
	a.Tags = nil
	b := candidate("b", "Strong First", fp(15.0), 4.5)
	c := candidate("c", "Strong Second", fp(15.0), 4.5)

	engine := NewEngine(
		[]CandidateSource{&fakeCandidateSource{name: "test", products: []models.Product{a, b, c}}},
		store.NewMemoryProductStore(),
		3,
	)

	recs, err := engine.Recommend(context.Background(), oilyAcneProfile())
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	if recs[0].Name != "Strong First" || recs[1].Name != "Strong Second" {
		t.Errorf("order = [%s, %s, %s], want stable score-descending", recs[0].Name, recs[1].Name, recs[2].Name)
	}
	if recs[2].Name != "Weak Match" {
		t.Errorf("lowest scored item should rank last, got %s", recs[2].Name)
	}
}

func TestRecommendTruncatesToMax(t *testing.T) {
	var products []models.Product
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		products = append(products, candidate(id, "Product "+id, fp(15.0), 4.5))
	}

	engine := NewEngine(
		[]CandidateSource{&fakeCandidateSource{name: "test", products: products}},
		store.NewMemoryProductStore(),
		3,
	)

	recs, err := engine.Recommend(context.Background(), oilyAcneProfile())
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 3 {
		t.Errorf("got %d recommendations, want 3", len(recs))
	}
}

func TestRecommendToleratesSourceFailure(t *testing.T) {
	good := &fakeCandidateSource{name: "good", products: []models.Product{candidate("p1", "Survivor", fp(15.0), 4.5)}}
	bad := &fakeCandidateSource{name: "bad", err: errors.New("upstream down")}

	engine := NewEngine([]CandidateSource{bad, good}, store.NewMemoryProductStore(), 3)

	recs, err := engine.Recommend(context.Background(), oilyAcneProfile())
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 1 || recs[0].Name != "Survivor" {
		t.Errorf("expected the healthy source's candidate, got %+v", recs)
	}
}

func TestRecommendSkipsIncompleteCandidates(t *testing.T) {
	incomplete := candidate("", "No External ID", fp(15.0), 4.5)
	unnamed := candidate("p2", "", fp(15.0), 4.5)
	ok := candidate("p3", "Complete", fp(15.0), 4.5)

	engine := NewEngine(
		[]CandidateSource{&fakeCandidateSource{name: "test", products: []models.Product{incomplete, unnamed, ok}}},
		store.NewMemoryProductStore(),
		3,
	)

	recs, err := engine.Recommend(context.Background(), oilyAcneProfile())
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 1 || recs[0].Name != "Complete" {
		t.Errorf("expected only the complete candidate, got %+v", recs)
	}
}

func TestRecommendSurvivesPersistenceFailure(t *testing.T) {
	engine := NewEngine(
		[]CandidateSource{&fakeCandidateSource{name: "test", products: []models.Product{candidate("p1", "Unstored", fp(15.0), 4.5)}}},
		failingStore{},
		3,
	)

	recs, err := engine.Recommend(context.Background(), oilyAcneProfile())
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].ProductID != "" {
		t.Errorf("ProductID = %q, want empty on persistence failure", recs[0].ProductID)
	}
}

func TestRecommendInvalidProfile(t *testing.T) {
	engine := NewEngine(nil, store.NewMemoryProductStore(), 3)

	if _, err := engine.Recommend(context.Background(), &models.SkinProfile{SkinType: "metallic"}); err == nil {
		t.Error("expected validation error for invalid skin type")
	}
}

func TestRecommendEmptyIsNotError(t *testing.T) {
	engine := NewEngine(
		[]CandidateSource{&fakeCandidateSource{name: "test"}},
		store.NewMemoryProductStore(),
		3,
	)

	recs, err := engine.Recommend(context.Background(), oilyAcneProfile())
	if err != nil {
		t.Fatalf("empty candidate set must not error, got %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d recommendations, want 0", len(recs))
	}
}

func TestCatalogSource(t *testing.T) {
	src := NewCatalogSource("catalog", DefaultCatalog())
	products, err := src.Fetch(context.Background(), &profile.Normalized{SkinType: "oily"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(products) == 0 {
		t.Fatal("catalog is empty")
	}
	for _, p := range products {
		if !usable(&p) {
			t.Errorf("catalog product %q is incomplete", p.Name)
		}
	}
}
