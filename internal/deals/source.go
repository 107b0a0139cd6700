// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package deals

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/velora-labs/skinmatch/internal/logging"
	"github.com/velora-labs/skinmatch/internal/metrics"
	"github.com/velora-labs/skinmatch/internal/models"
)

// Source fetches price offers for a product query from one upstream
// catalog.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]models.DealRecord, error)
}

// ProductSearchConfig configures the hosted product search source.
type ProductSearchConfig struct {
	APIKey  string
	BaseURL string
	Host    string
	Timeout time.Duration

	// RequestsPerSecond throttles upstream calls. Zero disables the
	// throttle.
	RequestsPerSecond float64

	// BreakerFailureThreshold trips the circuit after this many
	// consecutive upstream failures.
	BreakerFailureThreshold uint32

	// BreakerCooldown is how long the circuit stays open before a probe.
	BreakerCooldown time.Duration
}

// sourceName doubles as the Source tag on every deal this client
// produces.
const sourceName = "real_time_product_search"

// ProductSearchSource queries a hosted multi-retailer product search
// API. One search fans out to many retailers on the provider side, so
// a single upstream call covers the whole market.
type ProductSearchSource struct {
	cfg     ProductSearchConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]models.DealRecord]
	limiter *rate.Limiter
}

// NewProductSearchSource creates the hosted search client. The
// returned source is safe for concurrent use.
func NewProductSearchSource(cfg ProductSearchConfig) *ProductSearchSource {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.BreakerFailureThreshold == 0 {
		cfg.BreakerFailureThreshold = 5
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:    sourceName,
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Deal source circuit breaker state change")
			metrics.RecordBreakerTransition(name, from.String(), to.String(), breakerStateValue(to))
		},
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &ProductSearchSource{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker[[]models.DealRecord](settings),
		limiter: limiter,
	}
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	default:
		return 2
	}
}

// Name returns the source identifier used in result status entries.
func (s *ProductSearchSource) Name() string {
	return sourceName
}

// Configured reports whether an API key is present.
func (s *ProductSearchSource) Configured() bool {
	return s.cfg.APIKey != ""
}

// Search queries the upstream API. An unconfigured source returns no
// offers and no error, which the aggregator reports as no_results.
func (s *ProductSearchSource) Search(ctx context.Context, query string, maxResults int) ([]models.DealRecord, error) {
	if !s.Configured() {
		logging.Warn().Msg("Product search API key not configured")
		return nil, nil
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("throttle wait: %w", err)
		}
	}

	start := time.Now()
	records, err := s.breaker.Execute(func() ([]models.DealRecord, error) {
		return s.fetch(ctx, query, maxResults)
	})
	if err != nil {
		metrics.RecordDealSource(sourceName, "error", time.Since(start))
		return nil, err
	}

	status := "success"
	if len(records) == 0 {
		status = "no_results"
	}
	metrics.RecordDealSource(sourceName, status, time.Since(start))
	return records, nil
}

func (s *ProductSearchSource) fetch(ctx context.Context, query string, maxResults int) ([]models.DealRecord, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("country", "us")
	params.Set("language", "en")
	params.Set("limit", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("X-RapidAPI-Key", s.cfg.APIKey)
	req.Header.Set("X-RapidAPI-Host", s.cfg.Host)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("product search status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	records := make([]models.DealRecord, 0, len(payload.Data.Products))
	for i, item := range payload.Data.Products {
		if i >= maxResults {
			break
		}
		record, ok := normalizeProduct(item)
		if !ok {
			continue
		}
		records = append(records, record)
	}

	logging.Debug().
		Int("count", len(records)).
		Str("query", query).
		Msg("Fetched deals from product search")

	return records, nil
}

// searchResponse mirrors the upstream search-v2 payload shape.
type searchResponse struct {
	Data struct {
		Products []productItem `json:"products"`
	} `json:"data"`
}

type productItem struct {
	ProductTitle      string          `json:"product_title"`
	ProductPageURL    string          `json:"product_page_url"`
	ProductRating     json.RawMessage `json:"product_rating"`
	ProductNumReviews json.RawMessage `json:"product_num_reviews"`
	ProductPhotos     []string        `json:"product_photos"`
	Offer             *offerItem      `json:"offer"`
}

type offerItem struct {
	Price         json.RawMessage `json:"price"`
	OriginalPrice string          `json:"original_price"`
	StoreName     string          `json:"store_name"`
	OfferPageURL  string          `json:"offer_page_url"`
}

// normalizeProduct converts one upstream product into a DealRecord.
// Products without an offer carry no price and are skipped.
func normalizeProduct(item productItem) (models.DealRecord, bool) {
	if item.Offer == nil {
		return models.DealRecord{}, false
	}

	price := parsePrice(item.Offer.Price)
	originalPrice := price
	if item.Offer.OriginalPrice != "" {
		originalPrice = parsePriceString(item.Offer.OriginalPrice)
	}

	seller := item.Offer.StoreName
	if seller == "" {
		seller = "Unknown"
	}

	dealURL := item.Offer.OfferPageURL
	if dealURL == "" {
		dealURL = item.ProductPageURL
	}

	imageURL := ""
	if len(item.ProductPhotos) > 0 {
		imageURL = item.ProductPhotos[0]
	}

	return models.DealRecord{
		ProductName:   item.ProductTitle,
		Seller:        seller,
		Price:         price,
		OriginalPrice: originalPrice,
		URL:           dealURL,
		ImageURL:      imageURL,
		Rating:        parseRating(item.ProductRating),
		Reviews:       parseReviews(item.ProductNumReviews),
		InStock:       true,
		Source:        sourceName,
	}, true
}

// parsePrice handles upstream price fields that arrive as either a
// number or a formatted string like "$12.99".
func parsePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return parsePriceString(s)
	}
	return 0
}

func parsePriceString(s string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "$", ""), ",", ""))
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n
}

func parseRating(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	return 0
}

func parseReviews(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		cleaned := strings.ReplaceAll(s, ",", "")
		if v, err := strconv.Atoi(cleaned); err == nil {
			return v
		}
	}
	return 0
}
