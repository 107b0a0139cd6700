// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package geo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/velora-labs/skinmatch/internal/logging"
	"github.com/velora-labs/skinmatch/internal/metrics"
	"github.com/velora-labs/skinmatch/internal/models"
)

// Resolver looks up the approximate location of an IP address.
type Resolver interface {
	Lookup(ctx context.Context, ip string) (*models.Location, error)
}

// Config configures the HTTP resolver.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// HTTPResolver queries an ipapi-style JSON endpoint
// (GET {base}/{ip}/json/).
type HTTPResolver struct {
	baseURL string
	client  *http.Client
}

// NewHTTPResolver creates a resolver with the given endpoint and
// timeout. The default timeout is 5 seconds.
func NewHTTPResolver(cfg Config) *HTTPResolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &HTTPResolver{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type lookupResponse struct {
	City        string `json:"city"`
	Region      string `json:"region"`
	CountryName string `json:"country_name"`
	Postal      string `json:"postal"`
	Timezone    string `json:"timezone"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

// Lookup resolves ip to a location. Errors are returned for the caller
// to log; callers treat a failed lookup as "no location".
func (r *HTTPResolver) Lookup(ctx context.Context, ip string) (*models.Location, error) {
	url := fmt.Sprintf("%s/%s/json/", r.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build geo request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		metrics.GeolocationLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("geo lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GeolocationLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("geo lookup status %d", resp.StatusCode)
	}

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.GeolocationLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode geo response: %w", err)
	}
	if payload.Error {
		metrics.GeolocationLookups.WithLabelValues("unknown").Inc()
		return nil, fmt.Errorf("geo lookup rejected: %s", payload.Reason)
	}

	metrics.GeolocationLookups.WithLabelValues("ok").Inc()
	logging.Debug().Str("ip", ip).Str("city", payload.City).Msg("Resolved IP location")

	return &models.Location{
		City:     payload.City,
		Region:   payload.Region,
		Country:  payload.CountryName,
		ZipCode:  payload.Postal,
		Timezone: payload.Timezone,
	}, nil
}
