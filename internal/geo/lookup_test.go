// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/203.0.113.7/json/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"city":"Austin","region":"Texas","country_name":"United States","postal":"78701","timezone":"America/Chicago"}`))
	}))
	defer server.Close()

	r := NewHTTPResolver(Config{BaseURL: server.URL})
	loc, err := r.Lookup(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if loc.City != "Austin" || loc.ZipCode != "78701" || loc.Country != "United States" {
		t.Errorf("unexpected location: %+v", loc)
	}
}

func TestLookupProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":true,"reason":"Reserved IP Address"}`))
	}))
	defer server.Close()

	r := NewHTTPResolver(Config{BaseURL: server.URL})
	if _, err := r.Lookup(context.Background(), "10.0.0.1"); err == nil {
		t.Error("expected error for reserved IP")
	}
}

func TestLookupUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	r := NewHTTPResolver(Config{BaseURL: server.URL})
	if _, err := r.Lookup(context.Background(), "203.0.113.7"); err == nil {
		t.Error("expected error for non-200 response")
	}
}
