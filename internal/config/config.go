// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package config provides typed application configuration loaded via Koanf v2
// with layered sources: struct defaults, an optional YAML file, and
// environment variables (highest priority).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the SkinMatch server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Security  SecurityConfig  `koanf:"security"`
	Recommend RecommendConfig `koanf:"recommend"`
	Deals     DealsConfig     `koanf:"deals"`
	Store     StoreConfig     `koanf:"store"`
	Admin     AdminConfig     `koanf:"admin"`
	Advice    AdviceConfig    `koanf:"advice"`
	Geo       GeoConfig       `koanf:"geo"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds the request security pipeline settings: the
// sliding-window rate limiter and threat-detection escalation.
type SecurityConfig struct {
	// RateLimitRequests is the maximum requests per identity per window.
	RateLimitRequests int `koanf:"rate_limit_requests"`

	// RateLimitWindow is the trailing window for the rate limiter.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// RateLimitDisabled bypasses the rate limiter (never the block list).
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`

	// AutoBlockThreshold is the number of high/critical threat matches in a
	// single request that triggers an automatic IP block.
	AutoBlockThreshold int `koanf:"auto_block_threshold"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	// MaxRecommendations is the number of scored candidates returned (top N).
	MaxRecommendations int `koanf:"max_recommendations"`

	// SourceTimeout bounds each external product source call.
	SourceTimeout time.Duration `koanf:"source_timeout"`
}

// DealsConfig holds deal aggregation settings.
type DealsConfig struct {
	// CacheTTL is how long a (query, location) deal payload stays cached.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// SourceURL is the deal-search endpoint.
	SourceURL string `koanf:"source_url"`

	// SourceHost is the API host header value required by the source.
	SourceHost string `koanf:"source_host"`

	// APIKey authenticates against the deal source. Empty disables fetching;
	// searches then degrade to empty results.
	APIKey string `koanf:"api_key"`

	// Timeout bounds each deal source call.
	Timeout time.Duration `koanf:"timeout"`

	// MaxResults is the default per-search result cap.
	MaxResults int `koanf:"max_results"`

	// UpstreamRPS throttles outbound calls to the deal source
	// (requests per second; 0 disables the throttle).
	UpstreamRPS float64 `koanf:"upstream_rps"`
}

// StoreConfig holds embedded product store settings.
type StoreConfig struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory runs the store without disk persistence (tests, demos).
	InMemory bool `koanf:"in_memory"`
}

// AdminConfig holds the administrative surface settings.
type AdminConfig struct {
	// Username is the admin login name.
	Username string `koanf:"username"`

	// PasswordHash is the bcrypt hash of the admin password.
	PasswordHash string `koanf:"password_hash"`

	// JWTSecret signs admin tokens. Must be at least 32 bytes.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTL is the admin token lifetime.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// RateLimitRequests/RateLimitWindow bound the admin route group
	// (httprate), independent of the global sliding-window gate.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
}

// AdviceConfig holds external text-generation settings for routine
// structure and deal insights. All consumers degrade to static fallbacks
// when APIKey is empty.
type AdviceConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`
}

// GeoConfig holds IP geolocation settings.
type GeoConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
	Enabled bool          `koanf:"enabled"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8460,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			RateLimitRequests:  100,
			RateLimitWindow:    60 * time.Second,
			RateLimitDisabled:  false,
			AutoBlockThreshold: 3,
		},
		Recommend: RecommendConfig{
			MaxRecommendations: 3,
			SourceTimeout:      10 * time.Second,
		},
		Deals: DealsConfig{
			CacheTTL:    30 * time.Minute,
			SourceURL:   "https://real-time-product-search.p.rapidapi.com/search-v2",
			SourceHost:  "real-time-product-search.p.rapidapi.com",
			APIKey:      "",
			Timeout:     15 * time.Second,
			MaxResults:  10,
			UpstreamRPS: 1.0,
		},
		Store: StoreConfig{
			Path:     "/data/skinmatch",
			InMemory: false,
		},
		Admin: AdminConfig{
			Username:          "admin",
			PasswordHash:      "",
			JWTSecret:         "",
			TokenTTL:          1 * time.Hour,
			RateLimitRequests: 30,
			RateLimitWindow:   time.Minute,
		},
		Advice: AdviceConfig{
			APIKey:  "",
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4",
			Timeout: 30 * time.Second,
		},
		Geo: GeoConfig{
			BaseURL: "https://ipapi.co",
			Timeout: 5 * time.Second,
			Enabled: true,
		},
	}
}

// Validate checks the configuration for invalid values. It collects every
// violation rather than stopping at the first.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Security.RateLimitRequests <= 0 {
		problems = append(problems, "security.rate_limit_requests must be positive")
	}
	if c.Security.RateLimitWindow <= 0 {
		problems = append(problems, "security.rate_limit_window must be positive")
	}
	if c.Security.AutoBlockThreshold <= 0 {
		problems = append(problems, "security.auto_block_threshold must be positive")
	}
	if c.Recommend.MaxRecommendations < 1 || c.Recommend.MaxRecommendations > 50 {
		problems = append(problems, fmt.Sprintf("recommend.max_recommendations must be 1-50, got %d", c.Recommend.MaxRecommendations))
	}
	if c.Deals.CacheTTL <= 0 {
		problems = append(problems, "deals.cache_ttl must be positive")
	}
	if c.Deals.MaxResults < 1 {
		problems = append(problems, "deals.max_results must be positive")
	}
	if c.Admin.JWTSecret != "" && len(c.Admin.JWTSecret) < 32 {
		problems = append(problems, "admin.jwt_secret must be at least 32 characters")
	}
	if !c.Store.InMemory && c.Store.Path == "" {
		problems = append(problems, "store.path is required unless store.in_memory is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %v", problems)
	}
	return nil
}

// AdminEnabled reports whether the admin surface can be served. Both a
// password hash and a JWT secret are required; without them the admin
// routes return 503.
func (c *Config) AdminEnabled() bool {
	return c.Admin.PasswordHash != "" && c.Admin.JWTSecret != ""
}
