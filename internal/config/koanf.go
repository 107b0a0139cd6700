// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/skinmatch/config.yaml",
	"/etc/skinmatch/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from three layers, each overriding the
// previous: struct defaults, an optional YAML file, and environment
// variables. The result is validated before being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, preferring
// CONFIG_PATH when set.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables return "" and are skipped, which keeps unrelated
// environment variables out of the configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server
		"http_host":        "server.host",
		"http_port":        "server.port",
		"http_read_timeout":  "server.read_timeout",
		"http_write_timeout": "server.write_timeout",
		"shutdown_timeout":   "server.shutdown_timeout",
		"cors_origins":       "server.cors_origins",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Security pipeline
		"rate_limit_requests":  "security.rate_limit_requests",
		"rate_limit_window":    "security.rate_limit_window",
		"disable_rate_limit":   "security.rate_limit_disabled",
		"auto_block_threshold": "security.auto_block_threshold",

		// Recommendations
		"max_recommendations":      "recommend.max_recommendations",
		"recommend_source_timeout": "recommend.source_timeout",

		// Deals
		"deals_cache_ttl":   "deals.cache_ttl",
		"deals_source_url":  "deals.source_url",
		"deals_source_host": "deals.source_host",
		"rapidapi_key":      "deals.api_key",
		"deals_timeout":     "deals.timeout",
		"deals_max_results": "deals.max_results",
		"deals_upstream_rps": "deals.upstream_rps",

		// Store
		"store_path":      "store.path",
		"store_in_memory": "store.in_memory",

		// Admin
		"admin_username":            "admin.username",
		"admin_password_hash":       "admin.password_hash",
		"jwt_secret":                "admin.jwt_secret",
		"admin_token_ttl":           "admin.token_ttl",
		"admin_rate_limit_requests": "admin.rate_limit_requests",
		"admin_rate_limit_window":   "admin.rate_limit_window",

		// Advice / text generation
		"openai_api_key":  "advice.api_key",
		"advice_base_url": "advice.base_url",
		"advice_model":    "advice.model",
		"advice_timeout":  "advice.timeout",

		// Geolocation
		"geo_base_url": "geo.base_url",
		"geo_timeout":  "geo.timeout",
		"geo_enabled":  "geo.enabled",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
