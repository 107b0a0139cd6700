// SkinMatch - Skincare Recommendation and Deal Aggregation
// Copyright 2026 Velora Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/velora-labs/skinmatch

// Package main is the SkinMatch server entry point.
//
// Startup order: configuration (koanf), logging (zerolog), product
// store (BadgerDB), event bus (watermill), deal aggregator,
// recommendation engine, routine builder, HTTP router, then the
// suture supervisor tree running the analytics recorder and the HTTP
// server. SIGINT and SIGTERM trigger graceful shutdown.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/velora-labs/skinmatch/internal/advice"
	"github.com/velora-labs/skinmatch/internal/analytics"
	"github.com/velora-labs/skinmatch/internal/api"
	"github.com/velora-labs/skinmatch/internal/auth"
	"github.com/velora-labs/skinmatch/internal/config"
	"github.com/velora-labs/skinmatch/internal/deals"
	"github.com/velora-labs/skinmatch/internal/events"
	"github.com/velora-labs/skinmatch/internal/geo"
	"github.com/velora-labs/skinmatch/internal/logging"
	"github.com/velora-labs/skinmatch/internal/middleware"
	"github.com/velora-labs/skinmatch/internal/recommend"
	"github.com/velora-labs/skinmatch/internal/security"
	"github.com/velora-labs/skinmatch/internal/store"
	"github.com/velora-labs/skinmatch/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Int("port", cfg.Server.Port).
		Bool("deal_source_configured", cfg.Deals.APIKey != "").
		Bool("admin_enabled", cfg.AdminEnabled()).
		Msg("Starting SkinMatch")

	// Product store
	storePath := cfg.Store.Path
	if cfg.Store.InMemory {
		storePath = ""
	}
	products, err := store.OpenBadgerProductStore(storePath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open product store")
	}
	defer func() {
		if err := products.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing product store")
		}
	}()

	// Event bus and consumers
	bus := events.NewBus()
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()
	recorder := analytics.NewRecorder(bus, 0)

	// Deal aggregation
	var sources []deals.Source
	if cfg.Deals.APIKey != "" {
		sources = append(sources, deals.NewProductSearchSource(deals.ProductSearchConfig{
			APIKey:            cfg.Deals.APIKey,
			BaseURL:           cfg.Deals.SourceURL,
			Host:              cfg.Deals.SourceHost,
			Timeout:           cfg.Deals.Timeout,
			RequestsPerSecond: cfg.Deals.UpstreamRPS,
		}))
	} else {
		logging.Warn().Msg("No deal source API key configured, deal searches will return empty results")
	}

	chatClient := advice.NewHTTPChatClient(advice.ChatConfig{
		APIKey:  cfg.Advice.APIKey,
		BaseURL: cfg.Advice.BaseURL,
		Model:   cfg.Advice.Model,
		Timeout: cfg.Advice.Timeout,
	})

	aggregator := deals.NewAggregator(sources, cfg.Deals.CacheTTL, advice.NewDealAdvisor(chatClient))
	defer aggregator.Close()

	// Recommendation engine
	engine := recommend.NewEngine(
		[]recommend.CandidateSource{
			recommend.NewCatalogSource("catalog", recommend.DefaultCatalog()),
		},
		products,
		cfg.Recommend.MaxRecommendations,
	)

	// Geolocation
	var resolver geo.Resolver
	if cfg.Geo.Enabled {
		resolver = geo.NewHTTPResolver(geo.Config{
			BaseURL: cfg.Geo.BaseURL,
			Timeout: cfg.Geo.Timeout,
		})
	}

	// Admin surface
	var admin *auth.AdminAuthenticator
	if cfg.AdminEnabled() {
		admin, err = auth.NewAdminAuthenticator(cfg.Admin)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize admin authentication")
		}
	}

	// Security gate
	blockList := security.NewBlockList()
	limiter := security.NewRateLimiter(cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow)
	defer limiter.Close()
	detector := security.NewDetector(cfg.Security.AutoBlockThreshold)
	gate := middleware.NewSecurityGate(blockList, limiter, detector, bus, cfg.Security.RateLimitDisabled)

	// HTTP surface
	perf := middleware.NewPerformanceMonitor(1000)
	handler := api.NewHandler(api.HandlerDeps{
		Config:     cfg,
		Engine:     engine,
		Aggregator: aggregator,
		Resolver:   resolver,
		Builder:    advice.NewBuilder(chatClient),
		StepFinder: advice.NewStepDealFinder(aggregator),
		Admin:      admin,
		Recorder:   recorder,
		BlockList:  blockList,
		Perf:       perf,
	})
	router := api.NewRouter(handler, gate).Setup()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Supervisor tree
	slogger := slog.New(logging.NewSlogHandler())
	tree := supervisor.NewTree(slogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddMessagingService(recorder)
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	logging.Info().Str("addr", server.Addr).Msg("SkinMatch listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			logging.Error().Err(err).Msg("Supervisor tree failed")
		}
	}

	logging.Info().Msg("Shutdown complete")
}
