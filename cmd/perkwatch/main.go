// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

// Package main is the entry point for Perkwatch.
//
// Perkwatch follows the PerkLog files a Project Zomboid server writes, keeps
// per-player death, survival and skill statistics, and announces deaths,
// respawns, skill milestones and leaderboards to a Discord webhook.
//
// # Startup
//
//  1. Configuration: defaults, config.yaml and environment (Koanf v2)
//  2. State store: JSON document or BadgerDB, loaded once
//  3. Transport: FTP or local directory behind a circuit breaker
//  4. Notifier: Discord webhook, or the log in DRY_RUN mode
//  5. Supervisor tree: the ingest service and the HTTP API
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the tree. The ingest service flushes dirty state
// before it returns and the store is closed last.
//
// # Example Usage
//
//	export FTP_HOST=zomboid.example.com
//	export FTP_USER=admin
//	export FTP_PASS=secret
//	export DISCORD_WEBHOOK_URL=https://discord.com/api/webhooks/...
//	./perkwatch
//
// Reading a local server install without posting anything:
//
//	TRANSPORT=local LOG_BASE_PATH=$HOME/Zomboid/Logs DRY_RUN=true ./perkwatch
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/perkwatch/internal/api"
	"github.com/tomtom215/perkwatch/internal/config"
	"github.com/tomtom215/perkwatch/internal/engine"
	"github.com/tomtom215/perkwatch/internal/ingest"
	"github.com/tomtom215/perkwatch/internal/logging"
	"github.com/tomtom215/perkwatch/internal/notify"
	"github.com/tomtom215/perkwatch/internal/state"
	"github.com/tomtom215/perkwatch/internal/supervisor"
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
		Str("transport", cfg.Transport.Kind).
		Str("base_path", cfg.Ingest.BasePath).
		Dur("check_interval", cfg.Ingest.CheckInterval).
		Str("state_backend", cfg.State.Backend).
		Str("webhook", logging.RedactURL(cfg.Discord.WebhookURL)).
		Bool("dry_run", cfg.Discord.DryRun).
		Msg("Starting Perkwatch")

	policy, err := engine.ParseSkillPolicy(cfg.Ingest.SkillNotifications)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid skill notification policy")
	}

	store, err := state.Open(state.Backend(cfg.State.Backend), cfg.State.Path())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open state store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing state store")
		}
	}()

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := store.Load(loadCtx)
	cancelLoad()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load state")
		return
	}
	logging.Info().
		Int("players", len(st.Players)).
		Int("cursors", len(st.Cursors)).
		Msg("State loaded")

	announcer := notify.NewAnnouncer(newNotifier(cfg))

	driver := ingest.NewDriver(ingest.Config{
		BasePath:      cfg.Ingest.BasePath,
		Policy:        policy,
		DedupCapacity: cfg.Ingest.DedupCapacity,
	}, st, newConnector(cfg), store, announcer)

	planner, err := newPlanner(cfg, time.Now())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to build leaderboard schedule")
		return
	}

	treeCfg := supervisor.DefaultTreeConfig()
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), treeCfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return
	}

	svcCfg := ingest.DefaultServiceConfig()
	svcCfg.Interval = cfg.Ingest.CheckInterval
	svcCfg.ShutdownTimeout = treeCfg.ShutdownTimeout
	tree.AddIngestService(ingest.NewService(driver, svcCfg, planner, announcer))

	if gc := newGCService(store); gc != nil {
		tree.AddIngestService(gc)
	}

	if cfg.Server.Enabled {
		router := api.NewRouter(api.NewHandler(driver), &api.ChiMiddlewareConfig{
			CORSAllowedOrigins: cfg.Server.CORSOrigins,
			CORSMaxAge:         86400,
			RateLimitRequests:  cfg.Server.RateLimit,
			RateLimitWindow:    time.Minute,
		})
		server := &http.Server{
			Handler:           router.SetupChi(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		}
		tree.AddAPIService(supervisor.NewAPIService(server, cfg.Server.Address(), supervisor.DefaultAPIShutdownTimeout))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	// The ingest service flushes on shutdown; this covers a service that
	// was stopped by the timeout before it could.
	flushCtx, cancelFlush := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelFlush()
	if err := driver.Flush(flushCtx); err != nil {
		logging.Error().Err(err).Msg("Final state flush failed")
	}

	logging.Info().Msg("Perkwatch stopped")
}
