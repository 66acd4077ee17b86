// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package main

import (
	"time"

	"github.com/tomtom215/perkwatch/internal/config"
	"github.com/tomtom215/perkwatch/internal/leaderboard"
	"github.com/tomtom215/perkwatch/internal/logging"
	"github.com/tomtom215/perkwatch/internal/notify"
	"github.com/tomtom215/perkwatch/internal/state"
	"github.com/tomtom215/perkwatch/internal/transport"
)

// newConnector builds the configured transport behind the circuit breaker.
func newConnector(cfg *config.Config) transport.Connector {
	var next transport.Connector
	switch cfg.Transport.Kind {
	case config.TransportLocal:
		next = transport.NewLocal()
	default:
		next = transport.NewFTP(transport.FTPConfig{
			Host:     cfg.Transport.Host,
			Port:     cfg.Transport.Port,
			User:     cfg.Transport.User,
			Password: cfg.Transport.Password,
			Timeout:  cfg.Transport.Timeout,
		})
	}
	return transport.NewBreaker(next, transport.DefaultBreakerSettings())
}

// newNotifier returns the Discord notifier, or the log notifier in dry-run
// mode.
func newNotifier(cfg *config.Config) notify.Notifier {
	if cfg.Discord.DryRun {
		logging.Warn().Msg("DRY_RUN is set: notifications are logged, not posted")
		return notify.Log{}
	}
	return notify.NewDiscord(notify.DiscordConfig{
		WebhookURL: cfg.Discord.WebhookURL,
		Username:   cfg.Discord.Username,
		RateLimit:  cfg.Discord.RateLimit(),
	})
}

// newPlanner returns nil when leaderboards are disabled.
func newPlanner(cfg *config.Config, now time.Time) (*leaderboard.Planner, error) {
	if !cfg.Leaderboard.Enabled {
		return nil, nil
	}
	loc, err := cfg.Leaderboard.Location()
	if err != nil {
		return nil, err
	}
	return leaderboard.NewPlanner(leaderboard.PlannerConfig{
		DailyCron:     cfg.Leaderboard.DailyCron,
		WeeklyCron:    cfg.Leaderboard.WeeklyCron,
		WeeklySkills:  cfg.Leaderboard.WeeklySkills,
		ActivityTicks: cfg.Leaderboard.ActivityTicks,
		Location:      loc,
	}, now)
}

// newGCService returns the value log GC service for the badger backend.
func newGCService(store state.Store) *state.GCService {
	bs, ok := store.(*state.BadgerStore)
	if !ok {
		return nil
	}
	return state.NewGCService(bs, state.DefaultGCInterval)
}
