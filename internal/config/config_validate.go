// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package config

import (
	"fmt"

	"github.com/tomtom215/perkwatch/internal/leaderboard"
	"github.com/tomtom215/perkwatch/internal/validation"
)

// Validate checks that required configuration is present and valid.
// Struct tags cover single fields; the methods below cover rules that span
// several fields.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}

	if err := c.validateDiscord(); err != nil {
		return err
	}

	if err := c.validateTransport(); err != nil {
		return err
	}

	if err := c.validateState(); err != nil {
		return err
	}

	return c.validateLeaderboard()
}

func (c *Config) validateDiscord() error {
	if c.Discord.WebhookURL == "" && !c.Discord.DryRun {
		return fmt.Errorf("DISCORD_WEBHOOK_URL is required unless DRY_RUN is set")
	}
	return nil
}

func (c *Config) validateTransport() error {
	if c.Transport.Kind != TransportFTP {
		return nil
	}
	if c.Transport.Host == "" {
		return fmt.Errorf("FTP_HOST is required when TRANSPORT is ftp")
	}
	if c.Transport.User == "" {
		return fmt.Errorf("FTP_USER is required when TRANSPORT is ftp")
	}
	if c.Transport.Password == "" {
		return fmt.Errorf("FTP_PASS is required when TRANSPORT is ftp")
	}
	return nil
}

func (c *Config) validateState() error {
	switch c.State.Backend {
	case "badger":
		if c.State.BadgerPath == "" {
			return fmt.Errorf("STATE_BADGER_PATH is required when STATE_BACKEND is badger")
		}
	default:
		if c.State.File == "" {
			return fmt.Errorf("PLAYER_STATS_FILE must not be empty")
		}
	}
	return nil
}

func (c *Config) validateLeaderboard() error {
	if !c.Leaderboard.Enabled {
		return nil
	}
	if c.Leaderboard.DailyCron != "" {
		if _, err := leaderboard.ParseCron(c.Leaderboard.DailyCron); err != nil {
			return fmt.Errorf("LEADERBOARD_DAILY_CRON: %w", err)
		}
	}
	if c.Leaderboard.WeeklyCron != "" {
		if _, err := leaderboard.ParseCron(c.Leaderboard.WeeklyCron); err != nil {
			return fmt.Errorf("LEADERBOARD_WEEKLY_CRON: %w", err)
		}
	}
	if _, err := c.Leaderboard.Location(); err != nil {
		return fmt.Errorf("LEADERBOARD_TIMEZONE: %w", err)
	}
	return nil
}
