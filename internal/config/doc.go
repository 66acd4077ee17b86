// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package config provides centralized configuration management for Perkwatch.

Configuration is loaded with Koanf v2 in three layers, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, then config.yaml, config.yml,
    /etc/perkwatch/config.yaml and /etc/perkwatch/config.yml
 3. Environment variables, mapped to config paths by envTransformFunc

# Environment Variables

Discord:
  - DISCORD_WEBHOOK_URL, DISCORD_USERNAME, DISCORD_RATE_LIMIT_MS, DRY_RUN

Transport:
  - TRANSPORT (ftp, local), FTP_HOST, FTP_PORT, FTP_USER, FTP_PASS, FTP_TIMEOUT

Ingestion:
  - LOG_BASE_PATH, CHECK_INTERVAL, SKILL_NOTIFICATIONS, DEDUP_CAPACITY

State:
  - STATE_BACKEND (file, badger), PLAYER_STATS_FILE, STATE_BADGER_PATH

Leaderboards:
  - LEADERBOARDS_ENABLED, LEADERBOARD_DAILY_CRON, LEADERBOARD_WEEKLY_CRON,
    LEADERBOARD_WEEKLY_SKILLS, LEADERBOARD_ACTIVITY_TICKS, LEADERBOARD_TIMEZONE

HTTP API:
  - HTTP_ENABLED, HTTP_HOST, HTTP_PORT, HTTP_RATE_LIMIT, HTTP_CORS_ORIGINS

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Comma-separated values are accepted for list settings. CHECK_INTERVAL and
FTP_TIMEOUT take Go durations ("45s", "2m") or a bare number of seconds.

# Validation

Validate runs the go-playground/validator struct tags first and then the
cross-field rules. Every error names the environment variable to fix:

	DISCORD_WEBHOOK_URL is required unless DRY_RUN is set
	FTP_HOST is required when TRANSPORT is ftp
*/
package config
