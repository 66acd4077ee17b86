// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every optional setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	svcCfg.Interval = cfg.Ingest.CheckInterval
type Config struct {
	Discord     DiscordConfig     `koanf:"discord"`
	Transport   TransportConfig   `koanf:"transport"`
	Ingest      IngestConfig      `koanf:"ingest"`
	State       StateConfig       `koanf:"state"`
	Leaderboard LeaderboardConfig `koanf:"leaderboard"`
	Server      ServerConfig      `koanf:"server"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// DiscordConfig holds the webhook notifier settings.
//
// Environment Variables:
//   - DISCORD_WEBHOOK_URL: Webhook URL (required unless DRY_RUN)
//   - DISCORD_USERNAME: Name shown on posts (default: Zomboid Stats Tracker)
//   - DISCORD_RATE_LIMIT_MS: Minimum gap between posts (default: 1000)
//   - DRY_RUN: Log notifications instead of posting them (default: false)
type DiscordConfig struct {
	WebhookURL  string `koanf:"webhook_url" env:"DISCORD_WEBHOOK_URL" validate:"omitempty,url"`
	Username    string `koanf:"username" env:"DISCORD_USERNAME" validate:"required,max=80"`
	RateLimitMs int    `koanf:"rate_limit_ms" env:"DISCORD_RATE_LIMIT_MS" validate:"gte=0,lte=60000"`
	DryRun      bool   `koanf:"dry_run" env:"DRY_RUN"`
}

// RateLimit returns RateLimitMs as a duration.
func (d DiscordConfig) RateLimit() time.Duration {
	return time.Duration(d.RateLimitMs) * time.Millisecond
}

// Transport kinds.
const (
	TransportFTP   = "ftp"
	TransportLocal = "local"
)

// TransportConfig selects where the PerkLog files are read from.
//
// Environment Variables:
//   - TRANSPORT: ftp or local (default: ftp)
//   - FTP_HOST, FTP_PORT (default: 34231), FTP_USER, FTP_PASS (host, user and
//     password required for ftp)
//   - FTP_TIMEOUT: Dial and command timeout (default: 30s)
type TransportConfig struct {
	Kind     string        `koanf:"kind" env:"TRANSPORT" validate:"oneof=ftp local"`
	Host     string        `koanf:"host" env:"FTP_HOST"`
	Port     int           `koanf:"port" env:"FTP_PORT" validate:"min=1,max=65535"`
	User     string        `koanf:"user" env:"FTP_USER"`
	Password string        `koanf:"password" env:"FTP_PASS"`
	Timeout  time.Duration `koanf:"timeout" env:"FTP_TIMEOUT" validate:"gte=1s"`
}

// Address returns host:port.
func (t TransportConfig) Address() string {
	return fmt.Sprintf("%s:%d", t.Host, t.Port)
}

// IngestConfig holds the polling loop settings.
//
// Environment Variables:
//   - LOG_BASE_PATH: Directory holding the dated log folders (default: /Logs)
//   - CHECK_INTERVAL: Poll interval; bare integers are seconds (default: 30s)
//   - SKILL_NOTIFICATIONS: all, milestones or none (default: milestones)
//   - DEDUP_CAPACITY: Remembered event keys (default: 500)
type IngestConfig struct {
	BasePath           string        `koanf:"base_path" env:"LOG_BASE_PATH" validate:"required"`
	CheckInterval      time.Duration `koanf:"check_interval" env:"CHECK_INTERVAL" validate:"gte=1s"`
	SkillNotifications string        `koanf:"skill_notifications" env:"SKILL_NOTIFICATIONS" validate:"oneof=all milestones none"`
	DedupCapacity      int           `koanf:"dedup_capacity" env:"DEDUP_CAPACITY" validate:"min=1"`
}

// StateConfig selects the persistent state backend.
//
// Environment Variables:
//   - STATE_BACKEND: file or badger (default: file)
//   - PLAYER_STATS_FILE: JSON document path (default: player_stats.json)
//   - STATE_BADGER_PATH: Badger directory (required for badger)
type StateConfig struct {
	Backend    string `koanf:"backend" env:"STATE_BACKEND" validate:"oneof=file badger"`
	File       string `koanf:"file" env:"PLAYER_STATS_FILE"`
	BadgerPath string `koanf:"badger_path" env:"STATE_BADGER_PATH"`
}

// Path returns the location used by the selected backend.
func (s StateConfig) Path() string {
	if s.Backend == "badger" {
		return s.BadgerPath
	}
	return s.File
}

// LeaderboardConfig holds the scheduled leaderboard settings. An empty cron
// disables that schedule.
//
// Environment Variables:
//   - LEADERBOARDS_ENABLED (default: true)
//   - LEADERBOARD_DAILY_CRON (default: "0 0,12 * * *")
//   - LEADERBOARD_WEEKLY_CRON (default: "0 0 * * 0")
//   - LEADERBOARD_WEEKLY_SKILLS: Comma-separated skill names
//   - LEADERBOARD_ACTIVITY_TICKS: Ticks between activity boards, 0 disables (default: 100)
//   - LEADERBOARD_TIMEZONE: IANA zone for the cron schedules (default: Local)
type LeaderboardConfig struct {
	Enabled       bool     `koanf:"enabled" env:"LEADERBOARDS_ENABLED"`
	DailyCron     string   `koanf:"daily_cron" env:"LEADERBOARD_DAILY_CRON"`
	WeeklyCron    string   `koanf:"weekly_cron" env:"LEADERBOARD_WEEKLY_CRON"`
	WeeklySkills  []string `koanf:"weekly_skills" env:"LEADERBOARD_WEEKLY_SKILLS"`
	ActivityTicks int      `koanf:"activity_ticks" env:"LEADERBOARD_ACTIVITY_TICKS" validate:"gte=0"`
	Timezone      string   `koanf:"timezone" env:"LEADERBOARD_TIMEZONE"`
}

// Location resolves Timezone. Empty and "Local" mean the process zone.
func (l LeaderboardConfig) Location() (*time.Location, error) {
	if l.Timezone == "" || l.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(l.Timezone)
}

// ServerConfig holds the read-only HTTP API settings.
type ServerConfig struct {
	Enabled     bool     `koanf:"enabled" env:"HTTP_ENABLED"`
	Host        string   `koanf:"host" env:"HTTP_HOST"`
	Port        int      `koanf:"port" env:"HTTP_PORT" validate:"min=1,max=65535"`
	RateLimit   int      `koanf:"rate_limit" env:"HTTP_RATE_LIMIT" validate:"gte=0"`
	CORSOrigins []string `koanf:"cors_origins" env:"HTTP_CORS_ORIGINS"`
}

// Address returns host:port for the listener.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" env:"LOG_LEVEL" validate:"oneof=trace debug info warn warning error disabled off"`
	Format string `koanf:"format" env:"LOG_FORMAT" validate:"oneof=json console"`
	Caller bool   `koanf:"caller" env:"LOG_CALLER"`
}

// Load reads configuration from defaults, the config file and environment
// variables, in that order of precedence. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
