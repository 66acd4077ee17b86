// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/perkwatch/config.yaml",
	"/etc/perkwatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Defaults shared with the rest of the program.
const (
	DefaultFTPPort       = 34231
	DefaultBasePath      = "/Logs"
	DefaultStateFile     = "player_stats.json"
	DefaultCheckInterval = 30 * time.Second
)

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Discord: DiscordConfig{
			Username:    "Zomboid Stats Tracker",
			RateLimitMs: 1000,
		},
		Transport: TransportConfig{
			Kind:    TransportFTP,
			Port:    DefaultFTPPort,
			Timeout: 30 * time.Second,
		},
		Ingest: IngestConfig{
			BasePath:           DefaultBasePath,
			CheckInterval:      DefaultCheckInterval,
			SkillNotifications: "milestones",
			DedupCapacity:      500,
		},
		State: StateConfig{
			Backend: "file",
			File:    DefaultStateFile,
		},
		Leaderboard: LeaderboardConfig{
			Enabled:       true,
			DailyCron:     "0 0,12 * * *",
			WeeklyCron:    "0 0 * * 0",
			WeeklySkills:  []string{"Aiming", "Fitness", "Strength", "Cooking", "Mechanics"},
			ActivityTicks: 100,
			Timezone:      "Local",
		},
		Server: ServerConfig{
			Enabled:   true,
			Host:      "0.0.0.0",
			Port:      8080,
			RateLimit: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// FTP_HOST -> transport.host, CHECK_INTERVAL -> ingest.check_interval
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := processSecondsFields(k); err != nil {
		return nil, fmt.Errorf("failed to process duration fields: %w", err)
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

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"leaderboard.weekly_skills",
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		trimmed := []string{}
		for _, p := range strings.Split(strVal, ",") {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// secondsConfigPaths are durations that also accept a bare number of seconds.
var secondsConfigPaths = []string{
	"ingest.check_interval",
	"transport.timeout",
}

// processSecondsFields rewrites "45" as "45s" so CHECK_INTERVAL=45 keeps
// working alongside CHECK_INTERVAL=45s.
func processSecondsFields(k *koanf.Koanf) error {
	for _, path := range secondsConfigPaths {
		var raw string
		switch v := k.Get(path).(type) {
		case string:
			raw = strings.TrimSpace(v)
		case int:
			raw = strconv.Itoa(v)
		default:
			continue
		}

		secs, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if err := k.Set(path, (time.Duration(secs) * time.Second).String()); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	"discord_webhook_url":   "discord.webhook_url",
	"discord_username":      "discord.username",
	"discord_rate_limit_ms": "discord.rate_limit_ms",
	"dry_run":               "discord.dry_run",

	"transport":   "transport.kind",
	"ftp_host":    "transport.host",
	"ftp_port":    "transport.port",
	"ftp_user":    "transport.user",
	"ftp_pass":    "transport.password",
	"ftp_timeout": "transport.timeout",

	"log_base_path":       "ingest.base_path",
	"check_interval":      "ingest.check_interval",
	"skill_notifications": "ingest.skill_notifications",
	"dedup_capacity":      "ingest.dedup_capacity",

	"state_backend":     "state.backend",
	"player_stats_file": "state.file",
	"state_badger_path": "state.badger_path",

	"leaderboards_enabled":       "leaderboard.enabled",
	"leaderboard_daily_cron":     "leaderboard.daily_cron",
	"leaderboard_weekly_cron":    "leaderboard.weekly_cron",
	"leaderboard_weekly_skills":  "leaderboard.weekly_skills",
	"leaderboard_activity_ticks": "leaderboard.activity_ticks",
	"leaderboard_timezone":       "leaderboard.timezone",

	"http_enabled":      "server.enabled",
	"http_host":         "server.host",
	"http_port":         "server.port",
	"http_rate_limit":   "server.rate_limit",
	"http_cors_origins": "server.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped keys return "" so unrelated environment variables never reach the config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
