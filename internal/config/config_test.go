// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Discord.WebhookURL = "https://discord.com/api/webhooks/1/abc"
	cfg.Transport.Host = "zomboid.example.com"
	cfg.Transport.User = "admin"
	cfg.Transport.Password = "changeme"
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"dry run without webhook", func(c *Config) { c.Discord.WebhookURL = ""; c.Discord.DryRun = true }, ""},
		{"local without ftp host", func(c *Config) { c.Transport.Kind = TransportLocal; c.Transport.Host = "" }, ""},
		{"leaderboards disabled ignore bad cron", func(c *Config) { c.Leaderboard.Enabled = false; c.Leaderboard.DailyCron = "bad" }, ""},
		{"empty cron disables schedule", func(c *Config) { c.Leaderboard.WeeklyCron = "" }, ""},

		{"missing webhook", func(c *Config) { c.Discord.WebhookURL = "" }, "DISCORD_WEBHOOK_URL is required"},
		{"bad webhook url", func(c *Config) { c.Discord.WebhookURL = "not a url" }, "DISCORD_WEBHOOK_URL must be a valid URL"},
		{"missing ftp host", func(c *Config) { c.Transport.Host = "" }, "FTP_HOST is required"},
		{"missing ftp user", func(c *Config) { c.Transport.User = "" }, "FTP_USER is required"},
		{"missing ftp password", func(c *Config) { c.Transport.Password = "" }, "FTP_PASS is required"},
		{"local without ftp password", func(c *Config) { c.Transport.Kind = TransportLocal; c.Transport.Password = "" }, ""},
		{"bad port", func(c *Config) { c.Transport.Port = 0 }, "FTP_PORT must be at least 1"},
		{"unknown transport", func(c *Config) { c.Transport.Kind = "sftp" }, "TRANSPORT must be one of"},
		{"bad skill policy", func(c *Config) { c.Ingest.SkillNotifications = "some" }, "SKILL_NOTIFICATIONS must be one of"},
		{"interval too short", func(c *Config) { c.Ingest.CheckInterval = 0 }, "CHECK_INTERVAL"},
		{"empty base path", func(c *Config) { c.Ingest.BasePath = "" }, "LOG_BASE_PATH is required"},
		{"badger without path", func(c *Config) { c.State.Backend = "badger" }, "STATE_BADGER_PATH is required"},
		{"unknown backend", func(c *Config) { c.State.Backend = "sqlite" }, "STATE_BACKEND must be one of"},
		{"bad daily cron", func(c *Config) { c.Leaderboard.DailyCron = "0 25 * * *" }, "LEADERBOARD_DAILY_CRON"},
		{"bad weekly cron", func(c *Config) { c.Leaderboard.WeeklyCron = "* *" }, "LEADERBOARD_WEEKLY_CRON"},
		{"bad timezone", func(c *Config) { c.Leaderboard.Timezone = "Mars/Olympus" }, "LEADERBOARD_TIMEZONE"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL must be one of"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT must be one of"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestStateConfig_Path(t *testing.T) {
	t.Parallel()

	s := StateConfig{Backend: "file", File: "a.json", BadgerPath: "/b"}
	if s.Path() != "a.json" {
		t.Errorf("Path() = %q", s.Path())
	}
	s.Backend = "badger"
	if s.Path() != "/b" {
		t.Errorf("Path() = %q", s.Path())
	}
}
