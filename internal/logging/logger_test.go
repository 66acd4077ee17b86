// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// Tests touching the global logger are not parallel.

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })

	Info().Str("base", "/Logs").Msg("Monitoring started")

	out := buf.String()
	for _, want := range []string{`"level":"info"`, `"message":"Monitoring started"`, `"base":"/Logs"`, `"time":`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })

	Info().Msg("dropped")
	Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info message should be filtered: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn message missing: %s", out)
	}
}

func TestInit_Console(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })

	Info().Msg("hello console")
	if strings.Contains(buf.String(), `"message"`) {
		t.Errorf("console output should not be JSON: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "hello console") {
		t.Errorf("console output missing message: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{" off ", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSetLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { SetLogger(prev) })

	Error().Err(errors.New("dial failed")).Msg("Connect failed")

	out := buf.String()
	if !strings.Contains(out, `"error":"dial failed"`) {
		t.Errorf("output missing error field: %s", out)
	}
	if !strings.Contains(out, `"level":"error"`) {
		t.Errorf("output missing error level: %s", out)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger()
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { SetLogger(prev) })

	l := WithComponent("notify")
	l.Info().Msg("sent")

	if !strings.Contains(buf.String(), `"component":"notify"`) {
		t.Errorf("output missing component: %s", buf.String())
	}
}
