// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config mirrors the LOG_* settings.
type Config struct {
	Level  string // trace, debug, info, warn, error, disabled
	Format string // json or console
	Caller bool
	Output io.Writer // os.Stderr when nil
}

var global atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // logging works before Init is called
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	Init(Config{})
}

// Init replaces the global logger. main calls it once the configuration is
// loaded; until then an info-level JSON logger on stderr is in place.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	zctx := zerolog.New(out).With().Timestamp()
	if cfg.Caller {
		zctx = zctx.Caller()
	}
	SetLogger(zctx.Logger())
}

// parseLevel accepts zerolog level names plus "warning" and "off". Empty or
// unknown names mean info; config validation rejects them earlier.
func parseLevel(level string) zerolog.Level {
	switch name := strings.ToLower(strings.TrimSpace(level)); name {
	case "warning":
		return zerolog.WarnLevel
	case "off":
		return zerolog.Disabled
	default:
		lvl, err := zerolog.ParseLevel(name)
		if err != nil || lvl == zerolog.NoLevel {
			return zerolog.InfoLevel
		}
		return lvl
	}
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return *global.Load()
}

// SetLogger replaces the global logger. Tests use it to capture output.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	global.Store(&l)
}

// With starts a child logger context from the global logger.
func With() zerolog.Context {
	return global.Load().With()
}

// WithComponent returns a child logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}

func Info() *zerolog.Event  { return global.Load().Info() }
func Warn() *zerolog.Event  { return global.Load().Warn() }
func Error() *zerolog.Event { return global.Load().Error() }

// Fatal exits the process with status 1 once the event is sent.
func Fatal() *zerolog.Event { return global.Load().Fatal() }

// NewTestLogger creates a JSON logger writing to w.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
