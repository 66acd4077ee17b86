// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package logging provides the process-wide zerolog logger.

JSON output is the default; console output is meant for running in a
terminal. The package-level functions (Info, Warn, Error, ...) log through
the global logger configured by Init.

# Quick Start

	logging.Init(logging.Config{Level: "info", Format: "json"})

	logging.Info().Str("base", "/Logs").Msg("Monitoring started")
	logging.Ctx(ctx).Warn().Err(err).Str("file", path).Msg("Fetch failed")

# Correlation

Every ingest tick runs under its own correlation ID and every HTTP request
under a request ID. Ctx(ctx) adds whichever are present:

	ctx = logging.ContextWithNewCorrelationID(ctx)
	logging.Ctx(ctx).Info().Int("events", n).Msg("Tick complete")
	// {"level":"info","correlation_id":"1f2e3d4c","events":3,...}

# Configuration

  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include file:line (default: false)

# slog

NewSlogLogger bridges log/slog to zerolog for libraries that only speak
slog, such as sutureslog for supervisor events.

# Secrets

Credentials never appear in logs. RedactURL and RedactSecret mask webhook
URLs and passwords before they are logged.
*/
package logging
