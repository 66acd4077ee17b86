// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

// Package validation wraps go-playground/validator v10 with a shared
// validator instance and readable error messages.
//
// Field names in messages come from the `env` struct tag when present, so a
// configuration error names the variable to fix:
//
//	type TransportConfig struct {
//	    Port int `koanf:"port" env:"FTP_PORT" validate:"min=1,max=65535"`
//	}
//	// FTP_PORT must be at most 65535
//
// HTTP handlers use the same validator for query parameters and turn the
// result into an API error with ToAPIError.
package validation
