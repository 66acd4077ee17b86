// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package notify

import (
	"context"

	"github.com/tomtom215/perkwatch/internal/logging"
)

// Log writes embeds to the log. It never fails.
type Log struct{}

// Name implements Notifier.
func (Log) Name() string { return "log" }

// Send implements Notifier.
func (Log) Send(ctx context.Context, embed Embed) error {
	logging.Ctx(ctx).Info().
		Str("title", embed.Title).
		Str("description", embed.Description).
		Msg("Notification")
	return nil
}
