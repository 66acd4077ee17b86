// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package notify

import "context"

// Embed is a Discord message embed.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
}

// EmbedFooter is the footer line of an embed.
type EmbedFooter struct {
	Text string `json:"text"`
}

// Notifier delivers a single embed.
type Notifier interface {
	Name() string
	Send(ctx context.Context, embed Embed) error
}

// webhookPayload is the Discord webhook request body.
type webhookPayload struct {
	Username string  `json:"username,omitempty"`
	Embeds   []Embed `json:"embeds"`
}
