// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package notify

import (
	"context"
	"time"

	"github.com/tomtom215/perkwatch/internal/engine"
	"github.com/tomtom215/perkwatch/internal/leaderboard"
	"github.com/tomtom215/perkwatch/internal/logging"
	"github.com/tomtom215/perkwatch/internal/metrics"
)

// Announcer formats intents and boards and sends them through a Notifier.
type Announcer struct {
	notifier Notifier
	now      func() time.Time
}

// NewAnnouncer wraps n. A nil notifier means Log.
func NewAnnouncer(n Notifier) *Announcer {
	if n == nil {
		n = Log{}
	}
	return &Announcer{notifier: n, now: time.Now}
}

// Notifier returns the underlying notifier.
func (a *Announcer) Notifier() Notifier { return a.notifier }

// Announce delivers one intent.
func (a *Announcer) Announce(ctx context.Context, intent engine.Intent) error {
	embed, kind, ok := IntentEmbed(intent, a.now())
	if !ok {
		return nil
	}

	err := a.notifier.Send(ctx, embed)
	metrics.RecordNotification(kind, err)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("kind", kind).
			Str("username", intent.Player()).
			Str("notifier", a.notifier.Name()).
			Msg("Notification failed")
		return err
	}
	logging.Ctx(ctx).Debug().Str("kind", kind).Str("username", intent.Player()).Msg("Notification sent")
	return nil
}

// AnnounceAll delivers intents in order and returns the number that were
// not delivered. A failure does not stop later intents; a cancelled context
// does.
func (a *Announcer) AnnounceAll(ctx context.Context, intents []engine.Intent) int {
	failed := 0
	for i, in := range intents {
		if ctx.Err() != nil {
			return failed + len(intents) - i
		}
		if err := a.Announce(ctx, in); err != nil {
			failed++
		}
	}
	return failed
}

// PostBoard delivers a leaderboard. Empty boards are skipped and reported as
// not posted.
func (a *Announcer) PostBoard(ctx context.Context, b leaderboard.Board, trigger leaderboard.Trigger) (bool, error) {
	embed, ok := BoardEmbed(b, a.now())
	if !ok {
		return false, nil
	}

	err := a.notifier.Send(ctx, embed)
	metrics.RecordNotification("leaderboard", err)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("board", b.Name()).Msg("Leaderboard post failed")
		return false, err
	}
	metrics.RecordLeaderboard(b.Name(), string(trigger))
	logging.Ctx(ctx).Info().Str("board", b.Name()).Str("trigger", string(trigger)).Msg("Leaderboard posted")
	return true, nil
}
