// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package notify turns engine intents and leaderboards into Discord embeds and
delivers them.

Announcer is the entry point used by the ingest service. It formats each
intent (death, respawn, level change) or board into an Embed and hands it to
a Notifier:

  - Discord posts to a webhook, paced by a token bucket.
  - Log writes the embed to the log instead; it is used when no webhook URL
    is configured.

Delivery failures are returned to the caller and counted in metrics. A failed
notification never rolls back the state change that produced it.
*/
package notify
