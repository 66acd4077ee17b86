// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package cache provides the bounded event-key set used to drop PerkLog events
that were already processed.

The server can write the same event line twice, and a rotated file is read
again from the start. Dedup remembers the most recent keys (default 500) in
insertion order:

	d := cache.NewDedup(0)
	if d.SeenOrRecord(ev.Key()) {
	    // first time: apply the event
	}

The set lives in memory only; after a restart the persisted file cursors keep
old lines from being read again.

# Thread Safety

Dedup is safe for concurrent use. The ingest driver holds its own lock around
every tick, so contention never occurs in practice.
*/
package cache
