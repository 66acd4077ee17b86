// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package ingest runs the polling pipeline.

Driver.Tick performs one pass:

 1. Open a transport session.
 2. Pick candidate folders (base plus the newest dated archive folder) and the
    PerkLog files in each, sorted by name.
 3. For each file compare its size to the stored cursor. A smaller size is a
    rotation and the file is re-read from byte 0; an equal size is skipped.
 4. Fetch the unread tail, split it into lines and parse them.
 5. Drop events already seen (Dedup), apply the rest to the engine and
    announce the intents the skill policy keeps.
 6. Advance the cursor to the size read in step 3.
 7. Flush the state if anything changed and publish a read-only snapshot.

A folder or file that fails is logged and skipped; the tick carries on.
State is only mutated after a fetch succeeds.

Service wraps the driver in the poll loop: a tick per interval, no overlap,
an extended pause after repeated failures, leaderboard posting and a final
flush on shutdown.
*/
package ingest
