// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package models defines the persistent data structures for Perkwatch.

Key Components:

  - PlayerRecord: lifetime statistics and current character for one username
  - SystemState: the process-wide aggregate of players and file cursors
  - LogFileID: identity of one remote append-only PerkLog file
  - CursorMap: last-consumed byte offset per remote file path

The JSON layout of SystemState is the on-disk state document:

	{
	  "player_stats":   { "<username>": PlayerRecord, ... },
	  "file_positions": { "<full remote path>": <byte offset>, ... }
	}

The document is written in full on every flush, it is never appended to.

Monotonicity:

The following fields never decrease for the lifetime of a PlayerRecord:
TotalDeaths, TotalRespawns, Lifetime.TotalHoursSurvived,
Lifetime.LongestSurvival and every Lifetime.SkillMilestones entry. The engine
package is the only writer and tests assert these properties directly.
*/
package models
