// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package state persists the tracker's SystemState.

The persisted form is one JSON document with two top-level fields:

	{
	  "player_stats":   { "<username>": { ...PlayerRecord... } },
	  "file_positions": { "<full remote path>": <byte offset> }
	}

Every Save overwrites the whole document. Two backends are provided:

  - FileStore writes the document to a single file through a temporary
    file and rename, so a crash mid-write leaves the previous document.
  - BadgerStore keeps the document under one key in an embedded BadgerDB.

A missing document loads as an empty state, not an error.
*/
package state
