// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package engine applies parsed PerkLog events to player records.

Each operation takes the tracker's SystemState and one event, mutates the
named player's record in place and returns a Transition describing what
changed plus any notification intents. The engine never sends anything
itself; the ingest driver forwards intents to a notifier after applying the
configured SkillPolicy.

# Lifecycle

	Created Player  -> ApplySpawn        new life, current character replaced
	Level Changed   -> ApplyLevelChange  current skill set, milestone raised
	Died            -> ApplyDeath        life closed, lifetime totals updated
	Login           -> ApplyLogin        reconnect, skills reconciled only

Spawn replaces the current character wholesale: skills of the character that
just died are gone, and survive only as lifetime milestones. Login is a
reconnect in the middle of a life and never counts as a respawn.

# Invariants

For every player, across any sequence of events:

  - total_deaths and total_respawns never decrease
  - lifetime total_hours_survived and longest_survival never decrease
  - every lifetime skill milestone never decreases
  - Login never touches total_respawns or any lifetime field

The engine holds no locks. The caller owns the state for the duration of a
call.
*/
package engine
