// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package leaderboard ranks tracked players and decides when boards are posted.

Rankings are pure functions over a state snapshot:

  - Deaths: players with at least one death, most deaths first.
  - Survival: best of longest recorded life and the current life for alive
    players.
  - Hours: lifetime hours survived over all deaths.
  - Skill: current level for alive players, historical maximum for dead ones.

Every board keeps the top DefaultLimit entries. Ties break by username so a
board built twice from the same snapshot is identical.

# Scheduling

Planner turns ticks into posts. Two cron schedules (5-field, see ParseCron)
cover the daily boards and the weekly skill boards, and an activity rule
posts the death board every N ticks when events were applied since the last
board. A schedule fires at most once per due time.
*/
package leaderboard
