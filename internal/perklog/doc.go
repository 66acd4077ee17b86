// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

/*
Package perklog parses lines of the Project Zomboid PerkLog.

A PerkLog event line looks like:

	[12:00:00][76561190][Bob][100,200,0][Died][Hours Survived: 12.5].
	[12:05:00][76561190][Bob][100,200,0][Level Changed][Fitness][6][Hours Survived: 1.0].
	[12:06:00][76561190][Bob][100,200,0][Created Player 2][Cooking=0, Fitness=5][Hours Survived: 0].

Parsing is a two-stage grammar. Stage one is a bracket tokenizer that
extracts the five leading groups and the "Hours Survived" marker; lines
without that shape are not events. Stage two is a payload decoder selected by
the recognized Kind:

  - Level Changed: "[Level Changed][<skill>][<level>]" gives the detail
    "<skill>][<level>". A line that fails this stricter match is still an
    event, with an empty detail.
  - Created Player / Login: a "Skill=Level, ..." bracket directly after the
    label becomes the detail and is decoded with DecodeSkills.
  - Everything else carries no detail.
*/
package perklog
