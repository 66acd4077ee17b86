// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package leaderboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/perkwatch/internal/models"
)

// DefaultLimit is the number of entries kept on a board.
const DefaultLimit = 10

// ErrUnknownKind is returned by ParseKind for an unrecognized board name.
var ErrUnknownKind = errors.New("unknown leaderboard kind")

// Kind names a board.
type Kind string

const (
	KindDeaths   Kind = "deaths"
	KindSurvival Kind = "survival"
	KindHours    Kind = "hours"
	KindSkill    Kind = "skill"
)

// Entry is one ranked player. Only the fields relevant to the board kind are
// set.
type Entry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`

	Deaths          uint64  `json:"deaths,omitempty"`
	AverageSurvival float64 `json:"average_survival,omitempty"`
	Hours           float64 `json:"hours,omitempty"`
	Alive           bool    `json:"alive,omitempty"`
	Level           uint32  `json:"level,omitempty"`
}

// Board is a ranked list of players.
type Board struct {
	Kind         Kind    `json:"kind"`
	Skill        string  `json:"skill,omitempty"`
	Entries      []Entry `json:"entries"`
	TotalPlayers int     `json:"total_players"`
}

// Empty reports whether the board has no entries. Empty boards are never
// posted.
func (b Board) Empty() bool { return len(b.Entries) == 0 }

// Name returns the board name as accepted by ParseKind.
func (b Board) Name() string {
	if b.Kind == KindSkill {
		return string(KindSkill) + ":" + b.Skill
	}
	return string(b.Kind)
}

// ParseKind parses "deaths", "survival", "hours" or "skill:<Name>".
func ParseKind(s string) (Kind, string, error) {
	switch Kind(s) {
	case KindDeaths, KindSurvival, KindHours:
		return Kind(s), "", nil
	}
	if skill, ok := strings.CutPrefix(s, string(KindSkill)+":"); ok && skill != "" {
		return KindSkill, skill, nil
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Build builds the board named by kind and skill.
func Build(state *models.SystemState, kind Kind, skill string, limit int) (Board, error) {
	switch kind {
	case KindDeaths:
		return Deaths(state, limit), nil
	case KindSurvival:
		return Survival(state, limit), nil
	case KindHours:
		return Hours(state, limit), nil
	case KindSkill:
		if skill == "" {
			return Board{}, fmt.Errorf("%w: skill board needs a skill name", ErrUnknownKind)
		}
		return Skill(state, skill, limit), nil
	default:
		return Board{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Deaths ranks players by total deaths.
func Deaths(state *models.SystemState, limit int) Board {
	var entries []Entry
	for name, p := range state.Players {
		if p.TotalDeaths == 0 {
			continue
		}
		avg, _ := p.AverageSurvival()
		entries = append(entries, Entry{
			Username:        name,
			Deaths:          p.TotalDeaths,
			AverageSurvival: avg,
		})
	}
	rank(entries, func(a, b Entry) int {
		return compareDesc(float64(a.Deaths), float64(b.Deaths))
	})
	return board(KindDeaths, "", entries, limit, state)
}

// Survival ranks players by their best life. Alive players count their
// current life; players with no hours at all are left out.
func Survival(state *models.SystemState, limit int) Board {
	var entries []Entry
	for name, p := range state.Players {
		hours := p.Lifetime.LongestSurvival
		alive := p.CurrentCharacter.Alive
		if alive && p.CurrentCharacter.HoursSurvived > hours {
			hours = p.CurrentCharacter.HoursSurvived
		}
		if hours <= 0 {
			continue
		}
		entries = append(entries, Entry{Username: name, Hours: hours, Alive: alive})
	}
	rank(entries, func(a, b Entry) int { return compareDesc(a.Hours, b.Hours) })
	return board(KindSurvival, "", entries, limit, state)
}

// Hours ranks players by lifetime hours survived.
func Hours(state *models.SystemState, limit int) Board {
	var entries []Entry
	for name, p := range state.Players {
		if p.Lifetime.TotalHoursSurvived <= 0 {
			continue
		}
		entries = append(entries, Entry{Username: name, Hours: p.Lifetime.TotalHoursSurvived})
	}
	rank(entries, func(a, b Entry) int { return compareDesc(a.Hours, b.Hours) })
	return board(KindHours, "", entries, limit, state)
}

// Skill ranks players by one skill. Alive players contribute their current
// level, dead players their historical maximum.
func Skill(state *models.SystemState, skill string, limit int) Board {
	var entries []Entry
	for name, p := range state.Players {
		var level uint32
		if p.CurrentCharacter.Alive {
			level = p.CurrentCharacter.Skills[skill]
		} else {
			level = p.Lifetime.SkillMilestones[skill]
		}
		if level == 0 {
			continue
		}
		entries = append(entries, Entry{Username: name, Level: level, Alive: p.CurrentCharacter.Alive})
	}
	rank(entries, func(a, b Entry) int {
		return compareDesc(float64(a.Level), float64(b.Level))
	})
	return board(KindSkill, skill, entries, limit, state)
}

func board(kind Kind, skill string, entries []Entry, limit int, state *models.SystemState) Board {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	if entries == nil {
		entries = []Entry{}
	}
	return Board{Kind: kind, Skill: skill, Entries: entries, TotalPlayers: len(state.Players)}
}

// rank sorts entries by cmp, then by username.
func rank(entries []Entry, cmp func(a, b Entry) int) {
	sort.Slice(entries, func(i, j int) bool {
		if c := cmp(entries[i], entries[j]); c != 0 {
			return c < 0
		}
		return entries[i].Username < entries[j].Username
	})
}

func compareDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
