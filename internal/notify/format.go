// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/perkwatch/internal/engine"
	"github.com/tomtom215/perkwatch/internal/leaderboard"
)

// Embed colors.
const (
	colorRespawn     = 0x00FF00
	colorLevelUp     = 0xFFD700
	colorDeathBoard  = 0x9900FF
	colorSurvival    = 0x00BFFF
	colorHoursBoard  = 0xFFD700
	colorSkillsBoard = 0x1E90FF
)

var medals = [...]string{"🥇", "🥈", "🥉"}

var skillEmoji = map[string]string{
	"Aiming":    "🎯",
	"Fitness":   "💪",
	"Strength":  "🏋️",
	"Cooking":   "🍳",
	"Farming":   "🌾",
	"Mechanics": "🔧",
	"Carpentry": "🔨",
}

// FormatHours renders in-game hours as "X days, Y hours", or "Y hours" under
// a day. Fractions of an hour are dropped.
func FormatHours(hours float64) string {
	if hours < 0 {
		hours = 0
	}
	total := int64(hours)
	days, rem := total/24, total%24
	if days > 0 {
		return fmt.Sprintf("%d %s, %d %s", days, plural(days, "day"), rem, plural(rem, "hour"))
	}
	return fmt.Sprintf("%d %s", rem, plural(rem, "hour"))
}

func plural(n int64, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// DeathEmoji returns the title emoji for a death count.
func DeathEmoji(count uint64) string {
	switch {
	case count <= 1:
		return "💀"
	case count <= 3:
		return "☠️"
	case count <= 5:
		return "⚰️"
	case count <= 10:
		return "👻"
	default:
		return "🏴‍☠️"
	}
}

// DeathColor returns the embed color for a death count.
func DeathColor(count uint64) int {
	switch {
	case count <= 1:
		return 0xFF0000
	case count <= 3:
		return 0xFF6600
	case count <= 5:
		return 0xFF9900
	case count <= 10:
		return 0xFFCC00
	default:
		return 0x990000
	}
}

// SkillEmoji returns the emoji used on a skill board.
func SkillEmoji(skill string) string {
	if e, ok := skillEmoji[skill]; ok {
		return e
	}
	return "📊"
}

// Medal returns the prefix for a 1-based rank.
func Medal(rank int) string {
	if rank >= 1 && rank <= len(medals) {
		return medals[rank-1]
	}
	return fmt.Sprintf("**%d.**", rank)
}

func timestamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// DeathEmbed formats a death.
func DeathEmbed(i engine.DeathIntent, now time.Time) Embed {
	lines := []string{
		"⏱️ **Survived:** " + FormatHours(i.HoursSurvived),
		"📍 **Location:** " + i.Location.String(),
	}
	if len(i.TopSkills) > 0 {
		skills := make([]string, 0, len(i.TopSkills))
		for _, s := range i.TopSkills {
			skills = append(skills, fmt.Sprintf("%s %d", s.Skill, s.Level))
		}
		lines = append(lines, "🎯 **Peak Skills:** "+strings.Join(skills, ", "))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("**Total Deaths:** %d", i.DeathCount),
		"**Longest Survival:** "+FormatHours(i.LongestSurvival),
	)

	return Embed{
		Title:       fmt.Sprintf("%s %s has died for the %s time!", DeathEmoji(i.DeathCount), i.Username, i.Ordinal),
		Description: strings.Join(lines, "\n"),
		Color:       DeathColor(i.DeathCount),
		Timestamp:   timestamp(now),
		Footer:      &EmbedFooter{Text: "Rest in pieces 💀"},
	}
}

// RespawnEmbed formats a new character.
func RespawnEmbed(i engine.RespawnIntent, now time.Time) Embed {
	lines := []string{fmt.Sprintf("💀 **Death Count:** %d", i.DeathCount)}
	if i.HasAverage {
		lines = append(lines, "📊 **Average Survival:** "+FormatHours(i.AverageSurvival))
	}
	lines = append(lines, fmt.Sprintf("🎮 **Character #%d**", i.RespawnCount))

	return Embed{
		Title:       fmt.Sprintf("🔄 %s is back in the game!", i.Username),
		Description: strings.Join(lines, "\n"),
		Color:       colorRespawn,
		Timestamp:   timestamp(now),
		Footer:      &EmbedFooter{Text: "Good luck out there!"},
	}
}

// LevelChangeEmbed formats a skill level-up.
func LevelChangeEmbed(i engine.LevelChangeIntent, now time.Time) Embed {
	return Embed{
		Title: fmt.Sprintf("🎉 %s leveled up!", i.Username),
		Description: fmt.Sprintf("**%s** reached level **%d**\n⏱️ After %s survived",
			i.Skill, i.Level, FormatHours(i.HoursSurvived)),
		Color:     colorLevelUp,
		Timestamp: timestamp(now),
		Footer:    &EmbedFooter{Text: "Keep grinding! 💪"},
	}
}

// IntentEmbed formats any engine intent. ok is false for intent types that
// have no message.
func IntentEmbed(intent engine.Intent, now time.Time) (Embed, string, bool) {
	switch i := intent.(type) {
	case engine.DeathIntent:
		return DeathEmbed(i, now), "death", true
	case engine.RespawnIntent:
		return RespawnEmbed(i, now), "respawn", true
	case engine.LevelChangeIntent:
		return LevelChangeEmbed(i, now), "level_change", true
	default:
		return Embed{}, "", false
	}
}

// BoardEmbed formats a leaderboard. ok is false for an empty board.
func BoardEmbed(b leaderboard.Board, now time.Time) (Embed, bool) {
	if b.Empty() {
		return Embed{}, false
	}

	lines := make([]string, 0, len(b.Entries))
	e := Embed{Timestamp: timestamp(now)}

	switch b.Kind {
	case leaderboard.KindDeaths:
		for _, en := range b.Entries {
			lines = append(lines, fmt.Sprintf("%s %s: **%d** %s (avg: %s)",
				Medal(en.Rank), en.Username, en.Deaths, plural(int64(en.Deaths), "death"), FormatHours(en.AverageSurvival)))
		}
		e.Title = "💀 Death Leaderboard 💀"
		e.Color = colorDeathBoard
		e.Footer = &EmbedFooter{Text: fmt.Sprintf("Total tracked players: %d", b.TotalPlayers)}

	case leaderboard.KindSurvival:
		for _, en := range b.Entries {
			marker := ""
			if en.Alive {
				marker = " 🟢"
			}
			lines = append(lines, fmt.Sprintf("%s %s: %s%s", Medal(en.Rank), en.Username, FormatHours(en.Hours), marker))
		}
		lines = append(lines, "", "🟢 = Currently Alive")
		e.Title = "⏱️ Longest Survival Streaks ⏱️"
		e.Color = colorSurvival
		e.Footer = &EmbedFooter{Text: "Survival of the fittest!"}

	case leaderboard.KindHours:
		for _, en := range b.Entries {
			lines = append(lines, fmt.Sprintf("%s %s: %s", Medal(en.Rank), en.Username, FormatHours(en.Hours)))
		}
		e.Title = "🏆 Most Experienced Survivors 🏆"
		e.Color = colorHoursBoard
		e.Footer = &EmbedFooter{Text: "Total playtime across all lives"}

	case leaderboard.KindSkill:
		for _, en := range b.Entries {
			lines = append(lines, fmt.Sprintf("%s %s: Level **%d**", Medal(en.Rank), en.Username, en.Level))
		}
		emoji := SkillEmoji(b.Skill)
		e.Title = fmt.Sprintf("%s Top %s Masters %s", emoji, b.Skill, emoji)
		e.Color = colorSkillsBoard
		e.Footer = &EmbedFooter{Text: fmt.Sprintf("Highest %s levels", b.Skill)}

	default:
		return Embed{}, false
	}

	e.Description = strings.Join(lines, "\n")
	return e, true
}
