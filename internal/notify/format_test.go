// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/perkwatch/internal/engine"
	"github.com/tomtom215/perkwatch/internal/leaderboard"
	"github.com/tomtom215/perkwatch/internal/models"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestFormatHours(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0 hours"},
		{1, "1 hour"},
		{12.5, "12 hours"},
		{24, "1 day, 0 hours"},
		{25.9, "1 day, 1 hour"},
		{50, "2 days, 2 hours"},
		{-3, "0 hours"},
	}
	for _, tt := range tests {
		if got := FormatHours(tt.hours); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestDeathEmojiAndColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		count uint64
		emoji string
		color int
	}{
		{1, "💀", 0xFF0000},
		{2, "☠️", 0xFF6600},
		{3, "☠️", 0xFF6600},
		{5, "⚰️", 0xFF9900},
		{10, "👻", 0xFFCC00},
		{11, "🏴‍☠️", 0x990000},
	}
	for _, tt := range tests {
		if got := DeathEmoji(tt.count); got != tt.emoji {
			t.Errorf("DeathEmoji(%d) = %q, want %q", tt.count, got, tt.emoji)
		}
		if got := DeathColor(tt.count); got != tt.color {
			t.Errorf("DeathColor(%d) = %#x, want %#x", tt.count, got, tt.color)
		}
	}
}

func TestMedal(t *testing.T) {
	t.Parallel()

	want := []string{"🥇", "🥈", "🥉", "**4.**", "**10.**"}
	for i, rank := range []int{1, 2, 3, 4, 10} {
		if got := Medal(rank); got != want[i] {
			t.Errorf("Medal(%d) = %q, want %q", rank, got, want[i])
		}
	}
}

func TestDeathEmbed(t *testing.T) {
	t.Parallel()

	e := DeathEmbed(engine.DeathIntent{
		Username:        "Bob",
		DeathCount:      1,
		Ordinal:         "1st",
		TopSkills:       []engine.SkillLevel{{Skill: "Fitness", Level: 5}, {Skill: "Cooking", Level: 2}},
		HoursSurvived:   12.5,
		Location:        models.Coordinates{100, 200, 0},
		LongestSurvival: 12.5,
	}, fixedNow)

	if e.Title != "💀 Bob has died for the 1st time!" {
		t.Errorf("Title = %q", e.Title)
	}
	want := strings.Join([]string{
		"⏱️ **Survived:** 12 hours",
		"📍 **Location:** (100, 200, 0)",
		"🎯 **Peak Skills:** Fitness 5, Cooking 2",
		"",
		"**Total Deaths:** 1",
		"**Longest Survival:** 12 hours",
	}, "\n")
	if e.Description != want {
		t.Errorf("Description =\n%s\nwant\n%s", e.Description, want)
	}
	if e.Color != 0xFF0000 {
		t.Errorf("Color = %#x", e.Color)
	}
	if e.Timestamp != "2026-03-14T12:00:00Z" {
		t.Errorf("Timestamp = %q", e.Timestamp)
	}
	if e.Footer == nil || e.Footer.Text != "Rest in pieces 💀" {
		t.Errorf("Footer = %+v", e.Footer)
	}
}

func TestDeathEmbed_NoSkills(t *testing.T) {
	t.Parallel()

	e := DeathEmbed(engine.DeathIntent{Username: "Bob", DeathCount: 4, Ordinal: "4th"}, fixedNow)
	if strings.Contains(e.Description, "Peak Skills") {
		t.Errorf("unexpected skills line: %q", e.Description)
	}
	if !strings.HasPrefix(e.Title, "⚰️") {
		t.Errorf("Title = %q", e.Title)
	}
}

func TestRespawnEmbed(t *testing.T) {
	t.Parallel()

	e := RespawnEmbed(engine.RespawnIntent{
		Username: "Bob", RespawnCount: 2, DeathCount: 1, AverageSurvival: 30, HasAverage: true,
	}, fixedNow)
	want := "💀 **Death Count:** 1\n📊 **Average Survival:** 1 day, 6 hours\n🎮 **Character #2**"
	if e.Description != want {
		t.Errorf("Description = %q, want %q", e.Description, want)
	}
	if e.Title != "🔄 Bob is back in the game!" || e.Color != 0x00FF00 {
		t.Errorf("Title/Color = %q %#x", e.Title, e.Color)
	}

	first := RespawnEmbed(engine.RespawnIntent{Username: "Bob", RespawnCount: 1}, fixedNow)
	if strings.Contains(first.Description, "Average") {
		t.Errorf("no average expected without deaths: %q", first.Description)
	}
}

func TestLevelChangeEmbed(t *testing.T) {
	t.Parallel()

	e := LevelChangeEmbed(engine.LevelChangeIntent{Username: "Bob", Skill: "Fitness", Level: 5, HoursSurvived: 30}, fixedNow)
	if e.Title != "🎉 Bob leveled up!" {
		t.Errorf("Title = %q", e.Title)
	}
	if e.Description != "**Fitness** reached level **5**\n⏱️ After 1 day, 6 hours survived" {
		t.Errorf("Description = %q", e.Description)
	}
	if e.Footer.Text != "Keep grinding! 💪" {
		t.Errorf("Footer = %q", e.Footer.Text)
	}
}

func TestIntentEmbed_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		intent engine.Intent
		kind   string
	}{
		{engine.DeathIntent{Username: "a", DeathCount: 1, Ordinal: "1st"}, "death"},
		{engine.RespawnIntent{Username: "a"}, "respawn"},
		{engine.LevelChangeIntent{Username: "a"}, "level_change"},
	}
	for _, tt := range tests {
		_, kind, ok := IntentEmbed(tt.intent, fixedNow)
		if !ok || kind != tt.kind {
			t.Errorf("IntentEmbed(%T) = %q %v", tt.intent, kind, ok)
		}
	}
}

func TestBoardEmbed(t *testing.T) {
	t.Parallel()

	deaths := leaderboard.Board{
		Kind:         leaderboard.KindDeaths,
		TotalPlayers: 7,
		Entries: []leaderboard.Entry{
			{Rank: 1, Username: "Bob", Deaths: 5, AverageSurvival: 10},
			{Rank: 2, Username: "Alice", Deaths: 1, AverageSurvival: 48},
			{Rank: 3, Username: "Carol", Deaths: 1},
			{Rank: 4, Username: "Dave", Deaths: 1},
		},
	}
	e, ok := BoardEmbed(deaths, fixedNow)
	if !ok {
		t.Fatal("death board should format")
	}
	lines := strings.Split(e.Description, "\n")
	if lines[0] != "🥇 Bob: **5** deaths (avg: 10 hours)" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "🥈 Alice: **1** death (avg: 2 days, 0 hours)" {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], "**4.** Dave") {
		t.Errorf("line 3 = %q", lines[3])
	}
	if e.Footer.Text != "Total tracked players: 7" || e.Color != 0x9900FF {
		t.Errorf("footer/color = %q %#x", e.Footer.Text, e.Color)
	}

	survival := leaderboard.Board{
		Kind:    leaderboard.KindSurvival,
		Entries: []leaderboard.Entry{{Rank: 1, Username: "Alice", Hours: 25, Alive: true}},
	}
	e, _ = BoardEmbed(survival, fixedNow)
	if e.Description != "🥇 Alice: 1 day, 1 hour 🟢\n\n🟢 = Currently Alive" {
		t.Errorf("survival description = %q", e.Description)
	}

	skill := leaderboard.Board{
		Kind:    leaderboard.KindSkill,
		Skill:   "Aiming",
		Entries: []leaderboard.Entry{{Rank: 1, Username: "Bob", Level: 7}},
	}
	e, _ = BoardEmbed(skill, fixedNow)
	if e.Title != "🎯 Top Aiming Masters 🎯" || e.Description != "🥇 Bob: Level **7**" {
		t.Errorf("skill board = %q / %q", e.Title, e.Description)
	}
	if e.Footer.Text != "Highest Aiming levels" {
		t.Errorf("skill footer = %q", e.Footer.Text)
	}

	hours := leaderboard.Board{
		Kind:    leaderboard.KindHours,
		Entries: []leaderboard.Entry{{Rank: 1, Username: "Bob", Hours: 3}},
	}
	e, _ = BoardEmbed(hours, fixedNow)
	if e.Title != "🏆 Most Experienced Survivors 🏆" || e.Description != "🥇 Bob: 3 hours" {
		t.Errorf("hours board = %q / %q", e.Title, e.Description)
	}

	if _, ok := BoardEmbed(leaderboard.Board{Kind: leaderboard.KindDeaths}, fixedNow); ok {
		t.Error("empty board should not format")
	}
}

func TestSkillEmoji_Default(t *testing.T) {
	t.Parallel()

	if got := SkillEmoji("Tailoring"); got != "📊" {
		t.Errorf("SkillEmoji = %q", got)
	}
}
