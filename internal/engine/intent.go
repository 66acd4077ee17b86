// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package engine

import (
	"sort"
	"strconv"

	"github.com/tomtom215/perkwatch/internal/models"
)

// Intent is a notification the engine asks the caller to deliver.
type Intent interface {
	// Player returns the username the intent is about.
	Player() string
}

// SkillLevel is one skill and its level.
type SkillLevel struct {
	Skill string
	Level uint32
}

// DeathIntent is emitted by ApplyDeath.
type DeathIntent struct {
	Username   string
	DeathCount uint64

	// Ordinal is DeathCount with its English suffix ("1st", "22nd").
	Ordinal string

	// TopSkills are up to three skills of the character that just died,
	// highest level first. Skills at level zero are left out.
	TopSkills []SkillLevel

	HoursSurvived   float64
	Location        models.Coordinates
	LongestSurvival float64
}

// Player implements Intent.
func (i DeathIntent) Player() string { return i.Username }

// RespawnIntent is emitted by ApplySpawn.
type RespawnIntent struct {
	Username     string
	RespawnCount uint64
	DeathCount   uint64

	// AverageSurvival is lifetime hours per death. It is only meaningful when
	// HasAverage is true, which requires at least one death.
	AverageSurvival float64
	HasAverage      bool
}

// Player implements Intent.
func (i RespawnIntent) Player() string { return i.Username }

// LevelChangeIntent is emitted by ApplyLevelChange for every valid level
// change. Whether it is delivered is decided by SkillPolicy.
type LevelChangeIntent struct {
	Username      string
	Skill         string
	Level         uint32
	HoursSurvived float64
}

// Player implements Intent.
func (i LevelChangeIntent) Player() string { return i.Username }

// Ordinal returns n with its English ordinal suffix.
func Ordinal(n uint64) string {
	suffix := "th"
	if mod100 := n % 100; mod100 < 10 || mod100 > 20 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.FormatUint(n, 10) + suffix
}

// TopSkills returns at most limit skills with a level above zero, highest
// level first. Equal levels are ordered by skill name.
func TopSkills(skills models.Skills, limit int) []SkillLevel {
	out := make([]SkillLevel, 0, len(skills))
	for name, level := range skills {
		if level == 0 {
			continue
		}
		out = append(out, SkillLevel{Skill: name, Level: level})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Level != out[b].Level {
			return out[a].Level > out[b].Level
		}
		return out[a].Skill < out[b].Skill
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
