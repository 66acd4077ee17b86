// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Coordinates is an in-game (x, y, z) tile position.
type Coordinates [3]int

// String renders the position the way the server log does: "(x, y, z)".
func (c Coordinates) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c[0], c[1], c[2])
}

// UnmarshalJSON accepts both the array form written by Perkwatch and the
// "(x, y, z)" string form found in state files from earlier tracker versions.
func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var arr []int
	if err := json.Unmarshal(data, &arr); err == nil {
		if len(arr) != 3 {
			return fmt.Errorf("coordinates: want 3 values, got %d", len(arr))
		}
		copy(c[:], arr)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("coordinates: unsupported value %s", string(data))
	}
	parsed, err := ParseCoordinates(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCoordinates parses "x,y,z" with optional surrounding parentheses and
// spaces.
func ParseCoordinates(s string) (Coordinates, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Coordinates{}, fmt.Errorf("coordinates: want 3 values in %q", s)
	}

	var c Coordinates
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Coordinates{}, fmt.Errorf("coordinates: invalid value %q: %w", p, err)
		}
		c[i] = n
	}
	return c, nil
}

// Skills maps a skill name to a level.
type Skills map[string]uint32

// Clone returns an independent copy. A nil receiver yields an empty map.
func (s Skills) Clone() Skills {
	out := make(Skills, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// CurrentCharacter is the character a player is playing right now (or the
// one that most recently died).
type CurrentCharacter struct {
	Alive         bool        `json:"alive"`
	SpawnTime     *time.Time  `json:"spawn_time"`
	HoursSurvived float64     `json:"hours_survived"`
	LastLocation  Coordinates `json:"last_location"`
	Skills        Skills      `json:"skills"`
}

// legacySpawnLayout is a zone-less ISO 8601 timestamp, as written by earlier
// tracker versions. Those values are read as local time.
const legacySpawnLayout = "2006-01-02T15:04:05.999999999"

// UnmarshalJSON accepts spawn_time as RFC 3339 or in the zone-less legacy
// form.
func (c *CurrentCharacter) UnmarshalJSON(data []byte) error {
	var raw struct {
		Alive         bool        `json:"alive"`
		SpawnTime     *string     `json:"spawn_time"`
		HoursSurvived float64     `json:"hours_survived"`
		LastLocation  Coordinates `json:"last_location"`
		Skills        Skills      `json:"skills"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = CurrentCharacter{
		Alive:         raw.Alive,
		HoursSurvived: raw.HoursSurvived,
		LastLocation:  raw.LastLocation,
		Skills:        raw.Skills,
	}
	if raw.SpawnTime == nil || *raw.SpawnTime == "" {
		return nil
	}
	t, err := ParseSpawnTime(*raw.SpawnTime)
	if err != nil {
		return err
	}
	c.SpawnTime = &t
	return nil
}

// ParseSpawnTime parses an RFC 3339 timestamp, falling back to the zone-less
// legacy layout in the local time zone.
func ParseSpawnTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(legacySpawnLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("spawn_time: unsupported value %q", s)
	}
	return t, nil
}

// LifetimeStats aggregates every completed life of a player.
type LifetimeStats struct {
	// TotalHoursSurvived is the sum of hours survived over all deaths.
	TotalHoursSurvived float64 `json:"total_hours_survived"`

	// LongestSurvival is the maximum hours survived recorded at a death.
	LongestSurvival float64 `json:"longest_survival"`

	// SkillMilestones is the historical maximum level per skill.
	SkillMilestones Skills `json:"skill_milestones"`
}

// PlayerRecord is the persistent statistics record for one username.
//
// The same SteamID may appear under several usernames; records are never
// merged.
type PlayerRecord struct {
	SteamID          string           `json:"steam_id"`
	TotalDeaths      uint64           `json:"total_deaths"`
	TotalRespawns    uint64           `json:"total_respawns"`
	CurrentCharacter CurrentCharacter `json:"current_character"`
	Lifetime         LifetimeStats    `json:"lifetime_stats"`
}

// NewPlayerRecord returns a record with all-zero statistics.
func NewPlayerRecord(steamID string) *PlayerRecord {
	return &PlayerRecord{
		SteamID: steamID,
		CurrentCharacter: CurrentCharacter{
			Skills: Skills{},
		},
		Lifetime: LifetimeStats{
			SkillMilestones: Skills{},
		},
	}
}

// AverageSurvival returns lifetime hours divided by deaths. The second return
// value is false when the player has never died, in which case no division
// is performed.
func (p *PlayerRecord) AverageSurvival() (float64, bool) {
	if p.TotalDeaths == 0 {
		return 0, false
	}
	return p.Lifetime.TotalHoursSurvived / float64(p.TotalDeaths), true
}

// Clone returns a deep copy of the record.
func (p *PlayerRecord) Clone() *PlayerRecord {
	out := *p
	out.CurrentCharacter.Skills = p.CurrentCharacter.Skills.Clone()
	out.Lifetime.SkillMilestones = p.Lifetime.SkillMilestones.Clone()
	if p.CurrentCharacter.SpawnTime != nil {
		t := *p.CurrentCharacter.SpawnTime
		out.CurrentCharacter.SpawnTime = &t
	}
	return &out
}

// normalize replaces nil maps left by older or hand-edited state documents.
func (p *PlayerRecord) normalize() {
	if p.CurrentCharacter.Skills == nil {
		p.CurrentCharacter.Skills = Skills{}
	}
	if p.Lifetime.SkillMilestones == nil {
		p.Lifetime.SkillMilestones = Skills{}
	}
}
