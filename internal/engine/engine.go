// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package engine

import (
	"time"

	"github.com/tomtom215/perkwatch/internal/models"
	"github.com/tomtom215/perkwatch/internal/perklog"
)

// topSkillCount is the number of skills carried by a DeathIntent.
const topSkillCount = 3

// Transition describes the effect of applying one event.
type Transition struct {
	Username string
	Kind     perklog.Kind

	// Created is true when the event created the player's record.
	Created bool

	// Changed is true when any state was mutated. A Transition with
	// Changed false is a no-op and the state needs no flush.
	Changed bool
}

// Engine applies events to a SystemState.
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for spawn times.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an Engine using the wall clock unless WithClock is given.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// InitPlayer creates a zeroed record for username if none exists. It
// returns true when a record was created. An existing record is left
// untouched, including its steam id.
func (e *Engine) InitPlayer(state *models.SystemState, username, steamID string) bool {
	if _, ok := state.Players[username]; ok {
		return false
	}
	state.Players[username] = models.NewPlayerRecord(steamID)
	return true
}

// Apply routes ev to the operation for its kind. Unknown kinds are parsed
// events the tracker does not act on; they produce a no-op Transition.
func (e *Engine) Apply(state *models.SystemState, ev *perklog.Event) (Transition, []Intent) {
	switch ev.Kind {
	case perklog.KindDied:
		return e.ApplyDeath(state, ev)
	case perklog.KindCreatedPlayer:
		return e.ApplySpawn(state, ev)
	case perklog.KindLevelChanged:
		return e.ApplyLevelChange(state, ev)
	case perklog.KindLogin:
		return e.ApplyLogin(state, ev)
	case perklog.KindUnknown:
		return Transition{Username: ev.Username, Kind: ev.Kind}, nil
	default:
		return Transition{Username: ev.Username, Kind: ev.Kind}, nil
	}
}

// ApplyDeath closes the current life.
func (e *Engine) ApplyDeath(state *models.SystemState, ev *perklog.Event) (Transition, []Intent) {
	created := e.InitPlayer(state, ev.Username, ev.SteamID)
	p := state.Players[ev.Username]

	// Captured before anything else changes: these are the dying
	// character's skills.
	top := TopSkills(p.CurrentCharacter.Skills, topSkillCount)

	p.TotalDeaths++
	p.CurrentCharacter.Alive = false
	p.CurrentCharacter.HoursSurvived = ev.HoursSurvived
	p.CurrentCharacter.LastLocation = ev.Coordinates

	p.Lifetime.TotalHoursSurvived += ev.HoursSurvived
	if ev.HoursSurvived > p.Lifetime.LongestSurvival {
		p.Lifetime.LongestSurvival = ev.HoursSurvived
	}

	intent := DeathIntent{
		Username:        ev.Username,
		DeathCount:      p.TotalDeaths,
		Ordinal:         Ordinal(p.TotalDeaths),
		TopSkills:       top,
		HoursSurvived:   ev.HoursSurvived,
		Location:        ev.Coordinates,
		LongestSurvival: p.Lifetime.LongestSurvival,
	}
	return Transition{Username: ev.Username, Kind: ev.Kind, Created: created, Changed: true}, []Intent{intent}
}

// ApplySpawn starts a new life. The current character is replaced
// wholesale, so skills from the previous life are discarded; they live on
// only in the lifetime milestones.
func (e *Engine) ApplySpawn(state *models.SystemState, ev *perklog.Event) (Transition, []Intent) {
	created := e.InitPlayer(state, ev.Username, ev.SteamID)
	p := state.Players[ev.Username]

	spawnTime := e.now().UTC()
	p.TotalRespawns++
	p.CurrentCharacter = models.CurrentCharacter{
		Alive:         true,
		SpawnTime:     &spawnTime,
		HoursSurvived: 0,
		LastLocation:  ev.Coordinates,
		Skills:        perklog.DecodeSkills(ev.Detail),
	}

	intent := RespawnIntent{
		Username:     ev.Username,
		RespawnCount: p.TotalRespawns,
		DeathCount:   p.TotalDeaths,
	}
	intent.AverageSurvival, intent.HasAverage = p.AverageSurvival()

	return Transition{Username: ev.Username, Kind: ev.Kind, Created: created, Changed: true}, []Intent{intent}
}

// ApplyLevelChange records one skill level. A level-change event whose
// detail is missing or malformed is a no-op: no record is created, nothing
// is mutated and no intent is returned.
//
// A valid change always yields a LevelChangeIntent; callers decide whether
// to deliver it with SkillPolicy.
func (e *Engine) ApplyLevelChange(state *models.SystemState, ev *perklog.Event) (Transition, []Intent) {
	skill, level, ok := ev.LevelChange()
	if !ok {
		return Transition{Username: ev.Username, Kind: ev.Kind}, nil
	}

	created := e.InitPlayer(state, ev.Username, ev.SteamID)
	p := state.Players[ev.Username]

	p.CurrentCharacter.Skills[skill] = level
	p.CurrentCharacter.HoursSurvived = ev.HoursSurvived
	if level > p.Lifetime.SkillMilestones[skill] {
		p.Lifetime.SkillMilestones[skill] = level
	}

	intent := LevelChangeIntent{
		Username:      ev.Username,
		Skill:         skill,
		Level:         level,
		HoursSurvived: ev.HoursSurvived,
	}
	return Transition{Username: ev.Username, Kind: ev.Kind, Created: created, Changed: true}, []Intent{intent}
}

// ApplyLogin reconciles the current character with the skill snapshot sent
// on reconnect. Without a snapshot it changes nothing beyond creating the
// record. Login never counts as a respawn and never touches lifetime
// statistics.
func (e *Engine) ApplyLogin(state *models.SystemState, ev *perklog.Event) (Transition, []Intent) {
	created := e.InitPlayer(state, ev.Username, ev.SteamID)
	t := Transition{Username: ev.Username, Kind: ev.Kind, Created: created, Changed: created}
	if ev.Detail == "" {
		return t, nil
	}

	p := state.Players[ev.Username]
	p.CurrentCharacter.Skills = perklog.DecodeSkills(ev.Detail)
	p.CurrentCharacter.Alive = true
	p.CurrentCharacter.HoursSurvived = ev.HoursSurvived

	t.Changed = true
	return t, nil
}
