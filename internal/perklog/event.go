// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package perklog

import (
	"strings"

	"github.com/tomtom215/perkwatch/internal/models"
)

// Kind is the classified type of a parsed PerkLog line.
type Kind int

const (
	// KindUnknown is any label the tracker does not act on.
	KindUnknown Kind = iota

	// KindDied is a character death.
	KindDied

	// KindCreatedPlayer is a new character spawn ("Created Player N").
	KindCreatedPlayer

	// KindLevelChanged is a single skill level change.
	KindLevelChanged

	// KindLogin is a reconnect of an existing character.
	KindLogin
)

// Log labels recognized by ClassifyKind.
const (
	LabelDied          = "Died"
	LabelCreatedPlayer = "Created Player"
	LabelLevelChanged  = "Level Changed"
	LabelLogin         = "Login"
)

// String returns a stable lowercase name used in logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindDied:
		return "died"
	case KindCreatedPlayer:
		return "created_player"
	case KindLevelChanged:
		return "level_changed"
	case KindLogin:
		return "login"
	default:
		return "unknown"
	}
}

// ClassifyKind maps a raw event label to a Kind.
func ClassifyKind(label string) Kind {
	switch {
	case label == LabelDied:
		return KindDied
	case strings.HasPrefix(label, LabelCreatedPlayer):
		return KindCreatedPlayer
	case label == LabelLevelChanged:
		return KindLevelChanged
	case label == LabelLogin:
		return KindLogin
	default:
		return KindUnknown
	}
}

// Event is one parsed PerkLog line.
type Event struct {
	Timestamp     string
	SteamID       string
	Username      string
	Coordinates   models.Coordinates
	Kind          Kind
	Label         string
	Detail        string
	HoursSurvived float64
}

// Key is the identity used to suppress re-processing of an event.
//
// Two distinct events with the same username, label and timestamp collapse
// into one; the server timestamp resolution bounds how precise this is.
type Key struct {
	Username  string
	Label     string
	Timestamp string
}

// String renders the key as "<username>_<label>_<timestamp>".
func (k Key) String() string {
	return k.Username + "_" + k.Label + "_" + k.Timestamp
}

// Key returns the dedup identity of the event.
func (e *Event) Key() Key {
	return Key{Username: e.Username, Label: e.Label, Timestamp: e.Timestamp}
}

// LevelChange splits a level-change detail of the form "<skill>][<level>".
// ok is false when the detail is missing or malformed.
func (e *Event) LevelChange() (skill string, level uint32, ok bool) {
	if e.Kind != KindLevelChanged {
		return "", 0, false
	}
	return decodeLevelDetail(e.Detail)
}
