// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package perklog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tomtom215/perkwatch/internal/models"
)

// Line grammar, stage one. Five bracket groups (timestamp, steam id, username,
// x,y,z, label) separated by optional whitespace, then anything, then the
// "Hours Survived" marker. The span between the label and the marker is kept
// for the kind-specific decoders in stage two.
var lineRe = regexp.MustCompile(
	`\[(.*?)\]\s*\[(.*?)\]\s*\[(.*?)\]\s*\[(-?\d+),(-?\d+),(-?\d+)\]\s*\[(.*?)\](.*?)\[Hours Survived: ([\d.]+)\]`,
)

// levelChangedRe is the stricter stage-two match for "Level Changed" lines.
var levelChangedRe = regexp.MustCompile(`\[Level Changed\]\[(.*?)\]\[(\d+)\]`)

// snapshotRe matches a "Skill=Level, ..." bracket directly after the label.
var snapshotRe = regexp.MustCompile(`^\s*\[([^\[\]]*=[^\[\]]*)\]`)

// Parse turns one raw PerkLog line into an Event. ok is false for lines that
// do not have the event shape; the server interleaves diagnostic lines with
// events and those are dropped silently.
//
// Parse has no side effects: the same line always yields the same result.
func Parse(line string) (ev Event, ok bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return Event{}, false
	}

	var coords models.Coordinates
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(m[4+i])
		if err != nil {
			return Event{}, false
		}
		coords[i] = n
	}

	hours, err := strconv.ParseFloat(m[9], 64)
	if err != nil {
		return Event{}, false
	}

	ev = Event{
		Timestamp:     m[1],
		SteamID:       m[2],
		Username:      m[3],
		Coordinates:   coords,
		Label:         m[7],
		Kind:          ClassifyKind(m[7]),
		HoursSurvived: hours,
	}
	ev.Detail = decodeDetail(ev.Kind, line, m[8])
	return ev, true
}

// decodeDetail is stage two of the grammar: a payload decoder keyed by kind.
// rest is the text between the label bracket and the hours marker.
func decodeDetail(kind Kind, line, rest string) string {
	switch kind {
	case KindLevelChanged:
		lm := levelChangedRe.FindStringSubmatch(line)
		if lm == nil {
			return ""
		}
		return lm[1] + "][" + lm[2]
	case KindCreatedPlayer, KindLogin:
		sm := snapshotRe.FindStringSubmatch(rest)
		if sm == nil {
			return ""
		}
		return strings.TrimSpace(sm[1])
	default:
		return ""
	}
}

// decodeLevelDetail splits "<skill>][<level>".
func decodeLevelDetail(detail string) (string, uint32, bool) {
	skill, levelStr, found := strings.Cut(detail, "][")
	if !found || skill == "" {
		return "", 0, false
	}
	level, err := strconv.ParseUint(levelStr, 10, 32)
	if err != nil {
		return "", 0, false
	}
	return skill, uint32(level), true
}
