// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package perklog

import (
	"strconv"
	"strings"

	"github.com/tomtom215/perkwatch/internal/models"
)

// DecodeSkills parses a "Cooking=0, Fitness=5" skill snapshot.
//
// Pairs without "=" and pairs whose level is not a non-negative integer are
// skipped; a bad pair never discards the rest of the snapshot.
func DecodeSkills(payload string) models.Skills {
	skills := models.Skills{}
	if payload == "" {
		return skills
	}

	for _, pair := range strings.Split(payload, ", ") {
		name, levelStr, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		level, err := strconv.ParseUint(strings.TrimSpace(levelStr), 10, 32)
		if err != nil {
			continue
		}
		skills[name] = uint32(level)
	}
	return skills
}
