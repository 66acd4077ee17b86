// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package perklog

import (
	"reflect"
	"testing"

	"github.com/tomtom215/perkwatch/internal/models"
)

func TestDecodeSkills(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    models.Skills
	}{
		{"empty", "", models.Skills{}},
		{"two pairs", "Cooking=0, Fitness=5", models.Skills{"Cooking": 0, "Fitness": 5}},
		{"pair without equals skipped", "Cooking=1, garbage, Fitness=5", models.Skills{"Cooking": 1, "Fitness": 5}},
		{"malformed level skipped", "Cooking=x, Fitness=5", models.Skills{"Fitness": 5}},
		{"negative level skipped", "Cooking=-1, Fitness=5", models.Skills{"Fitness": 5}},
		{"empty name skipped", "=3, Fitness=5", models.Skills{"Fitness": 5}},
		{"names trimmed", " Aiming =2", models.Skills{"Aiming": 2}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DecodeSkills(tt.payload)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeSkills(%q) = %v, want %v", tt.payload, got, tt.want)
			}
		})
	}
}
