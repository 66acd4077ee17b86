// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package engine

import (
	"reflect"
	"testing"

	"github.com/tomtom215/perkwatch/internal/models"
)

func TestOrdinal(t *testing.T) {
	t.Parallel()

	tests := map[uint64]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		10: "10th", 11: "11th", 12: "12th", 13: "13th", 20: "20th",
		21: "21st", 22: "22nd", 23: "23rd", 101: "101st", 111: "111th", 112: "112th",
	}
	for n, want := range tests {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestTopSkills(t *testing.T) {
	t.Parallel()

	skills := models.Skills{"Aiming": 3, "Cooking": 0, "Fitness": 7, "Strength": 3, "Sprinting": 1}
	got := TopSkills(skills, 3)
	want := []SkillLevel{{"Fitness", 7}, {"Aiming", 3}, {"Strength", 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopSkills = %v, want %v", got, want)
	}

	if got := TopSkills(models.Skills{"Cooking": 0}, 3); len(got) != 0 {
		t.Errorf("zero-level skills should be excluded, got %v", got)
	}
}

func TestSkillPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		policy SkillPolicy
		level  uint32
		want   bool
	}{
		{SkillPolicyAll, 1, true},
		{SkillPolicyAll, 5, true},
		{SkillPolicyMilestones, 4, false},
		{SkillPolicyMilestones, 5, true},
		{SkillPolicyMilestones, 10, true},
		{SkillPolicyNone, 5, false},
	}
	for _, tt := range tests {
		if got := tt.policy.ShouldNotify(tt.level); got != tt.want {
			t.Errorf("%s.ShouldNotify(%d) = %v, want %v", tt.policy, tt.level, got, tt.want)
		}
	}
}

func TestSkillPolicy_Filter(t *testing.T) {
	t.Parallel()

	intents := []Intent{
		DeathIntent{Username: "Bob"},
		LevelChangeIntent{Username: "Bob", Skill: "Fitness", Level: 4},
		LevelChangeIntent{Username: "Bob", Skill: "Fitness", Level: 5},
		RespawnIntent{Username: "Bob"},
	}
	got := SkillPolicyMilestones.Filter(intents)
	if len(got) != 3 {
		t.Fatalf("Filter kept %d intents, want 3", len(got))
	}
	if lc, ok := got[1].(LevelChangeIntent); !ok || lc.Level != 5 {
		t.Errorf("unexpected order or content: %v", got)
	}
}

func TestParseSkillPolicy(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"all", "milestones", "none"} {
		if _, err := ParseSkillPolicy(s); err != nil {
			t.Errorf("ParseSkillPolicy(%q) error: %v", s, err)
		}
	}
	if _, err := ParseSkillPolicy("sometimes"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
