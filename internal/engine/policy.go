// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package engine

import "fmt"

// SkillPolicy decides which level changes are announced.
type SkillPolicy string

const (
	// SkillPolicyAll announces every level change.
	SkillPolicyAll SkillPolicy = "all"

	// SkillPolicyMilestones announces only levels in SkillMilestones.
	SkillPolicyMilestones SkillPolicy = "milestones"

	// SkillPolicyNone announces nothing.
	SkillPolicyNone SkillPolicy = "none"
)

// SkillMilestones are the levels announced under SkillPolicyMilestones.
var SkillMilestones = []uint32{5, 10}

// ParseSkillPolicy validates a configured policy name.
func ParseSkillPolicy(s string) (SkillPolicy, error) {
	switch p := SkillPolicy(s); p {
	case SkillPolicyAll, SkillPolicyMilestones, SkillPolicyNone:
		return p, nil
	default:
		return "", fmt.Errorf("unknown skill notification policy %q (want all, milestones or none)", s)
	}
}

// ShouldNotify reports whether a change to level is announced.
func (p SkillPolicy) ShouldNotify(level uint32) bool {
	switch p {
	case SkillPolicyAll:
		return true
	case SkillPolicyMilestones:
		for _, m := range SkillMilestones {
			if level == m {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Filter drops level-change intents the policy does not announce. Other
// intents pass through in order.
func (p SkillPolicy) Filter(intents []Intent) []Intent {
	out := make([]Intent, 0, len(intents))
	for _, in := range intents {
		if lc, ok := in.(LevelChangeIntent); ok && !p.ShouldNotify(lc.Level) {
			continue
		}
		out = append(out, in)
	}
	return out
}
