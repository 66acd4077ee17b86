// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package leaderboard

import (
	"fmt"
	"time"
)

// Default schedules.
const (
	DefaultDailyCron     = "0 0,12 * * *"
	DefaultWeeklyCron    = "0 0 * * 0"
	DefaultActivityTicks = 100
)

// DefaultWeeklySkills are the skills posted by the weekly schedule.
var DefaultWeeklySkills = []string{"Aiming", "Fitness", "Strength", "Cooking", "Mechanics"}

// Trigger says why a board was posted.
type Trigger string

const (
	TriggerDaily    Trigger = "daily"
	TriggerWeekly   Trigger = "weekly"
	TriggerActivity Trigger = "activity"
)

// Post is one board the planner wants published.
type Post struct {
	Trigger Trigger
	Kind    Kind
	Skill   string
}

// Schedule fires once for every due time of a cron expression.
type Schedule struct {
	expr *CronExpression
	loc  *time.Location
	next time.Time
}

// NewSchedule parses expr; the first due time is the first match after now.
func NewSchedule(expr string, loc *time.Location, now time.Time) (*Schedule, error) {
	c, err := ParseCron(expr)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Schedule{expr: c, loc: loc, next: c.NextRun(now, loc)}, nil
}

// Next returns the pending due time.
func (s *Schedule) Next() time.Time { return s.next }

// Due reports whether the pending due time has passed. When it has, the
// schedule advances past now, so a run missed during a long tick fires once
// and not once per missed slot.
func (s *Schedule) Due(now time.Time) bool {
	if s.next.IsZero() || now.Before(s.next) {
		return false
	}
	s.next = s.expr.NextRun(now, s.loc)
	return true
}

// PlannerConfig configures a Planner. Empty cron strings disable that
// schedule; ActivityTicks <= 0 disables the activity board.
type PlannerConfig struct {
	DailyCron     string
	WeeklyCron    string
	WeeklySkills  []string
	ActivityTicks int
	Location      *time.Location
}

// DefaultPlannerConfig returns the schedules of the classic tracker.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		DailyCron:     DefaultDailyCron,
		WeeklyCron:    DefaultWeeklyCron,
		WeeklySkills:  DefaultWeeklySkills,
		ActivityTicks: DefaultActivityTicks,
		Location:      time.Local,
	}
}

// Planner decides which boards to post after each tick. It is not safe for
// concurrent use; the ingest service owns it.
type Planner struct {
	daily, weekly *Schedule
	weeklySkills  []string
	activityTicks int

	ticks    int
	activity bool
}

// NewPlanner builds a planner whose schedules start at now.
func NewPlanner(cfg PlannerConfig, now time.Time) (*Planner, error) {
	p := &Planner{
		weeklySkills:  append([]string(nil), cfg.WeeklySkills...),
		activityTicks: cfg.ActivityTicks,
	}
	var err error
	if cfg.DailyCron != "" {
		if p.daily, err = NewSchedule(cfg.DailyCron, cfg.Location, now); err != nil {
			return nil, fmt.Errorf("daily leaderboard schedule: %w", err)
		}
	}
	if cfg.WeeklyCron != "" {
		if p.weekly, err = NewSchedule(cfg.WeeklyCron, cfg.Location, now); err != nil {
			return nil, fmt.Errorf("weekly leaderboard schedule: %w", err)
		}
	}
	return p, nil
}

// Observe records one completed tick that applied the given number of
// events and returns the boards due now, in posting order. Nothing is due
// while no players are tracked; due schedules are still consumed.
func (p *Planner) Observe(now time.Time, applied int, players int) []Post {
	p.ticks++
	if applied > 0 {
		p.activity = true
	}

	var posts []Post
	if p.daily != nil && p.daily.Due(now) && players > 0 {
		posts = append(posts,
			Post{Trigger: TriggerDaily, Kind: KindDeaths},
			Post{Trigger: TriggerDaily, Kind: KindSurvival},
			Post{Trigger: TriggerDaily, Kind: KindHours},
		)
		p.activity = false
	}
	if p.weekly != nil && p.weekly.Due(now) && players > 0 {
		for _, skill := range p.weeklySkills {
			posts = append(posts, Post{Trigger: TriggerWeekly, Kind: KindSkill, Skill: skill})
		}
	}
	if p.activityTicks > 0 && p.ticks%p.activityTicks == 0 && p.activity && players > 0 {
		posts = append(posts, Post{Trigger: TriggerActivity, Kind: KindDeaths})
		p.activity = false
	}
	return posts
}
