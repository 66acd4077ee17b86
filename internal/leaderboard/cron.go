// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package leaderboard

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
	"time"
)

// fieldSet is a bitmask of allowed values for one cron field. Every field
// range fits in 64 bits.
type fieldSet uint64

func (f fieldSet) has(v int) bool { return f&(1<<uint(v)) != 0 }

func (f fieldSet) count() int { return bits.OnesCount64(uint64(f)) }

// CronExpression is a parsed 5-field cron expression:
// minute hour day-of-month month day-of-week.
type CronExpression struct {
	minutes fieldSet
	hours   fieldSet
	dom     fieldSet
	months  fieldSet
	dow     fieldSet
	source  string
}

type cronField struct {
	name     string
	min, max int
}

var cronFields = [5]cronField{
	{"minute", 0, 59},
	{"hour", 0, 23},
	{"day-of-month", 1, 31},
	{"month", 1, 12},
	{"day-of-week", 0, 7},
}

// ParseCron parses a standard 5-field cron expression.
//
// Supported syntax per field: "*", "n", "n-m", "a,b,c", "*/s", "n-m/s" and
// "n/s". Day-of-week 7 is Sunday, same as 0.
//
// Examples:
//   - "0 0,12 * * *" - noon and midnight every day
//   - "0 0 * * 0"    - Sunday at midnight
func ParseCron(expr string) (*CronExpression, error) {
	fields := strings.Fields(expr)
	if len(fields) != len(cronFields) {
		return nil, fmt.Errorf("cron expression must have 5 fields, got %d", len(fields))
	}

	var sets [5]fieldSet
	for i, f := range cronFields {
		set, err := parseCronField(fields[i], f.min, f.max)
		if err != nil {
			return nil, fmt.Errorf("invalid %s field: %w", f.name, err)
		}
		sets[i] = set
	}

	dow := sets[4]
	if dow.has(7) {
		dow = (dow &^ (1 << 7)) | 1
	}

	return &CronExpression{
		minutes: sets[0],
		hours:   sets[1],
		dom:     sets[2],
		months:  sets[3],
		dow:     dow,
		source:  strings.Join(fields, " "),
	}, nil
}

// String returns the normalized expression.
func (c *CronExpression) String() string { return c.source }

// NextRun returns the first matching minute strictly after after, in loc.
// A nil loc means UTC. The zero time is returned when nothing matches within
// four years.
func (c *CronExpression) NextRun(after time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t := after.In(loc).Truncate(time.Minute).Add(time.Minute)

	const horizon = 4 * 366 * 24 * 60
	for i := 0; i < horizon; i++ {
		if c.Matches(t) {
			return t
		}
		t = t.Add(time.Minute)
	}
	return time.Time{}
}

// Matches reports whether t falls on the expression. As in standard cron, a
// restricted day-of-month and a restricted day-of-week are OR'd.
func (c *CronExpression) Matches(t time.Time) bool {
	if !c.minutes.has(t.Minute()) || !c.hours.has(t.Hour()) || !c.months.has(int(t.Month())) {
		return false
	}

	domAny := c.dom.count() == 31
	dowAny := c.dow.count() == 7
	domOK := c.dom.has(t.Day())
	dowOK := c.dow.has(int(t.Weekday()))

	switch {
	case domAny && dowAny:
		return true
	case domAny:
		return dowOK
	case dowAny:
		return domOK
	default:
		return domOK || dowOK
	}
}

func parseCronField(field string, lo, hi int) (fieldSet, error) {
	var set fieldSet
	for _, part := range strings.Split(field, ",") {
		s, err := parseCronPart(part, lo, hi)
		if err != nil {
			return 0, err
		}
		set |= s
	}
	return set, nil
}

func parseCronPart(part string, lo, hi int) (fieldSet, error) {
	rangePart, stepPart, hasStep := strings.Cut(part, "/")

	step := 1
	if hasStep {
		n, err := strconv.Atoi(stepPart)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid step value: %s", stepPart)
		}
		step = n
	}

	start, end := lo, hi
	switch {
	case rangePart == "*":
	case strings.Contains(rangePart, "-"):
		a, b, _ := strings.Cut(rangePart, "-")
		var err error
		if start, err = strconv.Atoi(a); err != nil {
			return 0, fmt.Errorf("invalid range start: %s", a)
		}
		if end, err = strconv.Atoi(b); err != nil {
			return 0, fmt.Errorf("invalid range end: %s", b)
		}
		if start > end {
			return 0, fmt.Errorf("invalid range: %d-%d", start, end)
		}
	default:
		n, err := strconv.Atoi(rangePart)
		if err != nil {
			return 0, fmt.Errorf("invalid value: %s", rangePart)
		}
		start = n
		if !hasStep {
			end = n
		}
	}

	if start < lo || end > hi {
		return 0, fmt.Errorf("value out of range: %s (allowed %d-%d)", part, lo, hi)
	}

	var set fieldSet
	for v := start; v <= end; v += step {
		set |= 1 << uint(v)
	}
	return set, nil
}
