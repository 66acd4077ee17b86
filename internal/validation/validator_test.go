// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type sample struct {
	Host     string        `env:"FTP_HOST" validate:"required"`
	Port     int           `env:"FTP_PORT" validate:"min=1,max=65535"`
	Policy   string        `env:"SKILL_NOTIFICATIONS" validate:"oneof=all milestones none"`
	Interval time.Duration `env:"CHECK_INTERVAL" validate:"gte=1s"`
	Limit    int           `query:"limit" validate:"omitempty,min=1,max=10"`
	Name     string        `validate:"omitempty,min=3"`
}

func valid() sample {
	return sample{Host: "h", Port: 21, Policy: "all", Interval: time.Second}
}

func TestValidator_Singleton(t *testing.T) {
	t.Parallel()

	if Validator() != Validator() {
		t.Error("Validator should return the same instance")
	}
}

func TestStruct_Valid(t *testing.T) {
	t.Parallel()

	s := valid()
	if err := Struct(&s); err != nil {
		t.Errorf("Struct = %v", err)
	}
}

func TestStruct_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*sample)
		want   string
	}{
		{"required", func(s *sample) { s.Host = "" }, "FTP_HOST is required"},
		{"max", func(s *sample) { s.Port = 70000 }, "FTP_PORT must be at most 65535"},
		{"min", func(s *sample) { s.Port = 0 }, "FTP_PORT must be at least 1"},
		{"oneof", func(s *sample) { s.Policy = "some" }, "SKILL_NOTIFICATIONS must be one of: all milestones none"},
		{"duration", func(s *sample) { s.Interval = time.Millisecond }, "CHECK_INTERVAL must be greater than or equal to 1s"},
		{"query tag", func(s *sample) { s.Limit = 50 }, "limit must be at most 10"},
		{"string min", func(s *sample) { s.Name = "ab" }, "Name must be at least 3 characters"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := valid()
			tt.mutate(&s)
			err := Struct(&s)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestErrors_ToAPIError(t *testing.T) {
	t.Parallel()

	s := valid()
	s.Host = ""
	s.Port = 0
	err := Struct(&s)

	var verrs Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("err type = %T", err)
	}
	if len(verrs) != 2 {
		t.Fatalf("len = %d, want 2", len(verrs))
	}

	apiErr := verrs.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q", apiErr.Code)
	}
	fields, ok := apiErr.Details["fields"].([]map[string]any)
	if !ok || len(fields) != 2 || fields[0]["field"] != "FTP_HOST" {
		t.Errorf("Details = %+v", apiErr.Details)
	}
}
