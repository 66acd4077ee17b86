// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// Error implements error.
func (e FieldError) Error() string { return e.Message }

// Errors is the set of failures for one struct.
type Errors []FieldError

// Error joins the messages.
func (ve Errors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// APIError is the error body returned by the HTTP API.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToAPIError converts the failures to a VALIDATION_ERROR body.
func (ve Errors) ToAPIError() *APIError {
	out := &APIError{Code: "VALIDATION_ERROR", Message: ve.Error()}
	if len(ve) == 0 {
		return out
	}
	fields := make([]map[string]any, len(ve))
	for i, e := range ve {
		fields[i] = map[string]any{"field": e.Field, "tag": e.Tag, "message": e.Message}
	}
	out.Details = map[string]any{"fields": fields}
	return out
}

// Validator returns the shared validator.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
	})
	return validate
}

// fieldName prefers the env tag, then the query tag, then the koanf tag.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"env", "query", "koanf"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct validates s. It returns nil or an Errors value.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{{Field: "unknown", Tag: "unknown", Message: err.Error()}}
	}

	out := make(Errors, len(verrs))
	for i, fe := range verrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translate(fe),
		}
	}
	return out
}

var messages = map[string]string{
	"required": "%s is required",
	"url":      "%s must be a valid URL",
	"hostname": "%s must be a valid hostname",
	"alphanum": "%s must be alphanumeric",
}

var paramMessages = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translate(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if strings.HasPrefix(tag, "required_") {
		return fmt.Sprintf("%s is required", field)
	}
	if tmpl, ok := messages[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
