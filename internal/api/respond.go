// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/perkwatch/internal/logging"
	"github.com/tomtom215/perkwatch/internal/models"
	"github.com/tomtom215/perkwatch/internal/validation"
)

// respondJSON writes response with the given status.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondData writes a success envelope.
func respondData(w http.ResponseWriter, data any, count int) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: models.Metadata{Timestamp: time.Now().UTC(), Count: count},
	})
}

// respondError writes an error envelope. err, when set, is logged and never
// sent to the client.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", code).Err(err).Msg("API error")
	}
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message},
	})
}

// respondValidation writes a 400 for a validation.Struct failure.
func respondValidation(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	apiErr := verrs.ToAPIError()
	respondJSON(w, http.StatusBadRequest, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: apiErr.Code, Message: apiErr.Message, Details: apiErr.Details},
	})
}

// intParam reads an integer query parameter. ok is false when the value is
// present but not an integer.
func intParam(r *http.Request, key string, def int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
