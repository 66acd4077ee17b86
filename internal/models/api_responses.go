// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package models

import "time"

// APIResponse is the envelope for every HTTP API response.
//
// Status is "success" with Data set, or "error" with Error set.
//
//	{
//	  "status": "success",
//	  "data": {...},
//	  "metadata": {"timestamp": "2026-03-14T10:00:00Z", "count": 3}
//	}
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata describes the response.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count,omitempty"`
}

// APIError is a machine-readable error.
//
// Codes: VALIDATION_ERROR, NOT_FOUND, RATE_LIMIT_EXCEEDED, INTERNAL_ERROR.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// PlayerSummary is one row of the player list.
type PlayerSummary struct {
	Username        string   `json:"username"`
	SteamID         string   `json:"steam_id"`
	Alive           bool     `json:"alive"`
	HoursSurvived   float64  `json:"hours_survived"`
	TotalDeaths     uint64   `json:"total_deaths"`
	AverageSurvival *float64 `json:"average_survival,omitempty"`
}

// NewPlayerSummary builds the list row for p.
func NewPlayerSummary(username string, p *PlayerRecord) PlayerSummary {
	s := PlayerSummary{
		Username:      username,
		SteamID:       p.SteamID,
		Alive:         p.CurrentCharacter.Alive,
		HoursSurvived: p.CurrentCharacter.HoursSurvived,
		TotalDeaths:   p.TotalDeaths,
	}
	if avg, ok := p.AverageSurvival(); ok {
		s.AverageSurvival = &avg
	}
	return s
}

// PlayerDetail is the full record of one player.
type PlayerDetail struct {
	Username string `json:"username"`
	*PlayerRecord
}
