// Perkwatch - Project Zomboid PerkLog Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/perkwatch

package api

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/perkwatch/internal/leaderboard"
	"github.com/tomtom215/perkwatch/internal/models"
	"github.com/tomtom215/perkwatch/internal/validation"
)

// SnapshotSource provides the latest published state. Handlers never see the
// live state the ingest driver mutates.
type SnapshotSource interface {
	Snapshot() *models.SystemState
}

// Handler serves the read API.
type Handler struct {
	source SnapshotSource
}

// NewHandler creates a Handler reading from source.
func NewHandler(source SnapshotSource) *Handler {
	return &Handler{source: source}
}

type healthResponse struct {
	Status  string `json:"status"`
	Players int    `json:"players"`
}

// Health reports liveness and the number of tracked players.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.source.Snapshot()
	respondData(w, healthResponse{Status: "ok", Players: len(snap.Players)}, 0)
}

type playersQuery struct {
	Limit  int `query:"limit" validate:"min=1,max=1000"`
	Offset int `query:"offset" validate:"min=0"`
}

// Players lists every tracked player ordered by username.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	limit, okL := intParam(r, "limit", 100)
	offset, okO := intParam(r, "offset", 0)
	if !okL || !okO {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit and offset must be integers", nil)
		return
	}
	q := playersQuery{Limit: limit, Offset: offset}
	if err := validation.Struct(&q); err != nil {
		respondValidation(w, err)
		return
	}

	snap := h.source.Snapshot()
	names := snap.Usernames()
	total := len(names)
	if q.Offset > total {
		q.Offset = total
	}
	names = names[q.Offset:]
	if len(names) > q.Limit {
		names = names[:q.Limit]
	}

	out := make([]models.PlayerSummary, 0, len(names))
	for _, name := range names {
		out = append(out, models.NewPlayerSummary(name, snap.Players[name]))
	}
	respondData(w, out, total)
}

// Player returns the full record for one username.
func (h *Handler) Player(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid player name", nil)
		return
	}

	p := h.source.Snapshot().Player(name)
	if p == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "player not found", nil)
		return
	}
	respondData(w, models.PlayerDetail{Username: name, PlayerRecord: p}, 0)
}

type leaderboardQuery struct {
	Limit int `query:"limit" validate:"min=1,max=50"`
}

// Leaderboard builds a board from the snapshot. kind is deaths, survival,
// hours or skill:<Name>.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(r, "limit", leaderboard.DefaultLimit)
	if !ok {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be an integer", nil)
		return
	}
	q := leaderboardQuery{Limit: limit}
	if err := validation.Struct(&q); err != nil {
		respondValidation(w, err)
		return
	}

	raw, err := url.PathUnescape(chi.URLParam(r, "kind"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid leaderboard kind", nil)
		return
	}
	kind, skill, err := leaderboard.ParseKind(raw)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}

	board, err := leaderboard.Build(h.source.Snapshot(), kind, skill, q.Limit)
	if err != nil {
		if errors.Is(err, leaderboard.ErrUnknownKind) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to build leaderboard", err)
		return
	}
	respondData(w, board, len(board.Entries))
}
