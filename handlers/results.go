// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/tally"
)

// SnapshotLoader reads persisted final snapshots
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, id string) (models.ResultSnapshot, error)
}

// ResultsHandler serves the read-only HTTP status API. It never mutates the
// election.
type ResultsHandler struct {
	election *election.Election
	store    SnapshotLoader
}

// NewResultsHandler builds the handler; store may be nil when no database is
// configured, in which case only the in-memory final snapshot is served.
func NewResultsHandler(e *election.Election, store SnapshotLoader) *ResultsHandler {
	return &ResultsHandler{election: e, store: store}
}

// GetOptions handles GET /options
func (h *ResultsHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.OptionsResponse{
		Options: h.election.OptionNames(),
	})
}

// GetResults handles GET /results
// Live counts while open; once closed, the final snapshot's counts
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	if snap, ok := h.election.FinalSnapshot(); ok {
		id := snap.ID
		middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
			Status:           models.StatusClosed,
			TotalVotes:       snap.TotalVotes,
			RegisteredVoters: snap.RegisteredVoters,
			Options:          snap.Options,
			SnapshotID:       &id,
		})
		return
	}

	options, registered, closed := h.election.Results()
	status := models.StatusOpen
	if closed {
		status = models.StatusClosed
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Status:           status,
		TotalVotes:       tally.Total(options),
		RegisteredVoters: registered,
		Options:          tally.Tallies(options),
	})
}

// GetSnapshot handles GET /snapshots/{id}
func (h *ResultsHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if h.store == nil {
		// No database: only this process's own snapshot is known
		if snap, ok := h.election.FinalSnapshot(); ok && snap.ID == id {
			middleware.JSONResponse(w, http.StatusOK, snap)
			return
		}
		middleware.ErrorResponse(w, http.StatusNotFound, "Snapshot not found")
		return
	}

	snap, err := h.store.LoadSnapshot(r.Context(), id)
	if errors.Is(err, db.ErrSnapshotNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Snapshot not found")
		return
	}
	if err != nil {
		slog.Error("failed to load snapshot", "id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, snap)
}
