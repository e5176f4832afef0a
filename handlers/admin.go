// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/tally-board/db"
	"github.com/danielhkuo/tally-board/middleware"
	"github.com/danielhkuo/tally-board/models"
	"github.com/danielhkuo/tally-board/tally"
	"github.com/google/uuid"
)

// AdminHandler serves the back office. Routes are wrapped in
// middleware.RequireAdmin by the router.
type AdminHandler struct {
	q      *db.Queries
	engine *tally.Engine
}

func NewAdminHandler(q *db.Queries, engine *tally.Engine) *AdminHandler {
	return &AdminHandler{q: q, engine: engine}
}

// ListElections handles GET /admin/elections
// Returns raw rows: the operator's inputs, not the displayed counts
func (h *AdminHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.q.ListElections(r.Context())
	if err != nil {
		slog.Error("failed to list elections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, elections)
}

// CreateElection handles POST /admin/elections
func (h *AdminHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Position = strings.TrimSpace(req.Position)
	req.CandidateName = strings.TrimSpace(req.CandidateName)
	if req.Position == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "position is required")
		return
	}
	if req.CandidateName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_name is required")
		return
	}
	if req.Votes < 0 || req.DailyIncrement < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "votes and daily_increment must not be negative")
		return
	}

	now := time.Now().UTC()
	election := models.Election{
		ID:             uuid.New().String(),
		Position:       req.Position,
		CandidateName:  req.CandidateName,
		Votes:          req.Votes,
		BaseVotes:      req.Votes,
		DailyIncrement: req.DailyIncrement,
		StartDate:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.StartDate != nil {
		election.StartDate = req.StartDate.UTC()
	}

	if err := h.q.CreateElection(r.Context(), election); err != nil {
		slog.Error("failed to create election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	slog.Info("election created", "id", election.ID, "position", election.Position, "candidate", election.CandidateName)
	h.recompute(r.Context(), "create")

	middleware.JSONResponse(w, http.StatusCreated, election)
}

// UpdateElection handles PUT /admin/elections/{id}
// The new votes value becomes the accrual base. Displayed counts never go
// down; a lowered value only slows future growth.
func (h *AdminHandler) UpdateElection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var req models.UpdateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.CandidateName = strings.TrimSpace(req.CandidateName)
	if req.CandidateName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_name is required")
		return
	}
	if req.Votes < 0 || req.DailyIncrement < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "votes and daily_increment must not be negative")
		return
	}

	err := h.q.UpdateElection(r.Context(), id, req, time.Now())
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to update election", "id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update election")
		return
	}

	slog.Info("election updated", "id", id, "votes", req.Votes, "daily_increment", req.DailyIncrement)
	h.recompute(r.Context(), "update")

	election, err := h.q.GetElection(r.Context(), id)
	if err != nil {
		slog.Error("failed to reload election", "id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, election)
}

// DeleteElection handles DELETE /admin/elections/{id}
func (h *AdminHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	err := h.q.DeleteElection(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete election", "id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete election")
		return
	}

	slog.Info("election deleted", "id", id)
	h.recompute(r.Context(), "delete")

	w.WriteHeader(http.StatusNoContent)
}

// UpdateDonationSettings handles PUT /admin/donation-settings
// Fields may be JSON numbers or numeric strings. Omitted fields keep their value.
func (h *AdminHandler) UpdateDonationSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateDonationSettingsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	settings, err := h.q.GetDonationSettings(r.Context())
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Donation settings not found")
		return
	}
	if err != nil {
		slog.Error("failed to query donation settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	fields := []struct {
		name string
		in   interface{}
		dst  *int64
	}{
		{"total_raised", req.TotalRaised, &settings.TotalRaised},
		{"target_goal", req.TargetGoal, &settings.TargetGoal},
		{"total_donors", req.TotalDonors, &settings.TotalDonors},
		{"avg_per_mosque", req.AvgPerMosque, &settings.AvgPerMosque},
	}
	for _, f := range fields {
		if f.in == nil {
			continue
		}
		n, err := parseCount(f.in)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", f.name, err))
			return
		}
		*f.dst = n
	}
	settings.UpdatedAt = time.Now().UTC()

	if err := h.q.UpdateDonationSettings(r.Context(), settings); err != nil {
		slog.Error("failed to update donation settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update donation settings")
		return
	}

	slog.Info("donation settings updated", "total_raised", settings.TotalRaised, "target_goal", settings.TargetGoal)

	middleware.JSONResponse(w, http.StatusOK, withPercent(settings))
}

// ListDonations handles GET /admin/donations
func (h *AdminHandler) ListDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := h.q.ListDonations(r.Context())
	if err != nil {
		slog.Error("failed to list donations", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, donations)
}

// recompute folds an admin write into the displayed tallies right away
// instead of waiting for the next scheduled pass.
func (h *AdminHandler) recompute(ctx context.Context, reason string) {
	if err := h.engine.Recompute(ctx); err != nil {
		slog.Warn("recompute after admin write failed", "reason", reason, "error", err)
	}
}

// parseCount accepts a non-negative whole JSON number or numeric string.
func parseCount(v interface{}) (int64, error) {
	var n int64
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) || math.Abs(t) > 1<<53 {
			return 0, errors.New("must be a whole number")
		}
		n = int64(t)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, errors.New("must be a number")
		}
		n = parsed
	default:
		return 0, errors.New("must be a number")
	}
	if n < 0 {
		return 0, errors.New("must not be negative")
	}
	return n, nil
}
