// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/tally-board/db"
	"github.com/danielhkuo/tally-board/middleware"
	"github.com/danielhkuo/tally-board/models"
)

type SettingsHandler struct {
	q *db.Queries
}

func NewSettingsHandler(q *db.Queries) *SettingsHandler {
	return &SettingsHandler{q: q}
}

// GetDonationSettings handles GET /donation-settings
func (h *SettingsHandler) GetDonationSettings(w http.ResponseWriter, r *http.Request) {
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

	middleware.JSONResponse(w, http.StatusOK, withPercent(settings))
}

func withPercent(s models.DonationSettings) models.DonationSettingsResponse {
	resp := models.DonationSettingsResponse{DonationSettings: s}
	if s.TargetGoal > 0 {
		resp.PercentOfGoal = float64(s.TotalRaised) / float64(s.TargetGoal) * 100
	}
	return resp
}
