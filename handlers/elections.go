// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/tally-board/auth"
	"github.com/danielhkuo/tally-board/middleware"
	"github.com/danielhkuo/tally-board/models"
	"github.com/danielhkuo/tally-board/tally"
	"github.com/dustin/go-humanize"
)

type ElectionHandler struct {
	engine *tally.Engine
}

func NewElectionHandler(engine *tally.Engine) *ElectionHandler {
	return &ElectionHandler{engine: engine}
}

// ListElections handles GET /elections
// Returns every position with its displayed standings
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	positions := h.engine.Positions()

	response := make([]models.PositionStandings, 0, len(positions))
	for _, p := range positions {
		response = append(response, models.PositionStandings{
			Position:   p.Name,
			Candidates: toStandings(p.Standings),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}

// GetElection handles GET /elections/{position}
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	position := r.PathValue("position")
	if position == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "position is required")
		return
	}

	standings, err := h.engine.Standings(position)
	if errors.Is(err, tally.ErrUnknownPosition) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to read standings", "position", position, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read standings")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PositionStandings{
		Position:   position,
		Candidates: toStandings(standings),
	})
}

// CastBallot handles POST /elections/{position}/ballots
// The displayed count moves immediately; the registry write is best effort
func (h *ElectionHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
	position := r.PathValue("position")
	if position == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "position is required")
		return
	}

	if _, err := h.engine.Standings(position); errors.Is(err, tally.ErrUnknownPosition) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}

	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ballot := h.engine.Recorder().NewBallot(position)
	ballot.Select(req.CandidateID)

	receipt, err := ballot.Cast(r.Context())
	var verr *tally.ValidationError
	if errors.As(err, &verr) {
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
		return
	}
	if err != nil {
		slog.Error("failed to cast ballot", "position", position, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast ballot")
		return
	}

	ballotID, err := auth.GenerateID(12)
	if err != nil {
		// the vote already counts; only the receipt id is missing
		slog.Error("failed to generate ballot ID", "error", err)
	}

	message := "Vote counted"
	if !receipt.Synced {
		message = "Vote counted locally; it will not survive a restart"
	}

	slog.Info("ballot cast",
		"ballot_id", ballotID,
		"position", position,
		"candidate_id", receipt.Candidate.ID,
		"displayed", receipt.Displayed,
		"synced", receipt.Synced,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.CastBallotResponse{
		BallotID:       ballotID,
		Position:       position,
		CandidateID:    receipt.Candidate.ID,
		Displayed:      receipt.Displayed,
		DisplayedLabel: humanize.Comma(receipt.Displayed),
		Synced:         receipt.Synced,
		Message:        message,
	})
}

func toStandings(in []tally.Standing) []models.Standing {
	out := make([]models.Standing, len(in))
	for i, s := range in {
		out[i] = models.Standing{
			CandidateID:    s.Candidate.ID,
			Name:           s.Candidate.Name,
			Expertise:      s.Candidate.Expertise,
			Bio:            s.Candidate.Bio,
			Displayed:      s.Displayed,
			DisplayedLabel: humanize.Comma(s.Displayed),
			Leading:        s.Leading,
		}
	}
	return out
}
