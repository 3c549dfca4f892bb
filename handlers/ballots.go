// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/TrustTheVote-Project/VTP-spring-demo/backend"
	"github.com/TrustTheVote-Project/VTP-spring-demo/middleware"
	"github.com/TrustTheVote-Project/VTP-spring-demo/models"
)

type BallotHandler struct {
	gw *backend.Gateway
}

func NewBallotHandler(gw *backend.Gateway) *BallotHandler {
	return &BallotHandler{gw: gw}
}

// CastBallot handles POST /sessions/{guid}/cast-ballot
func (h *BallotHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
	guid := r.PathValue("guid")
	if guid == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "guid is required")
		return
	}

	var ballot models.CastBallot
	if err := middleware.ParseJSONBody(r, &ballot); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	check, err := h.gw.CastBallot(r.Context(), guid, &ballot)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	// The table and the index travel together - respond with both.
	middleware.JSONResponse(w, http.StatusCreated, check)
}

// VerifyBallotCheck handles POST /sessions/{guid}/verify-ballot-check
func (h *BallotHandler) VerifyBallotCheck(w http.ResponseWriter, r *http.Request) {
	guid := r.PathValue("guid")
	if guid == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "guid is required")
		return
	}

	var check models.BallotCheck
	if err := middleware.ParseJSONBody(r, &check); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	report, err := h.gw.VerifyBallotCheck(r.Context(), guid, &check)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VerifyBallotCheckResponse{
		VerifyLog: report,
	})
}

// Tally handles POST /sessions/{guid}/tally
func (h *BallotHandler) Tally(w http.ResponseWriter, r *http.Request) {
	guid := r.PathValue("guid")
	if guid == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "guid is required")
		return
	}

	var req models.TallyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	report, err := h.gw.TallyContests(r.Context(), guid, &req)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TallyContestsResponse{
		TallyLog: report,
	})
}
