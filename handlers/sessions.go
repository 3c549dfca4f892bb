// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/TrustTheVote-Project/VTP-spring-demo/backend"
	"github.com/TrustTheVote-Project/VTP-spring-demo/middleware"
	"github.com/TrustTheVote-Project/VTP-spring-demo/models"
	"github.com/TrustTheVote-Project/VTP-spring-demo/ops"
	"github.com/TrustTheVote-Project/VTP-spring-demo/workspace"
)

type SessionHandler struct {
	gw *backend.Gateway
}

func NewSessionHandler(gw *backend.Gateway) *SessionHandler {
	return &SessionHandler{gw: gw}
}

// IssueSession handles POST /sessions
func (h *SessionHandler) IssueSession(w http.ResponseWriter, r *http.Request) {
	guid, err := h.gw.IssueSession(r.Context())
	if err != nil {
		writeBackendError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.IssueSessionResponse{
		VoteStoreID: guid,
	})
}

// EnumerateSessions handles GET /sessions
func (h *SessionHandler) EnumerateSessions(w http.ResponseWriter, r *http.Request) {
	guids, err := h.gw.EnumerateSessions(r.Context())
	if err != nil {
		writeBackendError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.EnumerateSessionsResponse{
		VoteStoreIDs: guids,
	})
}

// GetBlankBallot handles GET /sessions/{guid}/blank-ballot
func (h *SessionHandler) GetBlankBallot(w http.ResponseWriter, r *http.Request) {
	guid := r.PathValue("guid")
	if guid == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "guid is required")
		return
	}

	ballot, err := h.gw.GetBlankBallot(r.Context(), guid)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ballot)
}

// writeBackendError maps gateway failures onto HTTP statuses. The
// gateway hands back delegated failures unchanged, so the mapping for
// the whole api lives here.
func writeBackendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workspace.ErrUnknownSession):
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown vote store id")
	case errors.Is(err, backend.ErrOperationTimeout):
		middleware.ErrorResponse(w, http.StatusGatewayTimeout, "Backend operation timed out")
	case errors.Is(err, ops.ErrBallotAlreadyCast):
		middleware.ErrorResponse(w, http.StatusConflict, "A ballot has already been cast for this session")
	case errors.Is(err, ops.ErrMismatchedReceipt):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("backend operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Backend error")
	}
}
