// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/TrustTheVote-Project/VTP-spring-demo/backend"
	"github.com/TrustTheVote-Project/VTP-spring-demo/handlers"
	"github.com/TrustTheVote-Project/VTP-spring-demo/middleware"
)

func NewRouter(gw *backend.Gateway) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(gw)
	ballotHandler := handlers.NewBallotHandler(gw)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session management
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.IssueSession))
	mux.HandleFunc("GET /sessions", middleware.WithLogging(sessionHandler.EnumerateSessions))
	mux.HandleFunc("GET /sessions/{guid}/blank-ballot", middleware.WithLogging(sessionHandler.GetBlankBallot))

	// Ballot operations
	mux.HandleFunc("POST /sessions/{guid}/cast-ballot", middleware.WithLogging(ballotHandler.CastBallot))
	mux.HandleFunc("POST /sessions/{guid}/verify-ballot-check", middleware.WithLogging(ballotHandler.VerifyBallotCheck))
	mux.HandleFunc("POST /sessions/{guid}/tally", middleware.WithLogging(ballotHandler.Tally))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("VTP spring demo API v1"))
	})

	return mux
}
