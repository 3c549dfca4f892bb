// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by every handler.

# Request Logging

WithLogging wraps a handler with structured start/completion logs:

	mux.HandleFunc("POST /sessions", middleware.WithLogging(handler.IssueSession))

# JSON Helpers

JSONResponse and ErrorResponse write consistent JSON bodies;
ParseJSONBody decodes a request body into a struct:

	var req models.TallyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# CORS

CORS wraps the whole mux so the ballot frontend (served from a
different origin during the demo) can reach the api, including
OPTIONS preflight handling.
*/
package middleware
