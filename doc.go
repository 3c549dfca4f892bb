// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the VTP spring demo API server.

The server issues per-voter ballot sessions, each backed by an isolated
election workspace, and exposes the ballot lifecycle over HTTP: fetch a
blank ballot, cast it, verify the returned ballot check, and tally the
contests.

# Starting the Server

Live mode needs an election data directory and a blank ballot definition:

	go run main.go -e /var/lib/vtp -b ballot-definition.json

Mock mode serves canned fixtures and touches no election data:

	go run main.go -mock -mock-data mock-data

# Configuration

Required settings (live mode):

  - ELECTION_DATA_DIR (-e): root directory for per-session workspaces
  - BALLOT_DEFINITION (-b): blank ballot definition JSON file

Optional settings:

  - PORT (-p): Server port (default: 8112)
  - VTP_MOCK_MODE (-mock): serve fixtures instead of live election data
  - MOCK_DATA_DIR (-mock-data): fixture directory (default: mock-data)
  - VTP_VERBOSITY (-v): operation log verbosity (default: 3)
  - VTP_ADDRESS (-address): demo voter address echoed on blank ballots
  - VTP_OP_TIMEOUT (-op-timeout): per-operation deadline (default: 30s)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (sessions, ballots)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - backend: mode dispatch, session locking, timeouts
  - ops: election operations over per-workspace SQLite stores
  - workspace: guid-addressed workspace directories
  - mockdata: fixture loading for mock mode
  - db: schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
