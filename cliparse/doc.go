// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8112)
  - ElectionDataDir: Root directory for guid workspaces (required in live mode)
  - BallotDefinition: Blank ballot definition JSON seeding new workspaces (required in live mode)
  - MockMode: Serve static fixtures instead of live ElectionData
  - MockDataDir: Location of the mock fixtures (default: mock-data)
  - Verbosity: Backend operation verbosity (default: 3)
  - Address: Default ballot address for blank-ballot retrieval
  - OpTimeout: Per-operation deadline for delegated operations (default: 30s)

# CLI Flags

	-p           Server port
	-e           ElectionData root directory
	-b           Ballot definition JSON path
	-mock        Enable mock mode
	-mock-data   Mock fixture directory
	-v           Backend verbosity
	-address     Default ballot address
	-op-timeout  Per-operation timeout

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	ELECTION_DATA_DIR → -e
	BALLOT_DEFINITION → -b
	VTP_MOCK_MODE     → -mock ("true" enables)
	MOCK_DATA_DIR     → -mock-data
	VTP_VERBOSITY     → -v
	VTP_ADDRESS       → -address
	VTP_OP_TIMEOUT    → -op-timeout

CLI flags take precedence over environment variables.

# Validation

In live mode both the ElectionData directory and the ballot definition
must be provided; mock mode needs neither. The mock/live decision is
fixed here, at process initialization, and never changes afterward -
a running server serves every session from exactly one mode.
*/
package cliparse
