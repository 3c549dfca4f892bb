// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// StoreFile is the election store database inside each guid workspace.
const StoreFile = "election.db"

// Open opens the election store for one workspace directory.
func Open(workspaceDir string) (*sql.DB, error) {
	path := filepath.Join(workspaceDir, StoreFile)
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open election store: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to reach election store: %w", err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for one workspace's election
// store. Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Election definition (one row per workspace)
CREATE TABLE IF NOT EXISTS election (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    ballot_node TEXT NOT NULL,
    ballot_subdir TEXT NOT NULL,
    address TEXT NOT NULL,
    blank_ballot TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Contests on the blank ballot
CREATE TABLE IF NOT EXISTS contest (
    uid TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    tally TEXT NOT NULL DEFAULT 'plurality',
    max_selections INTEGER NOT NULL DEFAULT 1
);

-- Cast vote records, one per contest per cast ballot. The pre-cast
-- rows (voter = 0) fill the ballot cache so a ballot-check can be
-- produced immediately upon casting.
CREATE TABLE IF NOT EXISTS cvr (
    id TEXT PRIMARY KEY,
    contest_uid TEXT NOT NULL REFERENCES contest(uid) ON DELETE CASCADE,
    selection TEXT NOT NULL,
    digest TEXT NOT NULL UNIQUE,
    voter INTEGER NOT NULL DEFAULT 0,
    cast_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_cvr_contest ON cvr(contest_uid);
CREATE INDEX IF NOT EXISTS idx_cvr_voter ON cvr(voter);

-- The receipt table produced by the accept operation: row/column
-- positions of every digest handed out on the voter's ballot check.
CREATE TABLE IF NOT EXISTS receipt (
    row_index INTEGER NOT NULL,
    col_index INTEGER NOT NULL,
    digest TEXT NOT NULL,
    PRIMARY KEY (row_index, col_index)
);

CREATE INDEX IF NOT EXISTS idx_receipt_digest ON receipt(digest);
`
