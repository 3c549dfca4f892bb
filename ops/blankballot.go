// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/TrustTheVote-Project/VTP-spring-demo/db"
	"github.com/TrustTheVote-Project/VTP-spring-demo/models"
)

// BlankBallotOperation reads the blank ballot stored in one
// workspace's election store.
type BlankBallotOperation struct {
	WorkspaceDir      string
	Verbosity         int
	Address           string
	ReturnBlankBallot bool
}

// Run returns the workspace's blank ballot. The stored definition is
// canonical, so repeated runs return identical documents.
func (op *BlankBallotOperation) Run(ctx context.Context) (*models.BlankBallot, error) {
	if !op.ReturnBlankBallot {
		return nil, errors.New("blank ballot operation invoked without return_bb")
	}

	store, err := db.Open(op.WorkspaceDir)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	var raw string
	err = store.QueryRowContext(ctx, `SELECT blank_ballot FROM election WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, errors.New("workspace election store is not initialized")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read blank ballot: %w", err)
	}

	var blank models.BlankBallot
	if err := json.Unmarshal([]byte(raw), &blank); err != nil {
		return nil, fmt.Errorf("stored blank ballot is corrupt: %w", err)
	}

	// The address selects the ballot in a multi-precinct deployment;
	// the spring demo serves a single precinct so it is echoed back.
	if op.Address != "" {
		blank.Address = op.Address
	}

	if op.Verbosity >= 4 {
		slog.Info("blank ballot read", "ballot_node", blank.BallotNode, "contests", len(blank.Contests))
	}
	return &blank, nil
}
