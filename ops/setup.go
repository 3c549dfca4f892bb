// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	mathrand "math/rand/v2"
	"os"

	"github.com/google/uuid"

	"github.com/TrustTheVote-Project/VTP-spring-demo/db"
	"github.com/TrustTheVote-Project/VTP-spring-demo/models"
	"github.com/TrustTheVote-Project/VTP-spring-demo/workspace"
)

// precastBallots is the size of the pre-cast ballot cache seeded per
// contest. The cache exists so a ballot-check can be produced
// immediately upon the first live cast instead of waiting for other
// voters.
const precastBallots = 99

// SetupOperation provisions a new guid workspace and seeds its
// election store from a blank ballot definition.
type SetupOperation struct {
	Dir              *workspace.Directory
	BallotDefinition string
	Verbosity        int
	GuidClientStore  bool
}

// Run provisions the workspace and returns its guid.
func (op *SetupOperation) Run(ctx context.Context) (string, error) {
	if !op.GuidClientStore {
		return "", errors.New("the spring demo only supports guid client stores")
	}

	raw, err := os.ReadFile(op.BallotDefinition)
	if err != nil {
		return "", fmt.Errorf("failed to read ballot definition: %w", err)
	}
	var blank models.BlankBallot
	if err := json.Unmarshal(raw, &blank); err != nil {
		return "", fmt.Errorf("failed to parse ballot definition: %w", err)
	}
	if len(blank.Contests) == 0 {
		return "", errors.New("ballot definition has no contests")
	}

	guid, path, err := op.Dir.Provision()
	if err != nil {
		return "", err
	}

	store, err := db.Open(path)
	if err != nil {
		return "", err
	}
	defer store.Close()

	if err := db.CreateSchema(store); err != nil {
		return "", err
	}

	tx, err := store.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO election (id, ballot_node, ballot_subdir, address, blank_ballot)
		VALUES (1, ?, ?, ?, ?)
	`, blank.BallotNode, blank.BallotSubdir, blank.Address, string(raw))
	if err != nil {
		return "", fmt.Errorf("failed to seed election: %w", err)
	}

	for _, contest := range blank.Contests {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO contest (uid, name, tally, max_selections)
			VALUES (?, ?, ?, ?)
		`, contest.UID, contest.Name, contest.Tally, contest.MaxSelections)
		if err != nil {
			return "", fmt.Errorf("failed to seed contest %s: %w", contest.UID, err)
		}

		if err := seedPrecastCache(ctx, tx, contest); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	if op.Verbosity >= 3 {
		slog.Info("workspace provisioned",
			"guid", guid,
			"contests", len(blank.Contests),
			"precast_ballots", precastBallots,
		)
	}
	return guid, nil
}

// seedPrecastCache fills one contest's pre-cast ballot cache with
// random selections.
func seedPrecastCache(ctx context.Context, tx *sql.Tx, contest models.Contest) error {
	if len(contest.Choices) == 0 {
		return fmt.Errorf("contest %s has no choices", contest.UID)
	}

	for i := 0; i < precastBallots; i++ {
		choice := contest.Choices[mathrand.IntN(len(contest.Choices))]
		selection, err := json.Marshal([]string{choice.Name})
		if err != nil {
			return fmt.Errorf("failed to encode precast selection: %w", err)
		}

		digest, err := newDigest()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO cvr (id, contest_uid, selection, digest, voter)
			VALUES (?, ?, ?, ?, 0)
		`, uuid.NewString(), contest.UID, string(selection), digest)
		if err != nil {
			return fmt.Errorf("failed to seed precast cvr for %s: %w", contest.UID, err)
		}
	}
	return nil
}

// newDigest mints a 40-character hex digest for a cast vote record.
func newDigest() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate digest: %w", err)
	}
	return hex.EncodeToString(b), nil
}
