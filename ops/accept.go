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
	mathrand "math/rand/v2"

	"github.com/google/uuid"

	"github.com/TrustTheVote-Project/VTP-spring-demo/db"
	"github.com/TrustTheVote-Project/VTP-spring-demo/models"
)

// ErrBallotAlreadyCast reports a second cast attempt against a
// workspace that already holds a voter ballot. One session, one cast.
var ErrBallotAlreadyCast = errors.New("a ballot has already been cast for this workspace")

// AcceptBallotOperation records a cast ballot and produces the
// ballot-check table plus the voter's row index.
type AcceptBallotOperation struct {
	WorkspaceDir  string
	Verbosity     int
	Ballot        *models.CastBallot
	MergeContests bool
}

// Run validates and records the cast ballot, then builds the
// ballot-check. The check blends the voter's digests into the
// pre-cast cache at a random row so the receipt alone does not reveal
// which row is the voter's to anyone but the voter.
func (op *AcceptBallotOperation) Run(ctx context.Context) (*models.BallotCheck, error) {
	if op.Ballot == nil || len(op.Ballot.Contests) == 0 {
		return nil, errors.New("cast ballot has no contests")
	}

	store, err := db.Open(op.WorkspaceDir)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	blank, err := loadBlankBallot(ctx, store)
	if err != nil {
		return nil, err
	}

	contests := make(map[string]models.Contest, len(blank.Contests))
	for _, contest := range blank.Contests {
		contests[contest.UID] = contest
	}
	if err := validateCastBallot(op.Ballot, contests); err != nil {
		return nil, err
	}

	tx, err := store.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin cast transaction: %w", err)
	}
	defer tx.Rollback()

	// Reject a double cast inside the transaction so two racing
	// accepts cannot both pass the check.
	var priorCasts int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM cvr WHERE voter = 1`).Scan(&priorCasts); err != nil {
		return nil, fmt.Errorf("failed to check for a prior cast: %w", err)
	}
	if priorCasts > 0 {
		return nil, ErrBallotAlreadyCast
	}

	// Record the voter's CVRs, one per contest, in blank ballot order.
	voterDigests := make(map[string]string, len(op.Ballot.Contests))
	for _, cast := range op.Ballot.Contests {
		selection, err := json.Marshal(cast.Selection)
		if err != nil {
			return nil, fmt.Errorf("failed to encode selection: %w", err)
		}

		digest, err := newDigest()
		if err != nil {
			return nil, err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO cvr (id, contest_uid, selection, digest, voter)
			VALUES (?, ?, ?, ?, 1)
		`, uuid.NewString(), cast.UID, string(selection), digest)
		if err != nil {
			return nil, fmt.Errorf("failed to record cvr for %s: %w", cast.UID, err)
		}
		voterDigests[cast.UID] = digest
	}

	// Contests the voter left blank still get a voter CVR, recording
	// the undervote. Every cell of the voter's check row must resolve
	// to the voter's own records or the returned index would fail its
	// own verification.
	for _, contest := range blank.Contests {
		if _, ok := voterDigests[contest.UID]; ok {
			continue
		}

		digest, err := newDigest()
		if err != nil {
			return nil, err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO cvr (id, contest_uid, selection, digest, voter)
			VALUES (?, ?, '[]', ?, 1)
		`, uuid.NewString(), contest.UID, digest)
		if err != nil {
			return nil, fmt.Errorf("failed to record undervote cvr for %s: %w", contest.UID, err)
		}
		voterDigests[contest.UID] = digest
	}

	check, err := buildBallotCheck(ctx, tx, blank, voterDigests, op.MergeContests)
	if err != nil {
		return nil, err
	}

	// Persist the handed-out receipt table so verification can later
	// prove membership.
	for rowIdx, row := range check.Receipts {
		if rowIdx == 0 {
			continue // header row
		}
		for colIdx, digest := range row {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO receipt (row_index, col_index, digest)
				VALUES (?, ?, ?)
			`, rowIdx, colIdx, digest)
			if err != nil {
				return nil, fmt.Errorf("failed to persist receipt row %d: %w", rowIdx, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cast transaction: %w", err)
	}

	if op.Verbosity >= 3 {
		slog.Info("ballot accepted",
			"contests", len(op.Ballot.Contests),
			"check_rows", len(check.Receipts),
		)
	}
	return check, nil
}

// validateCastBallot enforces the ballot schema against the blank
// ballot: known contests, non-empty selections within the selection
// limit, and only listed choices.
func validateCastBallot(ballot *models.CastBallot, contests map[string]models.Contest) error {
	for _, cast := range ballot.Contests {
		contest, ok := contests[cast.UID]
		if !ok {
			return fmt.Errorf("cast ballot names unknown contest %q", cast.UID)
		}
		if len(cast.Selection) == 0 {
			return fmt.Errorf("contest %s has no selection", cast.UID)
		}
		if len(cast.Selection) > contest.MaxSelections {
			return fmt.Errorf("contest %s allows %d selections, got %d",
				cast.UID, contest.MaxSelections, len(cast.Selection))
		}

		valid := make(map[string]bool, len(contest.Choices))
		for _, choice := range contest.Choices {
			valid[choice.Name] = true
		}
		for _, name := range cast.Selection {
			if !valid[name] {
				return fmt.Errorf("contest %s has no choice %q", cast.UID, name)
			}
		}
	}
	return nil
}

// buildBallotCheck assembles the receipt table: a header row of
// contest UIDs followed by digest rows drawn from the pre-cast cache,
// with the voter's own digests placed at a random row.
func buildBallotCheck(ctx context.Context, tx *sql.Tx, blank *models.BlankBallot, voterDigests map[string]string, mergeContests bool) (*models.BallotCheck, error) {
	header := make([]string, len(blank.Contests))
	for i, contest := range blank.Contests {
		header[i] = contest.UID
	}

	voterRow := make([]string, len(blank.Contests))
	for i, contest := range blank.Contests {
		voterRow[i] = voterDigests[contest.UID]
	}

	if !mergeContests {
		// Unmerged checks carry only the voter's own row.
		return &models.BallotCheck{
			Receipts:   [][]string{header, voterRow},
			VoterIndex: 1,
		}, nil
	}

	// Pull the cache digests per contest column.
	columns := make([][]string, len(blank.Contests))
	rows := precastBallots
	for i, contest := range blank.Contests {
		digests, err := cacheDigests(ctx, tx, contest.UID)
		if err != nil {
			return nil, err
		}
		if len(digests) < rows {
			rows = len(digests)
		}
		columns[i] = digests
	}
	if rows == 0 {
		return nil, errors.New("pre-cast ballot cache is empty")
	}

	table := make([][]string, 0, rows+2)
	table = append(table, header)
	for r := 0; r < rows; r++ {
		row := make([]string, len(columns))
		for c := range columns {
			row[c] = columns[c][r]
		}
		table = append(table, row)
	}

	// Splice the voter's row in at a random position past the header.
	voterIndex := 1 + mathrand.IntN(rows+1)
	table = append(table, nil)
	copy(table[voterIndex+1:], table[voterIndex:])
	table[voterIndex] = voterRow

	return &models.BallotCheck{
		Receipts:   table,
		VoterIndex: voterIndex,
	}, nil
}

// cacheDigests returns the pre-cast digests for one contest.
func cacheDigests(ctx context.Context, tx *sql.Tx, contestUID string) ([]string, error) {
	result, err := tx.QueryContext(ctx, `
		SELECT digest FROM cvr
		WHERE contest_uid = ? AND voter = 0
		ORDER BY digest
	`, contestUID)
	if err != nil {
		return nil, fmt.Errorf("failed to read precast cache for %s: %w", contestUID, err)
	}
	defer result.Close()

	var digests []string
	for result.Next() {
		var digest string
		if err := result.Scan(&digest); err != nil {
			return nil, fmt.Errorf("failed to scan precast digest: %w", err)
		}
		digests = append(digests, digest)
	}
	return digests, result.Err()
}

// loadBlankBallot reads the workspace's blank ballot definition.
func loadBlankBallot(ctx context.Context, store *sql.DB) (*models.BlankBallot, error) {
	var raw string
	err := store.QueryRowContext(ctx, `SELECT blank_ballot FROM election WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, errors.New("workspace election store is not initialized")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read election definition: %w", err)
	}

	var blank models.BlankBallot
	if err := json.Unmarshal([]byte(raw), &blank); err != nil {
		return nil, fmt.Errorf("stored blank ballot is corrupt: %w", err)
	}
	return &blank, nil
}
