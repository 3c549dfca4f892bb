// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ops

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/TrustTheVote-Project/VTP-spring-demo/db"
)

// ErrMismatchedReceipt reports a ballot-check table and voter index
// that do not correspond: the indexed row is not the row this
// workspace handed to its voter.
var ErrMismatchedReceipt = errors.New("ballot check and voter index do not match")

// VerifyBallotReceiptOperation checks a voter's printed receipt
// against one workspace's election store.
type VerifyBallotReceiptOperation struct {
	WorkspaceDir string
	Receipts     [][]string
	Row          int
	CVR          bool
}

// Run verifies the receipt and returns a text report. Two things are
// proven: every digest row of the presented table was actually handed
// out by this workspace, and the indexed row is the voter's own row.
func (op *VerifyBallotReceiptOperation) Run(ctx context.Context) (string, error) {
	if len(op.Receipts) < 2 {
		return "", fmt.Errorf("%w: receipt table needs a header and at least one row", ErrMismatchedReceipt)
	}
	if op.Row < 1 || op.Row >= len(op.Receipts) {
		return "", fmt.Errorf("%w: row %d is outside the table", ErrMismatchedReceipt, op.Row)
	}

	store, err := db.Open(op.WorkspaceDir)
	if err != nil {
		return "", err
	}
	defer store.Close()

	header := op.Receipts[0]

	// Membership check: all presented digests must be receipts this
	// workspace issued.
	badRows := 0
	for rowIdx, row := range op.Receipts[1:] {
		if len(row) != len(header) {
			return "", fmt.Errorf("%w: row %d has %d cells, header has %d",
				ErrMismatchedReceipt, rowIdx+1, len(row), len(header))
		}
		ok, err := receiptRowKnown(ctx, store, row)
		if err != nil {
			return "", err
		}
		if !ok {
			badRows++
		}
	}

	// Ownership check: with CVR semantics the indexed row must
	// resolve to the voter's own cast vote records, so a shifted or
	// borrowed index fails even when the table itself is genuine.
	if op.CVR {
		for colIdx, digest := range op.Receipts[op.Row] {
			var count int
			err := store.QueryRowContext(ctx, `
				SELECT COUNT(*) FROM cvr WHERE digest = ? AND voter = 1 AND contest_uid = ?
			`, digest, header[colIdx]).Scan(&count)
			if err != nil {
				return "", fmt.Errorf("failed to check cvr digest: %w", err)
			}
			if count == 0 {
				return "", fmt.Errorf("%w: row %d column %s", ErrMismatchedReceipt, op.Row, header[colIdx])
			}
		}
	}

	return buildVerifyReport(header, len(op.Receipts)-1, badRows, op.Row), nil
}

// receiptRowKnown reports whether every digest in the row was issued
// by this workspace.
func receiptRowKnown(ctx context.Context, store *sql.DB, row []string) (bool, error) {
	for _, digest := range row {
		var count int
		err := store.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM receipt WHERE digest = ?
		`, digest).Scan(&count)
		if err != nil {
			return false, fmt.Errorf("failed to check receipt digest: %w", err)
		}
		if count == 0 {
			return false, nil
		}
	}
	return true, nil
}

// buildVerifyReport renders the verification summary table.
func buildVerifyReport(header []string, totalRows, badRows, voterRow int) string {
	var sb strings.Builder
	sb.WriteString("Ballot check verification\n")

	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"Check", "Result"})
	table.Append([]string{"contests", strings.Join(header, ", ")})
	table.Append([]string{"receipt rows", fmt.Sprintf("%d", totalRows)})
	table.Append([]string{"unknown rows", fmt.Sprintf("%d", badRows)})
	table.Append([]string{"voter row", fmt.Sprintf("%d verified", voterRow)})
	table.Render()

	if badRows == 0 {
		sb.WriteString("All receipt rows match the election store.\n")
	} else {
		sb.WriteString(fmt.Sprintf("%d receipt rows are unknown to the election store.\n", badRows))
	}
	return sb.String()
}
