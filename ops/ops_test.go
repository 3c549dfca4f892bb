// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ops

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TrustTheVote-Project/VTP-spring-demo/models"
	"github.com/TrustTheVote-Project/VTP-spring-demo/workspace"
)

func testBallotDefinition(t *testing.T) string {
	t.Helper()

	blank := models.BlankBallot{
		BallotNode:   "Massachusetts.Concord",
		BallotSubdir: "GGOs/states/Massachusetts/GGOs/towns/Concord",
		Address:      "123, Main Street, Concord, Massachusetts",
		Contests: []models.Contest{
			{
				UID: "0000", Name: "U.S. Senate", Tally: models.TallyPlurality, MaxSelections: 1,
				Choices: []models.Choice{
					{Name: "Anthony Alpha", Party: "Circle Party"},
					{Name: "Betty Beta", Party: "Square Party"},
				},
			},
			{
				UID: "0001", Name: "Question 1", Tally: models.TallyPlurality, MaxSelections: 1,
				Choices: []models.Choice{{Name: "Yes"}, {Name: "No"}},
			},
		},
	}

	raw, err := json.Marshal(blank)
	if err != nil {
		t.Fatalf("Failed to marshal ballot definition: %v", err)
	}

	path := filepath.Join(t.TempDir(), "blank-ballot.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("Failed to write ballot definition: %v", err)
	}
	return path
}

func setupTestWorkspace(t *testing.T) (*workspace.Directory, string, string) {
	t.Helper()

	dir, err := workspace.NewDirectory(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	op := &SetupOperation{
		Dir:              dir,
		BallotDefinition: testBallotDefinition(t),
		Verbosity:        1,
		GuidClientStore:  true,
	}
	guid, err := op.Run(context.Background())
	if err != nil {
		t.Fatalf("Failed to set up workspace: %v", err)
	}

	path, err := dir.Resolve(guid)
	if err != nil {
		t.Fatalf("Failed to resolve provisioned guid: %v", err)
	}
	return dir, guid, path
}

func testCastBallot() *models.CastBallot {
	return &models.CastBallot{
		BallotNode:   "Massachusetts.Concord",
		BallotSubdir: "GGOs/states/Massachusetts/GGOs/towns/Concord",
		Contests: []models.CastContest{
			{UID: "0000", Name: "U.S. Senate", Selection: []string{"Betty Beta"}},
			{UID: "0001", Name: "Question 1", Selection: []string{"Yes"}},
		},
	}
}

func TestSetupRequiresGuidClientStore(t *testing.T) {
	dir, err := workspace.NewDirectory(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	op := &SetupOperation{
		Dir:              dir,
		BallotDefinition: testBallotDefinition(t),
		GuidClientStore:  false,
	}
	if _, err := op.Run(context.Background()); err == nil {
		t.Error("Expected error without guid client store semantics")
	}
}

func TestBlankBallotIsIdempotent(t *testing.T) {
	_, _, path := setupTestWorkspace(t)

	op := &BlankBallotOperation{
		WorkspaceDir:      path,
		Address:           "123, Main Street, Concord, Massachusetts",
		ReturnBlankBallot: true,
	}

	first, err := op.Run(context.Background())
	if err != nil {
		t.Fatalf("Failed to read blank ballot: %v", err)
	}
	second, err := op.Run(context.Background())
	if err != nil {
		t.Fatalf("Failed to read blank ballot twice: %v", err)
	}

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	if string(firstJSON) != string(secondJSON) {
		t.Error("Expected byte-identical blank ballots across reads")
	}

	if len(first.Contests) != 2 {
		t.Errorf("Expected 2 contests, got %d", len(first.Contests))
	}
}

func TestAcceptVerifyTallyCycle(t *testing.T) {
	_, _, path := setupTestWorkspace(t)
	ctx := context.Background()

	accept := &AcceptBallotOperation{
		WorkspaceDir:  path,
		Ballot:        testCastBallot(),
		MergeContests: true,
	}
	check, err := accept.Run(ctx)
	if err != nil {
		t.Fatalf("Failed to accept ballot: %v", err)
	}

	// Header plus the precast cache plus the voter's row.
	if len(check.Receipts) != precastBallots+2 {
		t.Errorf("Expected %d receipt rows, got %d", precastBallots+2, len(check.Receipts))
	}
	if check.VoterIndex < 1 || check.VoterIndex >= len(check.Receipts) {
		t.Fatalf("Voter index %d outside table of %d rows", check.VoterIndex, len(check.Receipts))
	}
	if got := check.Receipts[0][0]; got != "0000" {
		t.Errorf("Expected header row of contest uids, got %v", check.Receipts[0])
	}

	// The exact check returned by the cast must verify.
	verify := &VerifyBallotReceiptOperation{
		WorkspaceDir: path,
		Receipts:     check.Receipts,
		Row:          check.VoterIndex,
		CVR:          true,
	}
	report, err := verify.Run(ctx)
	if err != nil {
		t.Fatalf("Failed to verify returned ballot check: %v", err)
	}
	if !strings.Contains(report, "verified") {
		t.Errorf("Expected verification report to mention the voter row, got:\n%s", report)
	}

	// The same table with an off-by-one index must not verify.
	offByOne := check.VoterIndex + 1
	if offByOne >= len(check.Receipts) {
		offByOne = check.VoterIndex - 1
	}
	verify.Row = offByOne
	if _, err := verify.Run(ctx); !errors.Is(err, ErrMismatchedReceipt) {
		t.Errorf("Expected ErrMismatchedReceipt for off-by-one index, got %v", err)
	}

	// Tally covers the cache plus the voter's ballot.
	tally := &TallyContestsOperation{
		WorkspaceDir:  path,
		Verbosity:     3,
		TrackContests: true,
	}
	tallyReport, err := tally.Run(ctx)
	if err != nil {
		t.Fatalf("Failed to tally contests: %v", err)
	}
	if !strings.Contains(tallyReport, "U.S. Senate") || !strings.Contains(tallyReport, "Question 1") {
		t.Errorf("Expected tally report to cover both contests, got:\n%s", tallyReport)
	}
	if !strings.Contains(tallyReport, "Winner:") {
		t.Errorf("Expected a winner line in the tally report, got:\n%s", tallyReport)
	}
	if !strings.Contains(tallyReport, "counted ") {
		t.Errorf("Expected tracked digests in the tally report, got:\n%s", tallyReport)
	}
}

func TestPartialBallotCheckVerifies(t *testing.T) {
	_, _, path := setupTestWorkspace(t)
	ctx := context.Background()

	// Vote only the first contest; the second is an undervote.
	accept := &AcceptBallotOperation{
		WorkspaceDir: path,
		Ballot: &models.CastBallot{
			Contests: []models.CastContest{
				{UID: "0000", Name: "U.S. Senate", Selection: []string{"Anthony Alpha"}},
			},
		},
		MergeContests: true,
	}
	check, err := accept.Run(ctx)
	if err != nil {
		t.Fatalf("Failed to accept partial ballot: %v", err)
	}

	// The voter's row must be fully populated, undervoted contests
	// included.
	for col, digest := range check.Receipts[check.VoterIndex] {
		if digest == "" {
			t.Errorf("Voter row cell %d is empty", col)
		}
	}

	// The exact check and index returned by the cast must verify.
	verify := &VerifyBallotReceiptOperation{
		WorkspaceDir: path,
		Receipts:     check.Receipts,
		Row:          check.VoterIndex,
		CVR:          true,
	}
	report, err := verify.Run(ctx)
	if err != nil {
		t.Fatalf("Exact check returned for a partial ballot failed to verify: %v", err)
	}
	if !strings.Contains(report, "verified") {
		t.Errorf("Expected verification report to mention the voter row, got:\n%s", report)
	}

	// The undervote still appears in the tally's ballot count.
	tally := &TallyContestsOperation{WorkspaceDir: path}
	tallyReport, err := tally.Run(ctx)
	if err != nil {
		t.Fatalf("Failed to tally after partial cast: %v", err)
	}
	if !strings.Contains(tallyReport, "Question 1") {
		t.Errorf("Expected the undervoted contest in the tally report, got:\n%s", tallyReport)
	}
}

func TestAcceptRejectsDoubleCast(t *testing.T) {
	_, _, path := setupTestWorkspace(t)
	ctx := context.Background()

	accept := &AcceptBallotOperation{
		WorkspaceDir:  path,
		Ballot:        testCastBallot(),
		MergeContests: true,
	}
	if _, err := accept.Run(ctx); err != nil {
		t.Fatalf("Failed to accept first ballot: %v", err)
	}

	if _, err := accept.Run(ctx); !errors.Is(err, ErrBallotAlreadyCast) {
		t.Errorf("Expected ErrBallotAlreadyCast on second cast, got %v", err)
	}
}

func TestAcceptValidatesBallot(t *testing.T) {
	_, _, path := setupTestWorkspace(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		ballot *models.CastBallot
	}{
		{"nil ballot", nil},
		{"no contests", &models.CastBallot{}},
		{
			"unknown contest",
			&models.CastBallot{Contests: []models.CastContest{
				{UID: "9999", Selection: []string{"Yes"}},
			}},
		},
		{
			"empty selection",
			&models.CastBallot{Contests: []models.CastContest{
				{UID: "0000", Selection: nil},
			}},
		},
		{
			"too many selections",
			&models.CastBallot{Contests: []models.CastContest{
				{UID: "0000", Selection: []string{"Anthony Alpha", "Betty Beta"}},
			}},
		},
		{
			"unknown choice",
			&models.CastBallot{Contests: []models.CastContest{
				{UID: "0000", Selection: []string{"Zelda Zeta"}},
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			op := &AcceptBallotOperation{
				WorkspaceDir:  path,
				Ballot:        tc.ballot,
				MergeContests: true,
			}
			if _, err := op.Run(ctx); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestUnmergedCheckCarriesOnlyVoterRow(t *testing.T) {
	_, _, path := setupTestWorkspace(t)

	accept := &AcceptBallotOperation{
		WorkspaceDir:  path,
		Ballot:        testCastBallot(),
		MergeContests: false,
	}
	check, err := accept.Run(context.Background())
	if err != nil {
		t.Fatalf("Failed to accept ballot: %v", err)
	}

	if len(check.Receipts) != 2 {
		t.Errorf("Expected header plus one voter row, got %d rows", len(check.Receipts))
	}
	if check.VoterIndex != 1 {
		t.Errorf("Expected voter index 1, got %d", check.VoterIndex)
	}
}

func TestTallyUnknownContest(t *testing.T) {
	_, _, path := setupTestWorkspace(t)

	tally := &TallyContestsOperation{
		WorkspaceDir: path,
		ContestUIDs:  []string{"9999"},
	}
	if _, err := tally.Run(context.Background()); err == nil {
		t.Error("Expected error for unknown contest uid")
	}
}

func TestInvokerRunsFullCycle(t *testing.T) {
	dir, err := workspace.NewDirectory(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	inv := &Invoker{dir: dir, ballotDefinition: testBallotDefinition(t)}
	ctx := context.Background()

	guid, err := inv.SetupWorkspace(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to set up workspace: %v", err)
	}

	path, err := dir.Resolve(guid)
	if err != nil {
		t.Fatalf("Failed to resolve guid: %v", err)
	}

	blank, err := inv.BlankBallot(ctx, path, 1, "123, Main Street, Concord, Massachusetts")
	if err != nil {
		t.Fatalf("Failed to get blank ballot: %v", err)
	}
	if len(blank.Contests) == 0 {
		t.Fatal("Expected contests on the blank ballot")
	}

	check, err := inv.AcceptBallot(ctx, path, 1, testCastBallot())
	if err != nil {
		t.Fatalf("Failed to accept ballot: %v", err)
	}

	if _, err := inv.VerifyReceipt(ctx, path, check.Receipts, check.VoterIndex); err != nil {
		t.Fatalf("Failed to verify receipt: %v", err)
	}

	report, err := inv.TallyContests(ctx, path, 1, nil, false)
	if err != nil {
		t.Fatalf("Failed to tally contests: %v", err)
	}
	if report == "" {
		t.Error("Expected non-empty tally report")
	}
}
