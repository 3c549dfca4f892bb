// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ops

import (
	"context"

	"github.com/TrustTheVote-Project/VTP-spring-demo/cliparse"
	"github.com/TrustTheVote-Project/VTP-spring-demo/models"
	"github.com/TrustTheVote-Project/VTP-spring-demo/workspace"
)

// Invoker constructs and runs backing-store operations against guid
// workspaces. It passes caller payloads through verbatim and returns
// operation results and failures unchanged - no retries, no payload
// validation, no transformation beyond routing.
type Invoker struct {
	dir              *workspace.Directory
	ballotDefinition string
}

// NewInvoker returns an Invoker running operations under dir.
func NewInvoker(dir *workspace.Directory, cfg cliparse.Config) *Invoker {
	return &Invoker{
		dir:              dir,
		ballotDefinition: cfg.BallotDefinition,
	}
}

// SetupWorkspace provisions a new guid workspace and seeds its
// election store, returning the issued guid.
func (inv *Invoker) SetupWorkspace(ctx context.Context, verbosity int) (string, error) {
	op := &SetupOperation{
		Dir:              inv.dir,
		BallotDefinition: inv.ballotDefinition,
		Verbosity:        verbosity,
		GuidClientStore:  true,
	}
	return op.Run(ctx)
}

// BlankBallot reads the blank ballot for one workspace.
func (inv *Invoker) BlankBallot(ctx context.Context, workspaceDir string, verbosity int, address string) (*models.BlankBallot, error) {
	op := &BlankBallotOperation{
		WorkspaceDir:      workspaceDir,
		Verbosity:         verbosity,
		Address:           address,
		ReturnBlankBallot: true,
	}
	return op.Run(ctx)
}

// AcceptBallot records a cast ballot in one workspace and returns the
// resulting ballot-check table and voter index.
func (inv *Invoker) AcceptBallot(ctx context.Context, workspaceDir string, verbosity int, ballot *models.CastBallot) (*models.BallotCheck, error) {
	op := &AcceptBallotOperation{
		WorkspaceDir:  workspaceDir,
		Verbosity:     verbosity,
		Ballot:        ballot,
		MergeContests: true,
	}
	return op.Run(ctx)
}

// VerifyReceipt checks a ballot-check row against one workspace's
// cast vote records and returns the verification report.
func (inv *Invoker) VerifyReceipt(ctx context.Context, workspaceDir string, receipts [][]string, row int) (string, error) {
	op := &VerifyBallotReceiptOperation{
		WorkspaceDir: workspaceDir,
		Receipts:     receipts,
		Row:          row,
		CVR:          true,
	}
	return op.Run(ctx)
}

// TallyContests tallies contests in one workspace and returns the
// tally report.
func (inv *Invoker) TallyContests(ctx context.Context, workspaceDir string, verbosity int, contestUIDs []string, trackContests bool) (string, error) {
	op := &TallyContestsOperation{
		WorkspaceDir:  workspaceDir,
		Verbosity:     verbosity,
		ContestUIDs:   contestUIDs,
		TrackContests: trackContests,
	}
	return op.Run(ctx)
}
