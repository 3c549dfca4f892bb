// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/TrustTheVote-Project/VTP-spring-demo/cliparse"
	"github.com/TrustTheVote-Project/VTP-spring-demo/models"
)

// ErrOperationTimeout reports a delegated operation that ran past the
// configured deadline. Distinct from a definitive backing-store
// failure - callers may retry.
var ErrOperationTimeout = errors.New("backend operation timed out")

// Directory resolves session guids to workspace locations.
type Directory interface {
	Resolve(guid string) (string, error)
	List() ([]string, error)
}

// Invoker runs the backing-store operations against a resolved
// workspace.
type Invoker interface {
	SetupWorkspace(ctx context.Context, verbosity int) (string, error)
	BlankBallot(ctx context.Context, workspaceDir string, verbosity int, address string) (*models.BlankBallot, error)
	AcceptBallot(ctx context.Context, workspaceDir string, verbosity int, ballot *models.CastBallot) (*models.BallotCheck, error)
	VerifyReceipt(ctx context.Context, workspaceDir string, receipts [][]string, row int) (string, error)
	TallyContests(ctx context.Context, workspaceDir string, verbosity int, contestUIDs []string, trackContests bool) (string, error)
}

// MockProvider serves the static fixtures in mock mode.
type MockProvider interface {
	GUID() string
	BlankBallot() *models.BlankBallot
	BallotCheck() *models.BallotCheck
	VerifyLog() string
	TallyLog() string
}

// Gateway is the session gateway: five operations over guid-bound
// workspaces, each served either from live ElectionData or from the
// mock provider. The mode is fixed at construction and every
// operation branches on it first - in mock mode neither the directory
// nor the invoker is ever touched, not even to validate the guid.
type Gateway struct {
	mock      bool
	dir       Directory
	invoker   Invoker
	mockData  MockProvider
	verbosity int
	address   string
	opTimeout time.Duration
	locks     *sessionLocks
}

// New builds a gateway from its collaborators. Live mode requires a
// directory and an invoker; mock mode requires a mock provider. A
// missing collaborator for the configured mode is a configuration
// error.
func New(cfg cliparse.Config, dir Directory, invoker Invoker, mockData MockProvider) (*Gateway, error) {
	if cfg.MockMode {
		if mockData == nil {
			return nil, errors.New("mock mode configured without mock data")
		}
	} else {
		if dir == nil || invoker == nil {
			return nil, errors.New("live mode configured without a workspace directory or invoker")
		}
	}

	return &Gateway{
		mock:      cfg.MockMode,
		dir:       dir,
		invoker:   invoker,
		mockData:  mockData,
		verbosity: cfg.Verbosity,
		address:   cfg.Address,
		opTimeout: cfg.OpTimeout,
		locks:     newSessionLocks(),
	}, nil
}

// IssueSession provisions a workspace for a new voting session and
// returns its guid. Each live call creates a fresh workspace; the
// mock branch always returns the same fabricated guid.
func (g *Gateway) IssueSession(ctx context.Context) (string, error) {
	if g.mock {
		return g.mockData.GUID(), nil
	}

	ctx, cancel := g.bound(ctx)
	defer cancel()

	guid, err := g.invoker.SetupWorkspace(ctx, g.verbosity)
	if err != nil {
		return "", g.timeoutErr(ctx, err)
	}
	slog.Info("session issued", "guid", guid)
	return guid, nil
}

// GetBlankBallot returns the blank ballot for an issued session.
func (g *Gateway) GetBlankBallot(ctx context.Context, guid string) (*models.BlankBallot, error) {
	if g.mock {
		return g.mockData.BlankBallot(), nil
	}

	path, err := g.dir.Resolve(guid)
	if err != nil {
		return nil, err
	}

	lock := g.locks.get(guid)
	lock.RLock()
	defer lock.RUnlock()

	ctx, cancel := g.bound(ctx)
	defer cancel()

	ballot, err := g.invoker.BlankBallot(ctx, path, g.verbosity, g.address)
	if err != nil {
		return nil, g.timeoutErr(ctx, err)
	}
	return ballot, nil
}

// EnumerateSessions lists every known session guid. Mock mode tracks
// no sessions and returns an empty list.
func (g *Gateway) EnumerateSessions(ctx context.Context) ([]string, error) {
	if g.mock {
		return []string{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return g.dir.List()
}

// CastBallot records a marked ballot for a session and returns the
// ballot-check table with the voter's row index. Casts against the
// same session are serialized; the ballot payload is forwarded to the
// accept operation without inspection.
func (g *Gateway) CastBallot(ctx context.Context, guid string, ballot *models.CastBallot) (*models.BallotCheck, error) {
	if g.mock {
		return g.mockData.BallotCheck(), nil
	}

	path, err := g.dir.Resolve(guid)
	if err != nil {
		return nil, err
	}

	lock := g.locks.get(guid)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := g.bound(ctx)
	defer cancel()

	check, err := g.invoker.AcceptBallot(ctx, path, g.verbosity, ballot)
	if err != nil {
		return nil, g.timeoutErr(ctx, err)
	}
	slog.Info("ballot cast", "guid", guid, "vote_index", check.VoterIndex)
	return check, nil
}

// VerifyBallotCheck verifies a ballot-check table and voter index
// pair against a session's workspace, returning the verification
// report. Pairing consistency is the verify operation's call, not the
// gateway's.
func (g *Gateway) VerifyBallotCheck(ctx context.Context, guid string, check *models.BallotCheck) (string, error) {
	if g.mock {
		return g.mockData.VerifyLog(), nil
	}

	path, err := g.dir.Resolve(guid)
	if err != nil {
		return "", err
	}

	lock := g.locks.get(guid)
	lock.RLock()
	defer lock.RUnlock()

	ctx, cancel := g.bound(ctx)
	defer cancel()

	report, err := g.invoker.VerifyReceipt(ctx, path, check.Receipts, check.VoterIndex)
	if err != nil {
		return "", g.timeoutErr(ctx, err)
	}
	return report, nil
}

// TallyContests tallies a session workspace's contests and returns
// the tally report. Repeatable; the request's verbosity overrides the
// backend default when set.
func (g *Gateway) TallyContests(ctx context.Context, guid string, req *models.TallyRequest) (string, error) {
	if g.mock {
		return g.mockData.TallyLog(), nil
	}

	path, err := g.dir.Resolve(guid)
	if err != nil {
		return "", err
	}

	lock := g.locks.get(guid)
	lock.RLock()
	defer lock.RUnlock()

	ctx, cancel := g.bound(ctx)
	defer cancel()

	verbosity := req.Verbosity
	if verbosity == 0 {
		verbosity = g.verbosity
	}

	report, err := g.invoker.TallyContests(ctx, path, verbosity, req.ContestUIDs, req.TrackContests)
	if err != nil {
		return "", g.timeoutErr(ctx, err)
	}
	return report, nil
}

// bound applies the per-operation deadline.
func (g *Gateway) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.opTimeout)
}

// timeoutErr maps a deadline expiry onto ErrOperationTimeout; every
// other delegated failure passes through with its classification
// intact.
func (g *Gateway) timeoutErr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %v", ErrOperationTimeout, g.opTimeout)
	}
	return err
}
