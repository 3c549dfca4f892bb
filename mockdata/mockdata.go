// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mockdata

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TrustTheVote-Project/VTP-spring-demo/models"
)

// Fixed mock artifacts for the spring demo. The guid is made up; the
// receipts fixture carries a hundred pre-cast ballots so a
// ballot-check can be produced without a live ElectionData deployment.
const (
	MockGUID       = "01d963fd74100ee3f36428740a8efd8afd781839"
	MockVoterIndex = 26

	MockVerifyBallotReceiptLog = "Hello World"
	MockTallyContestsLog       = "Good Morning"
)

// Fixture file names within the mock-data directory.
const (
	blankBallotFile = "blank-ballot.json"
	castBallotFile  = "cast-ballot.json"
	ballotCheckFile = "receipts.26.csv"
)

// Provider serves the static mock fixtures. All artifacts are loaded
// once at construction; after that every read is a pure, deterministic
// in-memory lookup with no dependency on any guid value.
type Provider struct {
	blankBallot *models.BlankBallot
	castBallot  *models.CastBallot
	receipts    [][]string
}

// Load reads and parses all mock fixtures from dir. Missing or
// malformed fixtures are a fatal configuration error - mock mode
// exists to be deterministically available, so there is no
// normal-path recovery from a bad fixture.
func Load(dir string) (*Provider, error) {
	p := &Provider{}

	if err := readJSON(filepath.Join(dir, blankBallotFile), &p.blankBallot); err != nil {
		return nil, fmt.Errorf("mock blank ballot: %w", err)
	}
	if err := readJSON(filepath.Join(dir, castBallotFile), &p.castBallot); err != nil {
		return nil, fmt.Errorf("mock cast ballot: %w", err)
	}

	f, err := os.Open(filepath.Join(dir, ballotCheckFile))
	if err != nil {
		return nil, fmt.Errorf("mock ballot check: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("mock ballot check: %w", err)
	}
	if len(rows) <= MockVoterIndex {
		return nil, fmt.Errorf("mock ballot check: %d rows cannot hold voter index %d",
			len(rows), MockVoterIndex)
	}
	p.receipts = rows

	return p, nil
}

// GUID returns the fixed mock session guid.
func (p *Provider) GUID() string {
	return MockGUID
}

// BlankBallot returns the static blank ballot fixture.
func (p *Provider) BlankBallot() *models.BlankBallot {
	return p.blankBallot
}

// CastBallot returns the static cast ballot fixture. Mock/testing
// callers only - none of the public gateway operations route here.
func (p *Provider) CastBallot() *models.CastBallot {
	return p.castBallot
}

// BallotCheck returns the static receipt table with the fixed voter
// index.
func (p *Provider) BallotCheck() *models.BallotCheck {
	return &models.BallotCheck{
		Receipts:   p.receipts,
		VoterIndex: MockVoterIndex,
	}
}

// VerifyLog returns the fixed mock verification log.
func (p *Provider) VerifyLog() string {
	return MockVerifyBallotReceiptLog
}

// TallyLog returns the fixed mock tally log.
func (p *Provider) TallyLog() string {
	return MockTallyContestsLog
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
