package models

// Tally method constants
const (
	TallyPlurality = "plurality"
)

// Domain types
//
// JSON keys for the ballot-check and tally payloads mirror the wire
// format the spring-demo frontend already speaks ("ballot-check",
// "vote-index", "contest-uids", "track-contests").

// Choice is a single selectable entry within a contest.
type Choice struct {
	Name  string `json:"name"`
	Party string `json:"party,omitempty"`
}

// Contest is one race or question on a blank ballot.
type Contest struct {
	UID           string   `json:"uid"`
	Name          string   `json:"name"`
	Tally         string   `json:"tally"`
	MaxSelections int      `json:"max_selections"`
	Choices       []Choice `json:"choices"`
}

// BlankBallot is the unmarked ballot offered to a voter for one
// workspace. Produced once per session and returned verbatim.
type BlankBallot struct {
	BallotNode   string    `json:"ballot_node"`
	BallotSubdir string    `json:"ballot_subdir"`
	Address      string    `json:"address"`
	Contests     []Contest `json:"contests"`
}

// CastContest carries the voter's selection for one contest.
type CastContest struct {
	UID       string   `json:"uid"`
	Name      string   `json:"name"`
	Selection []string `json:"selection"`
}

// CastBallot is the voter's marked ballot. The gateway forwards it
// verbatim; schema validation belongs to the accept operation.
type CastBallot struct {
	BallotNode   string        `json:"ballot_node"`
	BallotSubdir string        `json:"ballot_subdir"`
	Contests     []CastContest `json:"contests"`
}

// BallotCheck is an ordered table of receipt rows plus the index of
// the row that belongs to the current voter. Row 0 is the header row
// of contest UIDs. The rows and the index travel together - an index
// is only meaningful against the exact table it was produced with.
type BallotCheck struct {
	Receipts   [][]string `json:"ballot-check"`
	VoterIndex int        `json:"vote-index"`
}

// Request types

// TallyRequest names which contests to tally, whether to track them
// through the tally, and at what verbosity.
type TallyRequest struct {
	ContestUIDs   []string `json:"contest-uids"`
	TrackContests bool     `json:"track-contests"`
	Verbosity     int      `json:"verbosity"`
}

// Response types

type IssueSessionResponse struct {
	VoteStoreID string `json:"vote_store_id"`
}

type EnumerateSessionsResponse struct {
	VoteStoreIDs []string `json:"vote_store_ids"`
}

type VerifyBallotCheckResponse struct {
	VerifyLog string `json:"verify-log"`
}

type TallyContestsResponse struct {
	TallyLog string `json:"tally-log"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
