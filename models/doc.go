// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types that
cross the web-api boundary.

# Ballot documents

BlankBallot is the unmarked contest/choice structure for one
workspace. CastBallot is the voter's marked counterpart. Both are
forwarded by the gateway without schema validation - the accept
operation owns validation so the rules live in exactly one place.

# Ballot checks

BallotCheck pairs a table of receipt rows with the voter's zero-based
row index:

	check := models.BallotCheck{
		Receipts:   rows,        // row 0 is the contest-UID header
		VoterIndex: 26,
	}

The two fields must never be separated or recombined with a different
table; verification is only defined against the exact table the cast
produced.

# Wire keys

The JSON keys ("ballot-check", "vote-index", "contest-uids",
"track-contests") match what the spring-demo frontend sends and are
load-bearing - do not rename them.
*/
package models
