// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mockdata supplies the static fixtures served in mock mode.

Without a live ElectionData deployment the backing-store operations
cannot run. Mock mode replaces every one of them with pre-recorded,
non-varying data so the web-api and the layers above it stay fully
testable:

  - a blank ballot document (blank-ballot.json)
  - a cast ballot document (cast-ballot.json, test/mocking callers only)
  - a ballot-check table with a fixed voter index (receipts.26.csv)
  - fixed verification and tally log strings

Everything is loaded once by Load; a missing or unparseable fixture is
a fatal configuration error, never a request-time condition. After
loading, reads are pure and ignore whatever guid the caller presents -
mock mode is a total bypass of the backing store, not a fallback.
*/
package mockdata
