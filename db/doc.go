// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db manages the per-workspace election store schema.

Each guid workspace holds its own embedded SQLite database
(election.db) - client-side store semantics, so no two sessions ever
share a database file. The schema covers:

  - election: the workspace's blank ballot definition (single row)
  - contest: contests available on the blank ballot
  - cvr: cast vote records, including the pre-cast ballot cache
  - receipt: the ballot-check table handed to the voter on casting

Open opens one workspace's store with WAL journaling; CreateSchema is
idempotent and applied at setup time.
*/
package db
