// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ops implements the backing-store operations the web-api
gateway delegates to, plus the Invoker that constructs and runs them.

Each operation is a struct holding its inputs with a single Run
method, executed synchronously against one guid workspace:

  - SetupOperation: provision a workspace and seed its election store
  - BlankBallotOperation: read the workspace's blank ballot
  - AcceptBallotOperation: record a cast ballot, return the
    ballot-check table and voter index
  - VerifyBallotReceiptOperation: check a ballot-check row against
    the workspace's cast vote records
  - TallyContestsOperation: tally contests and render a text report

The operations own all payload validation and workspace mutation; the
gateway above them is a pass-through. Operation failures carry their
original classification (ErrBallotAlreadyCast, ErrMismatchedReceipt,
plain storage errors) so callers can tell a malformed ballot from an
I/O failure.
*/
package ops
