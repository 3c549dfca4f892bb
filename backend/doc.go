// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package backend is the session gateway between the web-api surface
and the ElectionData backing store.

A Gateway binds opaque session guids to isolated workspaces and
exposes the ballot lifecycle over them:

	issue session → blank ballot → cast ballot → verify check / tally

# Dual-mode contract

The gateway runs in exactly one of two modes, fixed at construction:

  - live: guids resolve through the workspace Directory and every
    operation runs through the Invoker against that session's
    workspace
  - mock: every operation answers from the static MockProvider
    fixtures, bypassing resolution and invocation entirely - an
    unresolvable or even nonsensical guid is simply ignored

The mock branch is a total bypass, not a fallback: no mock-mode call
ever reaches the Directory or the Invoker. Constructing one gateway
per mode is how tests pin this down.

# What the gateway does not do

No payload validation, no retries, no result transformation, no
lifecycle-order enforcement. Delegated failures pass through with
their original classification so callers can tell a malformed ballot
(ops.ErrBallotAlreadyCast, ops.ErrMismatchedReceipt and friends) from
a storage fault. The gateway's own vocabulary is limited to
workspace.ErrUnknownSession from resolution and ErrOperationTimeout
from the per-operation deadline.

# Concurrency

Each session's workspace is an independently locked resource: casts
against one session are serialized, reads run concurrently with each
other but never alongside an in-flight cast for the same session, and
different sessions never contend.
*/
package backend
