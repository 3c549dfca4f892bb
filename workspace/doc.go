// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package workspace maps session guids to isolated ElectionData
workspaces on disk.

Each voting session owns exactly one workspace for its entire
lifetime. Workspaces live under <root>/guids/, sharded by the first
two characters of the guid:

	<root>/guids/01/d963fd74100ee3f36428740a8efd8afd781839/

Provision creates a new workspace per call (never idempotent, guids
are never reused), Resolve maps an issued guid back to its path and
fails with ErrUnknownSession for anything else, and List enumerates
every known workspace with eventual-consistency semantics under
concurrent provisioning.

Workspace teardown is deliberately absent - retention and deletion
are deployment concerns, not session concerns.
*/
package workspace
