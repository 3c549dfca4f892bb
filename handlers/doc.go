// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers contains the HTTP handlers for the session gateway API.
//
// Handlers are thin: each one extracts the session guid from the URL,
// decodes the request body, and delegates to the backend gateway. Backend
// errors are translated to HTTP status codes in one place so every
// endpoint reports unknown sessions, timeouts, and ballot errors the
// same way.
package handlers
