// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package router wires the HTTP routes for the session gateway API.
//
// Routing uses the standard library mux with method-qualified patterns.
// Every API route is wrapped in request logging; CORS is applied once
// around the whole mux by the caller.
package router
