// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import "sync"

// sessionLocks hands out one RWMutex per session guid. Casting takes
// the write side so two casts against the same workspace can never
// interleave; blank-ballot reads, verification, and tallies share the
// read side. Different sessions never contend.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.RWMutex)}
}

// get returns the lock for one guid, creating it on first use. Locks
// live for the process lifetime; sessions are never torn down.
func (s *sessionLocks) get(guid string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[guid]
	if !ok {
		lock = &sync.RWMutex{}
		s.locks[guid] = lock
	}
	return lock
}
