// Package site holds process-wide presentation state shared by handlers.
package site

import "sync"

// State is the mutable UI state of a running server. The zero value is ready
// to use. It replaces global flags so each server, and each test, owns its
// own copy.
type State struct {
	mu        sync.RWMutex
	supernova bool
}

// Supernova reports whether the supernova theme is on.
func (s *State) Supernova() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.supernova
}

// SetSupernova switches the supernova theme.
func (s *State) SetSupernova(on bool) {
	s.mu.Lock()
	s.supernova = on
	s.mu.Unlock()
}

// Toggle flips the supernova theme and returns the new value.
func (s *State) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.supernova = !s.supernova
	return s.supernova
}
