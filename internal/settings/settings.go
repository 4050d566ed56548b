// Package settings holds the mutable bot settings that commands change at
// runtime: the fixed title override and the dump target.
package settings

import "sync"

// Settings is a concurrency-safe holder for runtime settings. A zero value
// is ready to use: no fixed name, no dump target.
type Settings struct {
	mu         sync.RWMutex
	fixedName  string
	dumpTarget string
}

// New returns Settings seeded with the given values
func New(fixedName, dumpTarget string) *Settings {
	return &Settings{fixedName: fixedName, dumpTarget: dumpTarget}
}

// FixedName returns the title override, or "" when none is set
func (s *Settings) FixedName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fixedName
}

// SetFixedName sets the title override. An empty string clears it.
func (s *Settings) SetFixedName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixedName = name
}

// DumpTarget returns the forwarding destination, or "" when none is set
func (s *Settings) DumpTarget() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dumpTarget
}

// SetDumpTarget sets the forwarding destination. An empty string clears it.
func (s *Settings) SetDumpTarget(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dumpTarget = target
}
