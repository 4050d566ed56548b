// Package stats tracks runtime counters for the caption pipeline.
package stats

import (
	"sync"
	"time"
)

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	Processed     uint64        `json:"processed"`
	Formatted     uint64        `json:"formatted"`
	Forwarded     uint64        `json:"forwarded"`
	ForwardFailed uint64        `json:"forward_failed"`
	Uptime        time.Duration `json:"uptime"`
}

// Stats accumulates pipeline counters. All methods are safe for
// concurrent use.
type Stats struct {
	mu            sync.Mutex
	processed     uint64
	formatted     uint64
	forwarded     uint64
	forwardFailed uint64
	startedAt     time.Time
}

// New returns Stats with the uptime clock started
func New() *Stats {
	return &Stats{startedAt: time.Now()}
}

// RecordProcessed counts a caption that entered the pipeline
func (s *Stats) RecordProcessed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed++
}

// RecordFormatted counts a caption that produced output
func (s *Stats) RecordFormatted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formatted++
}

// RecordForwarded counts a successful delivery to the dump target
func (s *Stats) RecordForwarded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forwarded++
}

// RecordForwardFailed counts a delivery that exhausted its retries
func (s *Stats) RecordForwardFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forwardFailed++
}

// Snapshot returns a copy of the current counters
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Processed:     s.processed,
		Formatted:     s.formatted,
		Forwarded:     s.forwarded,
		ForwardFailed: s.forwardFailed,
		Uptime:        time.Since(s.startedAt),
	}
}
