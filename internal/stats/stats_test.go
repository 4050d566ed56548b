package stats

import (
	"sync"
	"testing"
)

func TestCounters(t *testing.T) {
	s := New()

	s.RecordProcessed()
	s.RecordProcessed()
	s.RecordFormatted()
	s.RecordForwarded()
	s.RecordForwardFailed()

	snap := s.Snapshot()

	if snap.Processed != 2 {
		t.Errorf("processed = %d, want 2", snap.Processed)
	}
	if snap.Formatted != 1 {
		t.Errorf("formatted = %d, want 1", snap.Formatted)
	}
	if snap.Forwarded != 1 {
		t.Errorf("forwarded = %d, want 1", snap.Forwarded)
	}
	if snap.ForwardFailed != 1 {
		t.Errorf("forward failed = %d, want 1", snap.ForwardFailed)
	}
	if snap.Uptime < 0 {
		t.Errorf("uptime = %v, want non-negative", snap.Uptime)
	}
}

func TestConcurrentRecording(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordProcessed()
		}()
	}
	wg.Wait()

	if snap := s.Snapshot(); snap.Processed != 100 {
		t.Errorf("processed = %d, want 100", snap.Processed)
	}
}
