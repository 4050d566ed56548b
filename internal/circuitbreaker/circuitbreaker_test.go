package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

func TestClosedAllowsRequests(t *testing.T) {
	cb := New(DefaultConfig())

	err := cb.Execute(func() error { return nil })
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("expected closed state, got %s", cb.State())
	}
}

func TestOpensAfterMaxFailures(t *testing.T) {
	cb := New(Config{MaxFailures: 3, Cooldown: time.Minute})
	sendErr := errors.New("send failed")

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return sendErr })
	}

	if cb.State() != StateOpen {
		t.Fatalf("expected open state after 3 failures, got %s", cb.State())
	}

	err := cb.Execute(func() error {
		t.Fatal("function should not run while open")
		return nil
	})
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
}

func TestHalfOpenProbeRecovers(t *testing.T) {
	cb := New(Config{MaxFailures: 1, Cooldown: time.Millisecond})

	_ = cb.Execute(func() error { return errors.New("boom") })
	if cb.State() != StateOpen {
		t.Fatalf("expected open state, got %s", cb.State())
	}

	time.Sleep(5 * time.Millisecond)

	// Probe succeeds, circuit closes again
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Errorf("expected probe to run, got %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("expected closed state after successful probe, got %s", cb.State())
	}
}

func TestHalfOpenProbeFailureReopens(t *testing.T) {
	cb := New(Config{MaxFailures: 1, Cooldown: time.Millisecond})

	_ = cb.Execute(func() error { return errors.New("boom") })
	time.Sleep(5 * time.Millisecond)

	_ = cb.Execute(func() error { return errors.New("still down") })
	if cb.State() != StateOpen {
		t.Errorf("expected reopened state after failed probe, got %s", cb.State())
	}
}

func TestReset(t *testing.T) {
	cb := New(Config{MaxFailures: 1, Cooldown: time.Minute})

	_ = cb.Execute(func() error { return errors.New("boom") })
	if cb.State() != StateOpen {
		t.Fatalf("expected open state, got %s", cb.State())
	}

	cb.Reset()
	if cb.State() != StateClosed {
		t.Errorf("expected closed state after reset, got %s", cb.State())
	}
	if cb.Failures() != 0 {
		t.Errorf("expected failures reset, got %d", cb.Failures())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateClosed, "closed"},
		{StateOpen, "open"},
		{StateHalfOpen, "half-open"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}
