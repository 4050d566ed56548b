package forwarder

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/avenkat/caprelay/internal/errors"
	"github.com/avenkat/caprelay/internal/retry"
	"github.com/avenkat/caprelay/internal/stats"
)

type fakeSender struct {
	calls int
	errs  []error
}

func (s *fakeSender) SendMessage(ctx context.Context, chatID, text string) error {
	s.calls++
	if s.calls <= len(s.errs) {
		return s.errs[s.calls-1]
	}
	return nil
}

func fastRetry(maxAttempts int) retry.Config {
	return retry.Config{
		MaxAttempts:       maxAttempts,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestForwardSuccess(t *testing.T) {
	sender := &fakeSender{}
	st := stats.New()
	f := New(sender, fastRetry(3), st)

	result := f.Forward(context.Background(), "@dump", "hello")

	if !result.Delivered {
		t.Errorf("expected delivered, got %+v", result)
	}
	if result.Attempts != 1 {
		t.Errorf("attempts = %d, want 1", result.Attempts)
	}
	if snap := st.Snapshot(); snap.Forwarded != 1 || snap.ForwardFailed != 0 {
		t.Errorf("stats = %+v", snap)
	}
}

func TestForwardEmptyDestination(t *testing.T) {
	sender := &fakeSender{}
	f := New(sender, fastRetry(3), nil)

	result := f.Forward(context.Background(), "", "hello")

	if result.Delivered {
		t.Error("expected not delivered")
	}
	if result.Attempts != 0 {
		t.Errorf("attempts = %d, want 0", result.Attempts)
	}
	if sender.calls != 0 {
		t.Errorf("sender called %d times, want 0", sender.calls)
	}
}

func TestForwardRetriesTransientErrors(t *testing.T) {
	sender := &fakeSender{errs: []error{
		apperrors.TransportError("flood control", errors.New("retry after 5")),
		apperrors.TransportError("flood control", errors.New("retry after 5")),
	}}
	f := New(sender, fastRetry(3), nil)

	result := f.Forward(context.Background(), "@dump", "hello")

	if !result.Delivered {
		t.Errorf("expected delivered after retries, got %+v", result)
	}
	if result.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", result.Attempts)
	}
}

func TestForwardStopsOnTerminalError(t *testing.T) {
	sender := &fakeSender{errs: []error{
		apperrors.TargetNotFoundError("@gone", errors.New("chat not found")),
	}}
	st := stats.New()
	f := New(sender, fastRetry(5), st)

	result := f.Forward(context.Background(), "@gone", "hello")

	if result.Delivered {
		t.Error("expected delivery failure")
	}
	if result.Attempts != 1 {
		t.Errorf("attempts = %d, want exactly 1 for a dead destination", result.Attempts)
	}
	if sender.calls != 1 {
		t.Errorf("sender called %d times, want 1", sender.calls)
	}
	if snap := st.Snapshot(); snap.ForwardFailed != 1 {
		t.Errorf("stats = %+v", snap)
	}
}

func TestForwardExhaustsRetryBudget(t *testing.T) {
	transient := apperrors.TransportError("unavailable", errors.New("status 502"))
	sender := &fakeSender{errs: []error{transient, transient, transient}}
	f := New(sender, fastRetry(3), nil)

	result := f.Forward(context.Background(), "@dump", "hello")

	if result.Delivered {
		t.Error("expected delivery failure")
	}
	if result.Attempts != 3 {
		t.Errorf("attempts = %d, want 3", result.Attempts)
	}
	if result.Detail == "" {
		t.Error("expected a failure detail")
	}
}
