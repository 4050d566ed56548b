// Package forwarder replicates formatted captions to the configured dump
// destination with bounded retries. It owns the retry policy; the transport
// client stays a single-shot sender.
package forwarder

import (
	"context"
	"fmt"

	apperrors "github.com/avenkat/caprelay/internal/errors"
	"github.com/avenkat/caprelay/internal/logger"
	"github.com/avenkat/caprelay/internal/retry"
	"github.com/avenkat/caprelay/internal/stats"
)

// Sender delivers one message to a chat. Implemented by telegram.Client.
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// Result reports the outcome of one forwarding call
type Result struct {
	Delivered bool   `json:"delivered"`
	Attempts  int    `json:"attempts"`
	Detail    string `json:"detail"`
}

// Forwarder sends formatted captions to a dump destination. The stats
// sink may be nil.
type Forwarder struct {
	sender      Sender
	retryConfig retry.Config
	stats       *stats.Stats
}

// New creates a Forwarder
func New(sender Sender, retryConfig retry.Config, st *stats.Stats) *Forwarder {
	if retryConfig.MaxAttempts == 0 {
		retryConfig = retry.DefaultConfig()
	}
	return &Forwarder{
		sender:      sender,
		retryConfig: retryConfig,
		stats:       st,
	}
}

// Forward delivers text to dest. An empty dest is not an error: forwarding
// is simply not configured and the result says so with zero attempts.
//
// Destination errors (chat gone, bot ejected) are terminal and stop after
// the first attempt regardless of the retry budget; transient transport
// errors are retried with backoff until the budget runs out.
func (f *Forwarder) Forward(ctx context.Context, dest, text string) Result {
	if dest == "" {
		return Result{Delivered: false, Attempts: 0, Detail: "dump destination not configured"}
	}

	attempts, err := retry.Do(ctx, f.retryConfig, func() error {
		return f.sender.SendMessage(ctx, dest, text)
	}, apperrors.IsRetryable)

	if err == nil {
		f.recordForwarded()
		logger.AppLogger().WithFields(map[string]interface{}{
			"dest":     dest,
			"attempts": attempts,
		}).Debug("caption forwarded")
		return Result{Delivered: true, Attempts: attempts, Detail: "delivered"}
	}

	f.recordForwardFailed()
	logger.AppLogger().WithFields(map[string]interface{}{
		"dest":     dest,
		"attempts": attempts,
	}).Error("forwarding failed", err)

	detail := fmt.Sprintf("delivery failed after %d attempt(s): %v", attempts, err)
	if apperrors.IsTerminalForward(err) {
		detail = fmt.Sprintf("destination rejected: %v", err)
	}
	return Result{Delivered: false, Attempts: attempts, Detail: detail}
}

func (f *Forwarder) recordForwarded() {
	if f.stats != nil {
		f.stats.RecordForwarded()
	}
}

func (f *Forwarder) recordForwardFailed() {
	if f.stats != nil {
		f.stats.RecordForwardFailed()
	}
}
