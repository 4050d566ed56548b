// Package shutdown coordinates graceful teardown: the HTTP server drains,
// the final state snapshot is saved, and the database closes, in reverse
// registration order.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/avenkat/caprelay/internal/logger"
)

// Hook is one named teardown step
type Hook struct {
	Name string
	Fn   func(context.Context) error
}

// Handler collects teardown hooks and runs them when a signal arrives.
// Hooks run sequentially in reverse registration order, so the last
// subsystem brought up is the first torn down.
type Handler struct {
	mu      sync.Mutex
	hooks   []Hook
	timeout time.Duration
	done    bool
}

// New creates a shutdown handler with the given overall timeout
func New(timeout time.Duration) *Handler {
	return &Handler{timeout: timeout}
}

// Register adds a teardown hook
func (h *Handler) Register(name string, fn func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, Hook{Name: name, Fn: fn})
}

// Wait blocks until SIGINT or SIGTERM, then runs the hooks
func (h *Handler) Wait() error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.AppLogger().Info("shutdown signal received")
	return h.Shutdown()
}

// Shutdown runs all hooks in reverse order under the handler timeout.
// It is safe to call more than once; later calls are no-ops. The first
// hook error is returned after all hooks have run.
func (h *Handler) Shutdown() error {
	h.mu.Lock()
	if h.done {
		h.mu.Unlock()
		return nil
	}
	h.done = true
	hooks := make([]Hook, len(h.hooks))
	copy(hooks, h.hooks)
	h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	var firstErr error
	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]

		if err := ctx.Err(); err != nil {
			logger.AppLogger().Error("shutdown timeout exceeded", err)
			if firstErr == nil {
				firstErr = err
			}
			break
		}

		if err := hook.Fn(ctx); err != nil {
			logger.AppLogger().WithFields(map[string]interface{}{
				"hook": hook.Name,
			}).Error("shutdown hook failed", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		logger.AppLogger().WithFields(map[string]interface{}{
			"hook": hook.Name,
		}).Debug("shutdown hook completed")
	}

	return firstErr
}
