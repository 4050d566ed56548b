// Package rotation manages the ordered prefix list and the message counter
// that drives prefix selection. Prefixes rotate in blocks of three: messages
// 1-3 use the first prefix, 4-6 the second, wrapping around the list.
package rotation

import (
	"sync"

	apperrors "github.com/avenkat/caprelay/internal/errors"
)

// DefaultPrefix is used when the prefix list is empty
const DefaultPrefix = "/leech -n"

// BlockSize is the number of consecutive messages served by one prefix
const BlockSize = 3

// Rotator hands out prefixes round-robin in blocks of BlockSize messages.
// All methods are safe for concurrent use.
type Rotator struct {
	mu       sync.Mutex
	prefixes []string
	counter  uint64
}

// New creates a Rotator seeded with the given prefixes. The slice is
// copied; the caller keeps ownership of its argument.
func New(prefixes []string) *Rotator {
	r := &Rotator{}
	r.prefixes = append(r.prefixes, prefixes...)
	return r
}

// Next returns the prefix for the next message and advances the counter.
// Selection and increment happen atomically, so concurrent callers never
// observe the same counter value.
func (r *Rotator) Next() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := DefaultPrefix
	if len(r.prefixes) > 0 {
		index := (r.counter / BlockSize) % uint64(len(r.prefixes))
		prefix = r.prefixes[index]
	}
	r.counter++
	return prefix
}

// Peek returns the prefix the next call to Next would hand out, without
// advancing the counter.
func (r *Rotator) Peek() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.prefixes) == 0 {
		return DefaultPrefix
	}
	index := (r.counter / BlockSize) % uint64(len(r.prefixes))
	return r.prefixes[index]
}

// Add appends a prefix to the end of the list. Duplicates are rejected.
func (r *Rotator) Add(prefix string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.prefixes {
		if existing == prefix {
			return apperrors.DuplicatePrefixError(prefix)
		}
	}
	r.prefixes = append(r.prefixes, prefix)
	return nil
}

// Delete removes the prefix at the given index and returns the removed
// value. Indexes outside [0, len) are rejected and the list is unchanged.
func (r *Rotator) Delete(index int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.prefixes) {
		return "", apperrors.IndexRangeError(index, len(r.prefixes))
	}

	removed := r.prefixes[index]
	r.prefixes = append(r.prefixes[:index], r.prefixes[index+1:]...)
	return removed, nil
}

// List returns a copy of the current prefix list
func (r *Rotator) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.prefixes))
	copy(out, r.prefixes)
	return out
}

// Counter returns the number of prefixes handed out so far
func (r *Rotator) Counter() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counter
}

// Snapshot returns the prefix list and counter taken under one lock, so
// the pair is consistent even against concurrent Next calls. Used when
// persisting state.
func (r *Rotator) Snapshot() ([]string, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.prefixes))
	copy(out, r.prefixes)
	return out, r.counter
}

// Restore replaces the prefix list and counter in one step. Used when
// loading persisted state at startup.
func (r *Rotator) Restore(prefixes []string, counter uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prefixes = make([]string, len(prefixes))
	copy(r.prefixes, prefixes)
	r.counter = counter
}
