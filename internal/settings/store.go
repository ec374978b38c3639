// Package settings holds the single shared AppSettings instance. The
// sampling loop and command handlers read it concurrently; settings-update
// commands replace it as a whole.
package settings

import (
	"sync"

	"github.com/vitalis-app/cputray/internal/models"
)

// Store is a lock-guarded AppSettings value. Readers always observe a
// complete value from before or after any write.
type Store struct {
	mu      sync.RWMutex
	current models.AppSettings
	changed chan struct{}
}

// NewStore creates a store holding initial, normalized.
func NewStore(initial models.AppSettings) *Store {
	initial, _ = initial.Normalize()
	return &Store{
		current: initial,
		changed: make(chan struct{}, 1),
	}
}

// Read returns a copy of the current settings.
func (s *Store) Read() models.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Write replaces the settings. Out-of-range fields are replaced by their
// defaults; the names of those fields are returned.
func (s *Store) Write(next models.AppSettings) []string {
	next, fixed := next.Normalize()

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	select {
	case s.changed <- struct{}{}:
	default:
	}
	return fixed
}

// Changed fires after one or more writes. Bursts of writes coalesce into
// a single notification.
func (s *Store) Changed() <-chan struct{} {
	return s.changed
}
