package session

import (
	"context"
	"sync"
	"time"

	"github.com/gabbai/backend/internal/domain/scanning"
)

// entry represents a stored session state with expiration
type entry struct {
	state     scanning.SessionState
	expiresAt time.Time
}

// InMemoryStateStore implements StateStore using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryStateStore struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryStateStore creates a new in-memory scan state store.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryStateStore() *InMemoryStateStore {
	store := &InMemoryStateStore{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Get loads the session state of an operator
func (s *InMemoryStateStore) Get(ctx context.Context, operatorID string) (scanning.SessionState, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[operatorID]
	if !exists || time.Now().After(e.expiresAt) {
		return scanning.SessionState{}, false, nil
	}
	return e.state, true, nil
}

// Put stores the session state of an operator with a TTL
func (s *InMemoryStateStore) Put(ctx context.Context, operatorID string, state scanning.SessionState, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[operatorID] = entry{
		state:     state,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes the session state of an operator
func (s *InMemoryStateStore) Delete(ctx context.Context, operatorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, operatorID)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryStateStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (s *InMemoryStateStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stopChan:
			return
		}
	}
}

func (s *InMemoryStateStore) removeExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for operatorID, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, operatorID)
		}
	}
}

// Ensure InMemoryStateStore implements StateStore
var _ scanning.StateStore = (*InMemoryStateStore)(nil)
