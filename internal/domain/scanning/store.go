package scanning

import (
	"context"
	"time"
)

// StateStore persists per-operator scan session state between scans.
// Implementations must treat a missing session as (zero state, false, nil).
type StateStore interface {
	// Get loads the session state of an operator
	Get(ctx context.Context, operatorID string) (SessionState, bool, error)

	// Put stores the session state of an operator with a TTL
	Put(ctx context.Context, operatorID string, state SessionState, ttl time.Duration) error

	// Delete removes the session state of an operator
	Delete(ctx context.Context, operatorID string) error

	// Close releases resources held by the store
	Close() error
}
