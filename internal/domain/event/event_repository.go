package event

import (
	"context"

	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EventRepository defines the interface for event persistence
type EventRepository interface {
	// FindByID finds an event by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)

	// FindAll returns events matching the filter, newest first by default
	FindAll(ctx context.Context, filter shared.Filter) ([]Event, error)

	// FindRecent returns the most recent events up to the given limit
	FindRecent(ctx context.Context, limit int) ([]Event, error)

	// Save creates or updates an event
	Save(ctx context.Context, event *Event) error

	// Delete deletes an event together with its purchases
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts events matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
