package registry

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByBarcodeID finds an item by its barcode ID
	FindByBarcodeID(ctx context.Context, barcodeID string) (*Item, error)

	// FindByName finds an item by name (case-insensitive)
	FindByName(ctx context.Context, name string) (*Item, error)

	// FindAll returns all items ordered by name
	FindAll(ctx context.Context) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// Delete deletes an item
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByBarcodeID checks whether a barcode ID is taken
	ExistsByBarcodeID(ctx context.Context, barcodeID string) (bool, error)

	// NextBarcodeID returns the next free generated barcode ID for the
	// given prefix, e.g. I5009 when the highest existing is I5008
	NextBarcodeID(ctx context.Context, prefix string, start int) (string, error)
}
