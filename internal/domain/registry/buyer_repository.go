package registry

import (
	"context"

	"github.com/google/uuid"
)

// BuyerRepository defines the interface for buyer persistence
type BuyerRepository interface {
	// FindByID finds a buyer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Buyer, error)

	// FindByBarcodeID finds a buyer by its barcode ID
	FindByBarcodeID(ctx context.Context, barcodeID string) (*Buyer, error)

	// FindByName finds a buyer by name (case-insensitive)
	FindByName(ctx context.Context, name string) (*Buyer, error)

	// FindAll returns all buyers ordered by name
	FindAll(ctx context.Context) ([]Buyer, error)

	// Save creates or updates a buyer
	Save(ctx context.Context, buyer *Buyer) error

	// Delete deletes a buyer
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByBarcodeID checks whether a barcode ID is taken
	ExistsByBarcodeID(ctx context.Context, barcodeID string) (bool, error)

	// NextBarcodeID returns the next free generated barcode ID for the
	// given prefix, e.g. B1042 when the highest existing is B1041
	NextBarcodeID(ctx context.Context, prefix string, start int) (string, error)
}
