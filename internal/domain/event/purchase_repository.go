package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseView is a denormalized purchase row for listing in the scanner
// screen, joined with buyer and item names.
type PurchaseView struct {
	ID        uuid.UUID       `json:"id"`
	BuyerName string          `json:"buyer"`
	ItemName  string          `json:"item"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Notes     string          `json:"notes"`
	Timestamp time.Time       `json:"time"`
	IsManual  bool            `json:"manual"`
}

// ReportRow is one purchase line of an event report, ordered by buyer
// name and then purchase time.
type ReportRow struct {
	BuyerName    string
	ItemName     string
	Price        decimal.Decimal
	IsUniqueItem bool
	Timestamp    time.Time
}

// EventSummary aggregates purchases of one event
type EventSummary struct {
	PurchaseCount int64
	TotalPledged  decimal.Decimal
}

// PurchaseRepository defines the interface for purchase persistence
type PurchaseRepository interface {
	// FindByID finds a purchase by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)

	// FindByEvent returns all purchases of an event ascending by timestamp
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]Purchase, error)

	// ListViews returns the joined purchase views of an event ascending
	// by timestamp
	ListViews(ctx context.Context, eventID uuid.UUID) ([]PurchaseView, error)

	// ListReportRows returns the report rows of an event ordered by buyer
	// name, then timestamp
	ListReportRows(ctx context.Context, eventID uuid.UUID) ([]ReportRow, error)

	// FindFirstForItem returns the earliest purchase of the given item at
	// the given event, or shared.ErrNotFound
	FindFirstForItem(ctx context.Context, eventID, itemID uuid.UUID) (*Purchase, error)

	// ExistsForItemByOtherBuyer reports whether any purchase of the item
	// at the event belongs to a buyer other than the given one
	ExistsForItemByOtherBuyer(ctx context.Context, eventID, itemID, buyerID uuid.UUID) (bool, error)

	// Save creates a purchase; scan-path purchases are append-only
	Save(ctx context.Context, purchase *Purchase) error

	// Delete deletes a purchase
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByBuyer counts purchases referencing a buyer across all events
	CountByBuyer(ctx context.Context, buyerID uuid.UUID) (int64, error)

	// CountByItem counts purchases referencing an item across all events
	CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error)

	// Summarize returns purchase count and pledged total for an event
	Summarize(ctx context.Context, eventID uuid.UUID) (EventSummary, error)
}
