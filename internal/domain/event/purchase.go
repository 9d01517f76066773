package event

import (
	"strings"
	"time"

	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase records one sale: a buyer claimed an item at an event for a
// pledge amount. Rows are append-only; corrections happen by deleting
// the row and re-scanning. Prices are nominal pledges, not settled money.
type Purchase struct {
	shared.BaseEntity
	EventID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	BuyerID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity         int             `gorm:"not null;default:1"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Timestamp        time.Time       `gorm:"not null;index"`
	IsManualEntry    bool            `gorm:"not null;default:false"`
	ManualEntryNotes string          `gorm:"type:varchar(300)"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewScannedPurchase creates a purchase originating from the scanner.
// Quantity is always 1 for scanned purchases.
func NewScannedPurchase(eventID, buyerID, itemID uuid.UUID, totalPrice decimal.Decimal) (*Purchase, error) {
	if err := validatePrice(totalPrice); err != nil {
		return nil, err
	}

	return &Purchase{
		BaseEntity: shared.NewBaseEntity(),
		EventID:    eventID,
		BuyerID:    buyerID,
		ItemID:     itemID,
		Quantity:   1,
		TotalPrice: totalPrice,
		Timestamp:  time.Now(),
	}, nil
}

// NewManualPurchase creates a purchase entered through the manual form
func NewManualPurchase(eventID, buyerID, itemID uuid.UUID, totalPrice decimal.Decimal, quantity int, notes string) (*Purchase, error) {
	if err := validatePrice(totalPrice); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	notes = strings.TrimSpace(notes)
	if len(notes) > 300 {
		return nil, shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 300 characters")
	}

	return &Purchase{
		BaseEntity:       shared.NewBaseEntity(),
		EventID:          eventID,
		BuyerID:          buyerID,
		ItemID:           itemID,
		Quantity:         quantity,
		TotalPrice:       totalPrice,
		Timestamp:        time.Now(),
		IsManualEntry:    true,
		ManualEntryNotes: notes,
	}, nil
}

// BelongsToEvent reports whether the purchase was made at the given event
func (p *Purchase) BelongsToEvent(eventID uuid.UUID) bool {
	return p.EventID == eventID
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return nil
}
