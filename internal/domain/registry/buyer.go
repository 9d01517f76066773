package registry

import (
	"strings"
	"time"

	"github.com/gabbai/backend/internal/domain/shared"
)

// Buyer barcode IDs are generated as "B" + sequence, starting here
// when no buyer exists yet.
const BuyerBarcodeStart = 1001

// BuyerBarcodePrefix is the single-letter prefix of generated buyer barcodes
const BuyerBarcodePrefix = "B"

// Buyer represents a congregant who can be scanned as the purchaser
// during an event. The BarcodeID is what gets printed on the buyer's card.
type Buyer struct {
	shared.BaseEntity
	Name      string `gorm:"type:varchar(120);not null"`
	BarcodeID string `gorm:"type:varchar(50);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Buyer) TableName() string {
	return "buyers"
}

// NewBuyer creates a new buyer with the given name and barcode ID
func NewBuyer(name, barcodeID string) (*Buyer, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateBarcodeID(barcodeID); err != nil {
		return nil, err
	}

	return &Buyer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		BarcodeID:  strings.TrimSpace(barcodeID),
	}, nil
}

// Update updates the buyer's name and barcode ID
func (b *Buyer) Update(name, barcodeID string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateBarcodeID(barcodeID); err != nil {
		return err
	}

	b.Name = strings.TrimSpace(name)
	b.BarcodeID = strings.TrimSpace(barcodeID)
	b.UpdatedAt = time.Now()
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 120 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 120 characters")
	}
	return nil
}

func validateBarcodeID(barcodeID string) error {
	barcodeID = strings.TrimSpace(barcodeID)
	if barcodeID == "" {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode ID cannot be empty")
	}
	if len(barcodeID) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode ID cannot exceed 50 characters")
	}
	return nil
}
