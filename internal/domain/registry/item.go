package registry

import (
	"strings"
	"time"

	"github.com/gabbai/backend/internal/domain/shared"
)

// Item barcode IDs are generated as "I" + sequence, starting here
// when no item exists yet.
const ItemBarcodeStart = 5001

// ItemBarcodePrefix is the single-letter prefix of generated item barcodes
const ItemBarcodePrefix = "I"

// Item represents something that can be purchased at an event: an honor,
// an aliyah, a sponsorship slot. Unique items (specific honors) should be
// sold to at most one buyer per event.
type Item struct {
	shared.BaseEntity
	Name      string `gorm:"type:varchar(120);not null"`
	BarcodeID string `gorm:"type:varchar(50);not null;uniqueIndex"`
	IsUnique  bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new item
func NewItem(name, barcodeID string, isUnique bool) (*Item, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateBarcodeID(barcodeID); err != nil {
		return nil, err
	}

	return &Item{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		BarcodeID:  strings.TrimSpace(barcodeID),
		IsUnique:   isUnique,
	}, nil
}

// Update updates the item's fields
func (i *Item) Update(name, barcodeID string, isUnique bool) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateBarcodeID(barcodeID); err != nil {
		return err
	}

	i.Name = strings.TrimSpace(name)
	i.BarcodeID = strings.TrimSpace(barcodeID)
	i.IsUnique = isUnique
	i.UpdatedAt = time.Now()
	return nil
}
