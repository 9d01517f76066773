package persistence

import (
	"context"
	"errors"

	"github.com/gabbai/backend/internal/domain/event"
	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Purchase, error) {
	var purchase event.Purchase
	if err := r.db.WithContext(ctx).First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByEvent returns all purchases of an event ascending by timestamp
func (r *GormPurchaseRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]event.Purchase, error) {
	var purchases []event.Purchase
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("timestamp ASC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// ListViews returns the joined purchase views of an event ascending by timestamp
func (r *GormPurchaseRepository) ListViews(ctx context.Context, eventID uuid.UUID) ([]event.PurchaseView, error) {
	var views []event.PurchaseView
	if err := r.db.WithContext(ctx).
		Table("purchases").
		Select(`purchases.id,
			buyers.name AS buyer_name,
			items.name AS item_name,
			purchases.total_price AS price,
			purchases.quantity,
			purchases.manual_entry_notes AS notes,
			purchases.timestamp,
			purchases.is_manual_entry AS is_manual`).
		Joins("JOIN buyers ON buyers.id = purchases.buyer_id").
		Joins("JOIN items ON items.id = purchases.item_id").
		Where("purchases.event_id = ?", eventID).
		Order("purchases.timestamp ASC").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// ListReportRows returns the report rows of an event ordered by buyer name,
// then timestamp
func (r *GormPurchaseRepository) ListReportRows(ctx context.Context, eventID uuid.UUID) ([]event.ReportRow, error) {
	var rows []event.ReportRow
	if err := r.db.WithContext(ctx).
		Table("purchases").
		Select(`buyers.name AS buyer_name,
			items.name AS item_name,
			purchases.total_price AS price,
			items.is_unique AS is_unique_item,
			purchases.timestamp`).
		Joins("JOIN buyers ON buyers.id = purchases.buyer_id").
		Joins("JOIN items ON items.id = purchases.item_id").
		Where("purchases.event_id = ?", eventID).
		Order("buyers.name ASC, purchases.timestamp ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindFirstForItem returns the earliest purchase of the given item at the event
func (r *GormPurchaseRepository) FindFirstForItem(ctx context.Context, eventID, itemID uuid.UUID) (*event.Purchase, error) {
	var purchase event.Purchase
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND item_id = ?", eventID, itemID).
		Order("timestamp ASC").
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// ExistsForItemByOtherBuyer reports whether any purchase of the item at the
// event belongs to a buyer other than the given one
func (r *GormPurchaseRepository) ExistsForItemByOtherBuyer(ctx context.Context, eventID, itemID, buyerID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&event.Purchase{}).
		Where("event_id = ? AND item_id = ? AND buyer_id <> ?", eventID, itemID, buyerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates a purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *event.Purchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

// Delete deletes a purchase
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&event.Purchase{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByBuyer counts purchases referencing a buyer across all events
func (r *GormPurchaseRepository) CountByBuyer(ctx context.Context, buyerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&event.Purchase{}).
		Where("buyer_id = ?", buyerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByItem counts purchases referencing an item across all events
func (r *GormPurchaseRepository) CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&event.Purchase{}).
		Where("item_id = ?", itemID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Summarize returns purchase count and pledged total for an event
func (r *GormPurchaseRepository) Summarize(ctx context.Context, eventID uuid.UUID) (event.EventSummary, error) {
	var row struct {
		PurchaseCount int64
		TotalPledged  decimal.NullDecimal
	}
	if err := r.db.WithContext(ctx).
		Model(&event.Purchase{}).
		Select("COUNT(*) AS purchase_count, SUM(total_price) AS total_pledged").
		Where("event_id = ?", eventID).
		Scan(&row).Error; err != nil {
		return event.EventSummary{}, err
	}

	summary := event.EventSummary{
		PurchaseCount: row.PurchaseCount,
		TotalPledged:  decimal.Zero,
	}
	if row.TotalPledged.Valid {
		summary.TotalPledged = row.TotalPledged.Decimal
	}
	return summary, nil
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ event.PurchaseRepository = (*GormPurchaseRepository)(nil)
