package persistence

import (
	"context"
	"errors"

	"github.com/gabbai/backend/internal/domain/registry"
	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Item, error) {
	var item registry.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByBarcodeID finds an item by its barcode ID
func (r *GormItemRepository) FindByBarcodeID(ctx context.Context, barcodeID string) (*registry.Item, error) {
	var item registry.Item
	if err := r.db.WithContext(ctx).First(&item, "barcode_id = ?", barcodeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByName finds an item by name, case-insensitive
func (r *GormItemRepository) FindByName(ctx context.Context, name string) (*registry.Item, error) {
	var item registry.Item
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll returns all items ordered by name
func (r *GormItemRepository) FindAll(ctx context.Context) ([]registry.Item, error) {
	var items []registry.Item
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *registry.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete deletes an item
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&registry.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByBarcodeID checks whether a barcode ID is taken
func (r *GormItemRepository) ExistsByBarcodeID(ctx context.Context, barcodeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&registry.Item{}).
		Where("barcode_id = ?", barcodeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextBarcodeID returns the next free generated barcode ID for the prefix
func (r *GormItemRepository) NextBarcodeID(ctx context.Context, prefix string, start int) (string, error) {
	return nextBarcodeID(ctx, r.db, "items", prefix, start)
}

// Ensure GormItemRepository implements ItemRepository
var _ registry.ItemRepository = (*GormItemRepository)(nil)
