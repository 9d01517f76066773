package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gabbai/backend/internal/domain/registry"
	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBuyerRepository implements BuyerRepository using GORM
type GormBuyerRepository struct {
	db *gorm.DB
}

// NewGormBuyerRepository creates a new GormBuyerRepository
func NewGormBuyerRepository(db *gorm.DB) *GormBuyerRepository {
	return &GormBuyerRepository{db: db}
}

// FindByID finds a buyer by its ID
func (r *GormBuyerRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Buyer, error) {
	var buyer registry.Buyer
	if err := r.db.WithContext(ctx).First(&buyer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &buyer, nil
}

// FindByBarcodeID finds a buyer by its barcode ID
func (r *GormBuyerRepository) FindByBarcodeID(ctx context.Context, barcodeID string) (*registry.Buyer, error) {
	var buyer registry.Buyer
	if err := r.db.WithContext(ctx).First(&buyer, "barcode_id = ?", barcodeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &buyer, nil
}

// FindByName finds a buyer by name, case-insensitive
func (r *GormBuyerRepository) FindByName(ctx context.Context, name string) (*registry.Buyer, error) {
	var buyer registry.Buyer
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&buyer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &buyer, nil
}

// FindAll returns all buyers ordered by name
func (r *GormBuyerRepository) FindAll(ctx context.Context) ([]registry.Buyer, error) {
	var buyers []registry.Buyer
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&buyers).Error; err != nil {
		return nil, err
	}
	return buyers, nil
}

// Save creates or updates a buyer
func (r *GormBuyerRepository) Save(ctx context.Context, buyer *registry.Buyer) error {
	return r.db.WithContext(ctx).Save(buyer).Error
}

// Delete deletes a buyer
func (r *GormBuyerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&registry.Buyer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByBarcodeID checks whether a barcode ID is taken
func (r *GormBuyerRepository) ExistsByBarcodeID(ctx context.Context, barcodeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&registry.Buyer{}).
		Where("barcode_id = ?", barcodeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextBarcodeID returns the next free generated barcode ID for the prefix.
// Manually assigned barcodes that do not follow the prefix+number pattern
// are excluded from the scan.
func (r *GormBuyerRepository) NextBarcodeID(ctx context.Context, prefix string, start int) (string, error) {
	return nextBarcodeID(ctx, r.db, "buyers", prefix, start)
}

// nextBarcodeID computes max(numeric suffix)+1 over generated barcodes in
// the given table. The suffix parse happens in Go because manually assigned
// barcodes may share the prefix without a numeric tail.
func nextBarcodeID(ctx context.Context, db *gorm.DB, table, prefix string, start int) (string, error) {
	var barcodes []string
	if err := db.WithContext(ctx).
		Table(table).
		Where("barcode_id LIKE ?", prefix+"%").
		Pluck("barcode_id", &barcodes).Error; err != nil {
		return "", err
	}

	maxSuffix := start - 1
	for _, barcode := range barcodes {
		suffix, err := strconv.Atoi(barcode[len(prefix):])
		if err != nil {
			continue
		}
		if suffix > maxSuffix {
			maxSuffix = suffix
		}
	}
	return fmt.Sprintf("%s%d", prefix, maxSuffix+1), nil
}

// Ensure GormBuyerRepository implements BuyerRepository
var _ registry.BuyerRepository = (*GormBuyerRepository)(nil)
