package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gabbai/backend/internal/domain/event"
	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEventRepository implements EventRepository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// FindByID finds an event by its ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	var ev event.Event
	if err := r.db.WithContext(ctx).First(&ev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// FindAll returns events matching the filter, newest first by default
func (r *GormEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]event.Event, error) {
	var events []event.Event
	query := r.applyFilter(r.db.WithContext(ctx).Model(&event.Event{}), filter)
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindRecent returns the most recent events up to the given limit
func (r *GormEventRepository) FindRecent(ctx context.Context, limit int) ([]event.Event, error) {
	var events []event.Event
	if err := r.db.WithContext(ctx).
		Order("gregorian_date DESC, created_at DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Save creates or updates an event
func (r *GormEventRepository) Save(ctx context.Context, ev *event.Event) error {
	return r.db.WithContext(ctx).Save(ev).Error
}

// Delete deletes an event together with its purchases
func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&event.Purchase{}, "event_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&event.Event{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts events matching the filter
func (r *GormEventRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&event.Event{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies search, ordering and pagination to the query
func (r *GormEventRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("gregorian_date DESC, created_at DESC")
	}

	return query
}

func (r *GormEventRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(details) LIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormEventRepository implements EventRepository
var _ event.EventRepository = (*GormEventRepository)(nil)
