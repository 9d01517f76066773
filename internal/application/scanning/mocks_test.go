package scanning

import (
	"context"

	"github.com/gabbai/backend/internal/domain/event"
	"github.com/gabbai/backend/internal/domain/registry"
	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockBuyerRepository is a mock implementation of BuyerRepository
type MockBuyerRepository struct {
	mock.Mock
}

func (m *MockBuyerRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Buyer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) FindByBarcodeID(ctx context.Context, barcodeID string) (*registry.Buyer, error) {
	args := m.Called(ctx, barcodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) FindByName(ctx context.Context, name string) (*registry.Buyer, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) FindAll(ctx context.Context) ([]registry.Buyer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registry.Buyer), args.Error(1)
}

func (m *MockBuyerRepository) Save(ctx context.Context, buyer *registry.Buyer) error {
	args := m.Called(ctx, buyer)
	return args.Error(0)
}

func (m *MockBuyerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBuyerRepository) ExistsByBarcodeID(ctx context.Context, barcodeID string) (bool, error) {
	args := m.Called(ctx, barcodeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBuyerRepository) NextBarcodeID(ctx context.Context, prefix string, start int) (string, error) {
	args := m.Called(ctx, prefix, start)
	return args.String(0), args.Error(1)
}

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*registry.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Item), args.Error(1)
}

func (m *MockItemRepository) FindByBarcodeID(ctx context.Context, barcodeID string) (*registry.Item, error) {
	args := m.Called(ctx, barcodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Item), args.Error(1)
}

func (m *MockItemRepository) FindByName(ctx context.Context, name string) (*registry.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context) ([]registry.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]registry.Item), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *registry.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) ExistsByBarcodeID(ctx context.Context, barcodeID string) (bool, error) {
	args := m.Called(ctx, barcodeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) NextBarcodeID(ctx context.Context, prefix string, start int) (string, error) {
	args := m.Called(ctx, prefix, start)
	return args.String(0), args.Error(1)
}

// MockPurchaseRepository is a mock implementation of PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]event.Purchase, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ListViews(ctx context.Context, eventID uuid.UUID) ([]event.PurchaseView, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.PurchaseView), args.Error(1)
}

func (m *MockPurchaseRepository) ListReportRows(ctx context.Context, eventID uuid.UUID) ([]event.ReportRow, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.ReportRow), args.Error(1)
}

func (m *MockPurchaseRepository) FindFirstForItem(ctx context.Context, eventID, itemID uuid.UUID) (*event.Purchase, error) {
	args := m.Called(ctx, eventID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ExistsForItemByOtherBuyer(ctx context.Context, eventID, itemID, buyerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, eventID, itemID, buyerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, purchase *event.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseRepository) CountByBuyer(ctx context.Context, buyerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, buyerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseRepository) CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseRepository) Summarize(ctx context.Context, eventID uuid.UUID) (event.EventSummary, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(event.EventSummary), args.Error(1)
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*event.Event), args.Error(1)
}

func (m *MockEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]event.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Event), args.Error(1)
}

func (m *MockEventRepository) FindRecent(ctx context.Context, limit int) ([]event.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]event.Event), args.Error(1)
}

func (m *MockEventRepository) Save(ctx context.Context, evt *event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
