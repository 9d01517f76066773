package scanning

import (
	"context"
	"testing"
	"time"

	domainevent "github.com/gabbai/backend/internal/domain/event"
	"github.com/gabbai/backend/internal/domain/registry"
	domainscanning "github.com/gabbai/backend/internal/domain/scanning"
	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/gabbai/backend/internal/infrastructure/session"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scanFixture wires a real engine and an in-memory state store over
// mocked repositories, so tests drive the full scan path an operator
// would hit.
type scanFixture struct {
	service      *ScanService
	store        *session.InMemoryStateStore
	buyerRepo    *MockBuyerRepository
	itemRepo     *MockItemRepository
	purchaseRepo *MockPurchaseRepository
	eventRepo    *MockEventRepository
	event        *domainevent.Event
}

func newScanFixture(t *testing.T) *scanFixture {
	t.Helper()

	buyerRepo := new(MockBuyerRepository)
	itemRepo := new(MockItemRepository)
	purchaseRepo := new(MockPurchaseRepository)
	eventRepo := new(MockEventRepository)

	logger := zap.NewNop()
	engine := domainscanning.NewEngine(
		NewDirectory(buyerRepo, itemRepo),
		NewCommitter(purchaseRepo, itemRepo, logger),
		NewConflictChecker(purchaseRepo, buyerRepo),
	)

	store := session.NewInMemoryStateStore()
	t.Cleanup(func() { _ = store.Close() })

	evt, err := domainevent.NewEvent("Shabbat Noach", time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC), "1 Cheshvan 5785", "Parashat Noach")
	require.NoError(t, err)
	eventRepo.On("FindByID", mock.Anything, evt.ID).Return(evt, nil)
	purchaseRepo.On("ListViews", mock.Anything, evt.ID).Return([]domainevent.PurchaseView{}, nil).Maybe()

	return &scanFixture{
		service:      NewScanService(engine, store, eventRepo, purchaseRepo, time.Hour, logger),
		store:        store,
		buyerRepo:    buyerRepo,
		itemRepo:     itemRepo,
		purchaseRepo: purchaseRepo,
		eventRepo:    eventRepo,
		event:        evt,
	}
}

func (f *scanFixture) withBuyer(t *testing.T, name, barcode string) *registry.Buyer {
	t.Helper()
	buyer, err := registry.NewBuyer(name, barcode)
	require.NoError(t, err)
	f.buyerRepo.On("FindByBarcodeID", mock.Anything, barcode).Return(buyer, nil)
	return buyer
}

func (f *scanFixture) withItem(t *testing.T, name, barcode string, isUnique bool) *registry.Item {
	t.Helper()
	item, err := registry.NewItem(name, barcode, isUnique)
	require.NoError(t, err)
	f.itemRepo.On("FindByBarcodeID", mock.Anything, barcode).Return(item, nil)
	f.itemRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	return item
}

func TestScanService_StartSession(t *testing.T) {
	t.Run("opens a session against an existing event", func(t *testing.T) {
		f := newScanFixture(t)

		resp, err := f.service.StartSession(context.Background(), "operator-1", StartSessionRequest{EventID: f.event.ID})

		require.NoError(t, err)
		assert.True(t, resp.Active)
		assert.Equal(t, f.event.ID, *resp.EventID)
		assert.Empty(t, resp.BuyerName)
	})

	t.Run("rejects an unknown event", func(t *testing.T) {
		f := newScanFixture(t)

		id := uuid.New()
		f.eventRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.StartSession(context.Background(), "operator-1", StartSessionRequest{EventID: id})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("flushes the previous session's pending purchase", func(t *testing.T) {
		f := newScanFixture(t)
		f.withBuyer(t, "Cohen", "B1001")
		item := f.withItem(t, "Hagbah", "I5003", false)

		f.purchaseRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *domainevent.Purchase) bool {
			return p.ItemID == item.ID && p.TotalPrice.Equal(decimal.NewFromInt(18))
		})).Return(nil).Once()

		ctx := context.Background()
		_, err := f.service.StartSession(ctx, "operator-1", StartSessionRequest{EventID: f.event.ID})
		require.NoError(t, err)
		mustScan(t, f, ctx, "operator-1", "BUYER:B1001")
		mustScan(t, f, ctx, "operator-1", "ITEM:I5003")
		mustScan(t, f, ctx, "operator-1", "PRICE:18")

		_, err = f.service.StartSession(ctx, "operator-1", StartSessionRequest{EventID: f.event.ID})

		require.NoError(t, err)
		f.purchaseRepo.AssertExpectations(t)
	})
}

func TestScanService_ProcessScan(t *testing.T) {
	t.Run("rejects scans without a session", func(t *testing.T) {
		f := newScanFixture(t)

		resp, err := f.service.ProcessScan(context.Background(), "operator-1", ScanRequest{Barcode: "BUYER:B1001"})

		require.NoError(t, err)
		assert.Equal(t, "error", resp.Status)
		assert.Contains(t, resp.Message, "No active event session")
		assert.False(t, resp.State.Active)
	})

	t.Run("walks a full buyer, item, price, commit cycle", func(t *testing.T) {
		f := newScanFixture(t)
		f.withBuyer(t, "Cohen", "B1001")
		f.withBuyer(t, "Levi", "B1002")
		item := f.withItem(t, "Hagbah", "I5003", false)

		f.purchaseRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *domainevent.Purchase) bool {
			return p.ItemID == item.ID && p.TotalPrice.Equal(decimal.NewFromInt(15))
		})).Return(nil).Once()

		ctx := context.Background()
		_, err := f.service.StartSession(ctx, "operator-1", StartSessionRequest{EventID: f.event.ID})
		require.NoError(t, err)

		resp := mustScan(t, f, ctx, "operator-1", "BUYER:B1001")
		assert.Equal(t, "Buyer set: Cohen. Scan item.", resp.Message)

		resp = mustScan(t, f, ctx, "operator-1", "ITEM:I5003")
		assert.Equal(t, "Item set: Hagbah. Scan price(s).", resp.Message)

		resp = mustScan(t, f, ctx, "operator-1", "PRICE:10")
		assert.Equal(t, "10.00", resp.State.AccumulatedPrice)

		resp = mustScan(t, f, ctx, "operator-1", "PRICE:5")
		assert.Equal(t, "15.00", resp.State.AccumulatedPrice)
		f.purchaseRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

		resp = mustScan(t, f, ctx, "operator-1", "BUYER:B1002")
		assert.True(t, resp.Committed)
		assert.Equal(t, "Levi", resp.State.BuyerName)
		assert.Empty(t, resp.State.ItemName)
		assert.NotNil(t, resp.Purchases)
		f.purchaseRepo.AssertCalled(t, "ListViews", mock.Anything, f.event.ID)
		f.purchaseRepo.AssertExpectations(t)
	})

	t.Run("keeps operators isolated", func(t *testing.T) {
		f := newScanFixture(t)
		f.withBuyer(t, "Cohen", "B1001")
		f.withBuyer(t, "Levi", "B1002")

		ctx := context.Background()
		_, err := f.service.StartSession(ctx, "operator-1", StartSessionRequest{EventID: f.event.ID})
		require.NoError(t, err)
		_, err = f.service.StartSession(ctx, "operator-2", StartSessionRequest{EventID: f.event.ID})
		require.NoError(t, err)

		mustScan(t, f, ctx, "operator-1", "BUYER:B1001")
		mustScan(t, f, ctx, "operator-2", "BUYER:B1002")

		state1, err := f.service.CurrentState(ctx, "operator-1")
		require.NoError(t, err)
		state2, err := f.service.CurrentState(ctx, "operator-2")
		require.NoError(t, err)

		assert.Equal(t, "Cohen", state1.BuyerName)
		assert.Equal(t, "Levi", state2.BuyerName)
	})

	t.Run("warns when a unique item is already held", func(t *testing.T) {
		f := newScanFixture(t)
		f.withBuyer(t, "Cohen", "B1001")
		item := f.withItem(t, "Maftir", "I5001", true)

		holder, err := registry.NewBuyer("Levi", "B1002")
		require.NoError(t, err)
		first, err := domainevent.NewScannedPurchase(f.event.ID, holder.ID, item.ID, decimal.NewFromInt(100))
		require.NoError(t, err)

		f.purchaseRepo.On("FindFirstForItem", mock.Anything, f.event.ID, item.ID).Return(first, nil)
		f.buyerRepo.On("FindByID", mock.Anything, holder.ID).Return(holder, nil)

		ctx := context.Background()
		_, err = f.service.StartSession(ctx, "operator-1", StartSessionRequest{EventID: f.event.ID})
		require.NoError(t, err)
		mustScan(t, f, ctx, "operator-1", "BUYER:B1001")

		resp := mustScan(t, f, ctx, "operator-1", "ITEM:I5001")

		assert.Contains(t, resp.Message, "Warning: already purchased by Levi!")
	})

	t.Run("persists state across requests", func(t *testing.T) {
		f := newScanFixture(t)
		f.withBuyer(t, "Cohen", "B1001")

		ctx := context.Background()
		_, err := f.service.StartSession(ctx, "operator-1", StartSessionRequest{EventID: f.event.ID})
		require.NoError(t, err)
		mustScan(t, f, ctx, "operator-1", "BUYER:B1001")

		state, err := f.service.CurrentState(ctx, "operator-1")

		require.NoError(t, err)
		assert.Equal(t, "Cohen", state.BuyerName)
	})
}

func TestScanService_FinishSession(t *testing.T) {
	t.Run("commits the pending purchase and ends the session", func(t *testing.T) {
		f := newScanFixture(t)
		f.withBuyer(t, "Cohen", "B1001")
		item := f.withItem(t, "Hagbah", "I5003", false)

		f.purchaseRepo.On("Save", mock.Anything, mock.MatchedBy(func(p *domainevent.Purchase) bool {
			return p.ItemID == item.ID && p.TotalPrice.Equal(decimal.NewFromInt(20))
		})).Return(nil).Once()

		ctx := context.Background()
		_, err := f.service.StartSession(ctx, "operator-1", StartSessionRequest{EventID: f.event.ID})
		require.NoError(t, err)
		mustScan(t, f, ctx, "operator-1", "BUYER:B1001")
		mustScan(t, f, ctx, "operator-1", "ITEM:I5003")
		mustScan(t, f, ctx, "operator-1", "PRICE:20")

		resp, err := f.service.FinishSession(ctx, "operator-1")

		require.NoError(t, err)
		assert.True(t, resp.Committed)

		state, err := f.service.CurrentState(ctx, "operator-1")
		require.NoError(t, err)
		assert.False(t, state.Active)
	})

	t.Run("finishing without a session is a no-op", func(t *testing.T) {
		f := newScanFixture(t)

		resp, err := f.service.FinishSession(context.Background(), "operator-1")

		require.NoError(t, err)
		assert.False(t, resp.Committed)
	})
}

func mustScan(t *testing.T, f *scanFixture, ctx context.Context, operatorID, barcode string) *ScanResponse {
	t.Helper()
	resp, err := f.service.ProcessScan(ctx, operatorID, ScanRequest{Barcode: barcode})
	require.NoError(t, err)
	return resp
}
