package event

import (
	"context"

	"github.com/gabbai/backend/internal/domain/event"
	"github.com/gabbai/backend/internal/domain/registry"
	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseService handles purchase listing, manual entry and corrections
type PurchaseService struct {
	purchaseRepo event.PurchaseRepository
	eventRepo    event.EventRepository
	buyerRepo    registry.BuyerRepository
	itemRepo     registry.ItemRepository
	logger       *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo event.PurchaseRepository,
	eventRepo event.EventRepository,
	buyerRepo registry.BuyerRepository,
	itemRepo registry.ItemRepository,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		eventRepo:    eventRepo,
		buyerRepo:    buyerRepo,
		itemRepo:     itemRepo,
		logger:       logger,
	}
}

// List returns an event's purchases in scan order
func (s *PurchaseService) List(ctx context.Context, eventID uuid.UUID) ([]PurchaseResponse, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	views, err := s.purchaseRepo.ListViews(ctx, eventID)
	if err != nil {
		return nil, err
	}

	responses := make([]PurchaseResponse, len(views))
	for i, v := range views {
		responses[i] = toPurchaseResponse(v)
	}
	return responses, nil
}

// AddManual records a purchase entered through the manual form, for
// sales closed away from the scanner
func (s *PurchaseService) AddManual(ctx context.Context, eventID uuid.UUID, req AddManualPurchaseRequest) (*PurchaseResponse, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	buyer, err := s.buyerRepo.FindByID(ctx, req.BuyerID)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	purchase, err := event.NewManualPurchase(eventID, buyer.ID, item.ID, req.Price, quantity, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("Manual purchase recorded",
		zap.String("event_id", eventID.String()),
		zap.String("buyer", buyer.Name),
		zap.String("item", item.Name),
		zap.String("price", purchase.TotalPrice.String()))

	resp := toPurchaseResponse(event.PurchaseView{
		ID:        purchase.ID,
		BuyerName: buyer.Name,
		ItemName:  item.Name,
		Price:     purchase.TotalPrice,
		Quantity:  purchase.Quantity,
		Notes:     purchase.ManualEntryNotes,
		Timestamp: purchase.Timestamp,
		IsManual:  true,
	})
	return &resp, nil
}

// Delete removes a purchase row from an event. Deleting and re-scanning
// is the correction path for mistaken scans.
func (s *PurchaseService) Delete(ctx context.Context, eventID, purchaseID uuid.UUID) error {
	purchase, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if !purchase.BelongsToEvent(eventID) {
		return shared.ErrForbidden
	}

	if err := s.purchaseRepo.Delete(ctx, purchaseID); err != nil {
		return err
	}

	s.logger.Info("Purchase deleted",
		zap.String("event_id", eventID.String()),
		zap.String("purchase_id", purchaseID.String()))
	return nil
}
