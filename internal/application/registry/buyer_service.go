package registry

import (
	"context"
	"errors"

	"github.com/gabbai/backend/internal/domain/event"
	"github.com/gabbai/backend/internal/domain/registry"
	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BuyerService handles buyer registry operations
type BuyerService struct {
	buyerRepo    registry.BuyerRepository
	purchaseRepo event.PurchaseRepository
}

// NewBuyerService creates a new BuyerService
func NewBuyerService(buyerRepo registry.BuyerRepository, purchaseRepo event.PurchaseRepository) *BuyerService {
	return &BuyerService{
		buyerRepo:    buyerRepo,
		purchaseRepo: purchaseRepo,
	}
}

// Create creates a new buyer. When no barcode ID is given the next
// sequential one is generated.
func (s *BuyerService) Create(ctx context.Context, req CreateBuyerRequest) (*BuyerResponse, error) {
	barcodeID := req.BarcodeID
	if barcodeID == "" {
		next, err := s.buyerRepo.NextBarcodeID(ctx, registry.BuyerBarcodePrefix, registry.BuyerBarcodeStart)
		if err != nil {
			return nil, err
		}
		barcodeID = next
	} else {
		exists, err := s.buyerRepo.ExistsByBarcodeID(ctx, barcodeID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A buyer with this barcode ID already exists")
		}
	}

	buyer, err := registry.NewBuyer(req.Name, barcodeID)
	if err != nil {
		return nil, err
	}

	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}
	return toBuyerResponse(buyer), nil
}

// QuickAdd creates a buyer from a name alone, generating the barcode ID.
// Names are unique here (case-insensitive) so the scanner screen cannot
// silently register the same person twice.
func (s *BuyerService) QuickAdd(ctx context.Context, req QuickAddRequest) (*BuyerResponse, error) {
	existing, err := s.buyerRepo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A buyer with this name already exists")
	}

	barcodeID, err := s.buyerRepo.NextBarcodeID(ctx, registry.BuyerBarcodePrefix, registry.BuyerBarcodeStart)
	if err != nil {
		return nil, err
	}

	buyer, err := registry.NewBuyer(req.Name, barcodeID)
	if err != nil {
		return nil, err
	}

	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}
	return toBuyerResponse(buyer), nil
}

// Update updates a buyer's name and barcode ID
func (s *BuyerService) Update(ctx context.Context, id uuid.UUID, req UpdateBuyerRequest) (*BuyerResponse, error) {
	buyer, err := s.buyerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BarcodeID != buyer.BarcodeID {
		exists, err := s.buyerRepo.ExistsByBarcodeID(ctx, req.BarcodeID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A buyer with this barcode ID already exists")
		}
	}

	if err := buyer.Update(req.Name, req.BarcodeID); err != nil {
		return nil, err
	}

	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}
	return toBuyerResponse(buyer), nil
}

// Get returns one buyer by ID
func (s *BuyerService) Get(ctx context.Context, id uuid.UUID) (*BuyerResponse, error) {
	buyer, err := s.buyerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBuyerResponse(buyer), nil
}

// List returns all buyers ordered by name
func (s *BuyerService) List(ctx context.Context) ([]BuyerResponse, error) {
	buyers, err := s.buyerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]BuyerResponse, len(buyers))
	for i := range buyers {
		responses[i] = *toBuyerResponse(&buyers[i])
	}
	return responses, nil
}

// Delete removes a buyer. Buyers with recorded purchases cannot be
// deleted; their purchase history must stay resolvable.
func (s *BuyerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.buyerRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.purchaseRepo.CountByBuyer(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrHasPurchases
	}

	return s.buyerRepo.Delete(ctx, id)
}
