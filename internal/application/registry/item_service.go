package registry

import (
	"context"
	"errors"

	"github.com/gabbai/backend/internal/domain/event"
	"github.com/gabbai/backend/internal/domain/registry"
	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemService handles item registry operations
type ItemService struct {
	itemRepo     registry.ItemRepository
	purchaseRepo event.PurchaseRepository
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo registry.ItemRepository, purchaseRepo event.PurchaseRepository) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		purchaseRepo: purchaseRepo,
	}
}

// Create creates a new item. When no barcode ID is given the next
// sequential one is generated.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	barcodeID := req.BarcodeID
	if barcodeID == "" {
		next, err := s.itemRepo.NextBarcodeID(ctx, registry.ItemBarcodePrefix, registry.ItemBarcodeStart)
		if err != nil {
			return nil, err
		}
		barcodeID = next
	} else {
		exists, err := s.itemRepo.ExistsByBarcodeID(ctx, barcodeID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An item with this barcode ID already exists")
		}
	}

	item, err := registry.NewItem(req.Name, barcodeID, req.IsUnique)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// QuickAdd creates a non-unique item from a name alone, generating the
// barcode ID. Names are unique here (case-insensitive).
func (s *ItemService) QuickAdd(ctx context.Context, req QuickAddRequest) (*ItemResponse, error) {
	existing, err := s.itemRepo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An item with this name already exists")
	}

	barcodeID, err := s.itemRepo.NextBarcodeID(ctx, registry.ItemBarcodePrefix, registry.ItemBarcodeStart)
	if err != nil {
		return nil, err
	}

	item, err := registry.NewItem(req.Name, barcodeID, false)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update updates an item's fields
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BarcodeID != item.BarcodeID {
		exists, err := s.itemRepo.ExistsByBarcodeID(ctx, req.BarcodeID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "An item with this barcode ID already exists")
		}
	}

	if err := item.Update(req.Name, req.BarcodeID, req.IsUnique); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Get returns one item by ID
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List returns all items ordered by name
func (s *ItemService) List(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = *toItemResponse(&items[i])
	}
	return responses, nil
}

// Delete removes an item. Items with recorded purchases cannot be deleted.
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.purchaseRepo.CountByItem(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.ErrHasPurchases
	}

	return s.itemRepo.Delete(ctx, id)
}
