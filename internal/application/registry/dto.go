package registry

import (
	"time"

	"github.com/gabbai/backend/internal/domain/registry"
	"github.com/google/uuid"
)

// =============================================================================
// Buyer DTOs
// =============================================================================

// CreateBuyerRequest represents a request to create a buyer.
// BarcodeID is optional; when empty the next sequential barcode is assigned.
type CreateBuyerRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=120"`
	BarcodeID string `json:"barcode_id" binding:"max=50"`
}

// QuickAddRequest represents a quick-add from the scanner screen.
// Only a name is taken; the barcode ID is always generated.
type QuickAddRequest struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
}

// UpdateBuyerRequest represents a request to update a buyer
type UpdateBuyerRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=120"`
	BarcodeID string `json:"barcode_id" binding:"required,min=1,max=50"`
}

// BuyerResponse represents a buyer in API responses
type BuyerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BarcodeID string    `json:"barcode_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toBuyerResponse(buyer *registry.Buyer) *BuyerResponse {
	return &BuyerResponse{
		ID:        buyer.ID,
		Name:      buyer.Name,
		BarcodeID: buyer.BarcodeID,
		CreatedAt: buyer.CreatedAt,
	}
}

// =============================================================================
// Item DTOs
// =============================================================================

// CreateItemRequest represents a request to create an item
type CreateItemRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=120"`
	BarcodeID string `json:"barcode_id" binding:"max=50"`
	IsUnique  bool   `json:"is_unique"`
}

// UpdateItemRequest represents a request to update an item
type UpdateItemRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=120"`
	BarcodeID string `json:"barcode_id" binding:"required,min=1,max=50"`
	IsUnique  bool   `json:"is_unique"`
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BarcodeID string    `json:"barcode_id"`
	IsUnique  bool      `json:"is_unique"`
	CreatedAt time.Time `json:"created_at"`
}

func toItemResponse(item *registry.Item) *ItemResponse {
	return &ItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		BarcodeID: item.BarcodeID,
		IsUnique:  item.IsUnique,
		CreatedAt: item.CreatedAt,
	}
}
