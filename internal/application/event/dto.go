package event

import (
	"time"

	"github.com/gabbai/backend/internal/domain/event"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// eventDateLayout is the wire format of event dates
const eventDateLayout = "2006-01-02"

// CreateEventRequest represents a request to create an event.
// HebrewDate and Details are optional; when empty they are derived
// from the Gregorian date.
type CreateEventRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=120"`
	Date       string `json:"date" binding:"required"`
	HebrewDate string `json:"hebrew_date" binding:"max=100"`
	Details    string `json:"details" binding:"max=200"`
}

// UpdateEventRequest represents a request to update an event
type UpdateEventRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=120"`
	Date       string `json:"date" binding:"required"`
	HebrewDate string `json:"hebrew_date" binding:"max=100"`
	Details    string `json:"details" binding:"max=200"`
}

// ListEventsRequest represents event list query parameters
type ListEventsRequest struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
	Search   string `form:"search"`
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Date       string    `json:"date"`
	HebrewDate string    `json:"hebrew_date"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}

// EventDetailResponse is an event together with its purchase totals
type EventDetailResponse struct {
	EventResponse
	PurchaseCount int64           `json:"purchase_count"`
	TotalPledged  decimal.Decimal `json:"total_pledged"`
}

func toEventResponse(e *event.Event) *EventResponse {
	return &EventResponse{
		ID:         e.ID,
		Name:       e.Name,
		Date:       e.GregorianDate.Format(eventDateLayout),
		HebrewDate: e.HebrewDate,
		Details:    e.Details,
		CreatedAt:  e.CreatedAt,
	}
}

// AddManualPurchaseRequest represents a manual purchase entry
type AddManualPurchaseRequest struct {
	BuyerID  uuid.UUID       `json:"buyer_id" binding:"required"`
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Quantity int             `json:"quantity"`
	Notes    string          `json:"notes" binding:"max=300"`
}

// PurchaseResponse represents a purchase line in API responses
type PurchaseResponse struct {
	ID        uuid.UUID       `json:"id"`
	BuyerName string          `json:"buyer"`
	ItemName  string          `json:"item"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Notes     string          `json:"notes"`
	Timestamp time.Time       `json:"time"`
	IsManual  bool            `json:"manual"`
}

func toPurchaseResponse(v event.PurchaseView) PurchaseResponse {
	return PurchaseResponse{
		ID:        v.ID,
		BuyerName: v.BuyerName,
		ItemName:  v.ItemName,
		Price:     v.Price,
		Quantity:  v.Quantity,
		Notes:     v.Notes,
		Timestamp: v.Timestamp,
		IsManual:  v.IsManual,
	}
}
