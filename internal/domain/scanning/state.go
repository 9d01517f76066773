package scanning

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionState is the ephemeral per-operator scan state: which event is
// being scanned, the currently selected buyer and item, and the price
// accumulated for that item so far. It is a plain value - the engine
// takes a state in and hands a new state back, and the caller decides
// where to keep it between requests.
//
// Invariant: ItemID set implies BuyerID set. AccumulatedPrice is only
// meaningful while an item is selected and resets whenever the item
// changes.
type SessionState struct {
	EventID          *uuid.UUID      `json:"event_id,omitempty"`
	BuyerID          *uuid.UUID      `json:"buyer_id,omitempty"`
	BuyerName        string          `json:"buyer_name"`
	ItemID           *uuid.UUID      `json:"item_id,omitempty"`
	ItemName         string          `json:"item_name"`
	AccumulatedPrice decimal.Decimal `json:"accumulated_price"`
}

// PendingPurchase is the complete buyer/item/price triple held in a
// session state that has not yet been committed.
type PendingPurchase struct {
	EventID uuid.UUID
	BuyerID uuid.UUID
	ItemID  uuid.UUID
	Price   decimal.Decimal
}

// NewSessionState creates a fresh state for scanning the given event
func NewSessionState(eventID uuid.UUID) SessionState {
	return SessionState{
		EventID:          &eventID,
		AccumulatedPrice: decimal.Zero,
	}
}

// HasEvent reports whether an event is being scanned
func (s SessionState) HasEvent() bool {
	return s.EventID != nil
}

// HasBuyer reports whether a buyer is selected
func (s SessionState) HasBuyer() bool {
	return s.BuyerID != nil
}

// HasItem reports whether an item is selected
func (s SessionState) HasItem() bool {
	return s.ItemID != nil
}

// SelectBuyer sets the buyer and clears the item selection and price
func (s SessionState) SelectBuyer(id uuid.UUID, name string) SessionState {
	s.BuyerID = &id
	s.BuyerName = name
	s.ItemID = nil
	s.ItemName = ""
	s.AccumulatedPrice = decimal.Zero
	return s
}

// SelectItem sets the item and resets the accumulated price. The buyer
// selection is untouched.
func (s SessionState) SelectItem(id uuid.UUID, name string) SessionState {
	s.ItemID = &id
	s.ItemName = name
	s.AccumulatedPrice = decimal.Zero
	return s
}

// ClearItem drops the item selection and price, keeping the buyer
func (s SessionState) ClearItem() SessionState {
	s.ItemID = nil
	s.ItemName = ""
	s.AccumulatedPrice = decimal.Zero
	return s
}

// ClearSelection drops buyer, item and price, keeping the event
func (s SessionState) ClearSelection() SessionState {
	s.BuyerID = nil
	s.BuyerName = ""
	return s.ClearItem()
}

// AddPrice adds an amount to the accumulated price
func (s SessionState) AddPrice(amount decimal.Decimal) SessionState {
	s.AccumulatedPrice = s.AccumulatedPrice.Add(amount)
	return s
}

// Pending returns the purchase held in this state, if the event, buyer
// and item are all set. A zero accumulated price still counts: a
// zero-price claim on an item is a valid outcome.
func (s SessionState) Pending() (PendingPurchase, bool) {
	if s.EventID == nil || s.BuyerID == nil || s.ItemID == nil {
		return PendingPurchase{}, false
	}
	return PendingPurchase{
		EventID: *s.EventID,
		BuyerID: *s.BuyerID,
		ItemID:  *s.ItemID,
		Price:   s.AccumulatedPrice,
	}, true
}
