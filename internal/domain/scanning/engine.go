package scanning

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status of a scan outcome
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Outcome is what a single processed scan reports back to the operator.
// It always travels together with the full resulting state snapshot, so
// the UI can resynchronize from the response alone.
type Outcome struct {
	Status    Status `json:"status"`
	Message   string `json:"message"`
	Committed bool   `json:"committed"`
}

// BuyerRef identifies a buyer resolved from a barcode
type BuyerRef struct {
	ID   uuid.UUID
	Name string
}

// ItemRef identifies an item resolved from a barcode
type ItemRef struct {
	ID       uuid.UUID
	Name     string
	IsUnique bool
}

// Directory resolves scanned barcodes against the registry. A lookup
// miss is reported through the found flag, not an error; errors mean
// the store itself failed.
type Directory interface {
	BuyerByBarcode(ctx context.Context, barcodeID string) (BuyerRef, bool, error)
	ItemByBarcode(ctx context.Context, barcodeID string) (ItemRef, bool, error)
}

// Committer writes a pending purchase to durable storage. It returns
// committed=false with a nil error when the write was skipped by the
// unique-item guard.
type Committer interface {
	Commit(ctx context.Context, pending PendingPurchase) (bool, error)
}

// ConflictChecker answers whether a unique item is already held by
// another buyer, for the warning appended at selection time.
type ConflictChecker interface {
	HeldByOtherBuyer(ctx context.Context, eventID, itemID, buyerID uuid.UUID) (holderName string, held bool, err error)
}

// Engine is the single authority for mutating SessionState in response
// to a classified command. It holds no state of its own: Process takes
// the current state and returns the next one.
type Engine struct {
	dir       Directory
	committer Committer
	conflicts ConflictChecker
}

// NewEngine creates a scan engine
func NewEngine(dir Directory, committer Committer, conflicts ConflictChecker) *Engine {
	return &Engine{
		dir:       dir,
		committer: committer,
		conflicts: conflicts,
	}
}

// Process applies one classified command to the state. The pending
// purchase, if any, is committed before the new selection overwrites
// the fields it is read from. Errors never escape as panics: every
// failure degrades to an error outcome with a usable state.
func (e *Engine) Process(ctx context.Context, state SessionState, cmd Command) (SessionState, Outcome) {
	if !state.HasEvent() {
		return state, Outcome{
			Status:  StatusError,
			Message: "No active event session. Open an event to start scanning.",
		}
	}

	switch c := cmd.(type) {
	case BuyerScan:
		return e.processBuyerScan(ctx, state, c)
	case ItemScan:
		return e.processItemScan(ctx, state, c)
	case PriceScan:
		return e.processPriceScan(state, c)
	case Clear:
		return e.processClear(ctx, state)
	case InvalidPrice:
		return state, Outcome{
			Status:  StatusError,
			Message: fmt.Sprintf("Invalid price format: '%s'.", c.Raw),
		}
	case Unrecognized:
		return state, Outcome{
			Status:  StatusError,
			Message: fmt.Sprintf("Unrecognized barcode format: '%s'.", c.Raw),
		}
	default:
		return state, Outcome{
			Status:  StatusError,
			Message: "Unrecognized barcode format.",
		}
	}
}

// Finish commits whatever purchase is still pending and clears the
// state. Used when the operator ends the scanning session.
func (e *Engine) Finish(ctx context.Context, state SessionState) (SessionState, bool, error) {
	committed, err := e.commitPending(ctx, state)
	if err != nil {
		return state, false, err
	}
	return SessionState{AccumulatedPrice: decimal.Zero}, committed, nil
}

func (e *Engine) processBuyerScan(ctx context.Context, state SessionState, cmd BuyerScan) (SessionState, Outcome) {
	committed, err := e.commitPending(ctx, state)
	if err != nil {
		// State is kept so the operator can retry by rescanning.
		return state, Outcome{
			Status:  StatusError,
			Message: "Failed to save the pending purchase. Rescan to retry.",
		}
	}

	buyer, found, err := e.dir.BuyerByBarcode(ctx, cmd.Barcode)
	if err != nil {
		return state, Outcome{
			Status:    StatusError,
			Message:   "Buyer lookup failed. Rescan to retry.",
			Committed: committed,
		}
	}
	if !found {
		// Do not keep a stale buyer around after a bad scan.
		return state.ClearSelection(), Outcome{
			Status:    StatusError,
			Message:   fmt.Sprintf("Unknown buyer barcode: '%s'.", cmd.Barcode),
			Committed: committed,
		}
	}

	return state.SelectBuyer(buyer.ID, buyer.Name), Outcome{
		Status:    StatusSuccess,
		Message:   fmt.Sprintf("Buyer set: %s. Scan item.", buyer.Name),
		Committed: committed,
	}
}

func (e *Engine) processItemScan(ctx context.Context, state SessionState, cmd ItemScan) (SessionState, Outcome) {
	if !state.HasBuyer() {
		return state, Outcome{Status: StatusError, Message: "Scan buyer first."}
	}

	committed, err := e.commitPending(ctx, state)
	if err != nil {
		return state, Outcome{
			Status:  StatusError,
			Message: "Failed to save the pending purchase. Rescan to retry.",
		}
	}

	item, found, err := e.dir.ItemByBarcode(ctx, cmd.Barcode)
	if err != nil {
		return state, Outcome{
			Status:    StatusError,
			Message:   "Item lookup failed. Rescan to retry.",
			Committed: committed,
		}
	}
	if !found {
		return state.ClearItem(), Outcome{
			Status:    StatusError,
			Message:   fmt.Sprintf("Unknown item barcode: '%s'.", cmd.Barcode),
			Committed: committed,
		}
	}

	msg := fmt.Sprintf("Item set: %s. Scan price(s).", item.Name)
	if item.IsUnique {
		holder, held, err := e.conflicts.HeldByOtherBuyer(ctx, *state.EventID, item.ID, *state.BuyerID)
		if err == nil && held {
			msg += fmt.Sprintf(" Warning: already purchased by %s!", holder)
		}
		// A failed conflict check only costs the warning; the commit-time
		// guard still applies.
	}

	return state.SelectItem(item.ID, item.Name), Outcome{
		Status:    StatusSuccess,
		Message:   msg,
		Committed: committed,
	}
}

func (e *Engine) processPriceScan(state SessionState, cmd PriceScan) (SessionState, Outcome) {
	if !state.HasItem() {
		return state, Outcome{Status: StatusError, Message: "Scan item first."}
	}

	next := state.AddPrice(cmd.Amount)
	return next, Outcome{
		Status: StatusSuccess,
		Message: fmt.Sprintf("Added ₪%s. Current total for %s is ₪%s. Scan another price or next item/buyer.",
			cmd.Amount.StringFixed(2), next.ItemName, next.AccumulatedPrice.StringFixed(2)),
	}
}

func (e *Engine) processClear(ctx context.Context, state SessionState) (SessionState, Outcome) {
	committed, err := e.commitPending(ctx, state)
	if err != nil {
		return state, Outcome{
			Status:  StatusError,
			Message: "Failed to save the pending purchase. Rescan to retry.",
		}
	}

	return state.ClearSelection(), Outcome{
		Status:    StatusSuccess,
		Message:   "State cleared. Scan buyer.",
		Committed: committed,
	}
}

// commitPending flushes the pending purchase, if the state holds one.
// Price accumulation is deliberately deferred to this moment: a purchase
// is written only when the context changes (new buyer, new item, clear,
// or session end), never when a price is scanned.
func (e *Engine) commitPending(ctx context.Context, state SessionState) (bool, error) {
	pending, ok := state.Pending()
	if !ok {
		return false, nil
	}
	return e.committer.Commit(ctx, pending)
}
