package scanning

import (
	"context"
	"time"

	"github.com/gabbai/backend/internal/domain/event"
	"github.com/gabbai/backend/internal/domain/scanning"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ScanRequest carries one raw barcode string from the scanner
type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// StartSessionRequest opens a scan session against an event
type StartSessionRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
}

// StateResponse is the operator-facing snapshot of a scan session
type StateResponse struct {
	Active           bool       `json:"active"`
	EventID          *uuid.UUID `json:"event_id,omitempty"`
	BuyerName        string     `json:"buyer_name"`
	ItemName         string     `json:"item_name"`
	AccumulatedPrice string     `json:"accumulated_price"`
}

// ScanResponse is the result of processing one scan. It carries the
// refreshed purchase list so the scanner screen never needs a second
// round trip after a commit.
type ScanResponse struct {
	Status    string               `json:"status"`
	Message   string               `json:"message"`
	Committed bool                 `json:"committed"`
	State     StateResponse        `json:"state"`
	Purchases []event.PurchaseView `json:"purchases"`
}

// FinishResponse reports the result of closing a session
type FinishResponse struct {
	Committed bool `json:"committed"`
}

func toStateResponse(state scanning.SessionState) StateResponse {
	price := state.AccumulatedPrice
	if !state.HasItem() {
		price = decimal.Zero
	}
	return StateResponse{
		Active:           state.HasEvent(),
		EventID:          state.EventID,
		BuyerName:        state.BuyerName,
		ItemName:         state.ItemName,
		AccumulatedPrice: price.StringFixed(2),
	}
}

// ScanService drives scan sessions: it loads the operator's state,
// runs the engine over one scan, and stores the result. State lives in
// the StateStore keyed by operator, so several gabbaim can scan
// different events at once.
type ScanService struct {
	engine       *scanning.Engine
	store        scanning.StateStore
	eventRepo    event.EventRepository
	purchaseRepo event.PurchaseRepository
	sessionTTL   time.Duration
	logger       *zap.Logger
}

// NewScanService creates a new ScanService
func NewScanService(engine *scanning.Engine, store scanning.StateStore, eventRepo event.EventRepository, purchaseRepo event.PurchaseRepository, sessionTTL time.Duration, logger *zap.Logger) *ScanService {
	return &ScanService{
		engine:       engine,
		store:        store,
		eventRepo:    eventRepo,
		purchaseRepo: purchaseRepo,
		sessionTTL:   sessionTTL,
		logger:       logger,
	}
}

// StartSession opens a fresh scan session for the operator against the
// given event. Any previous session of the operator is replaced, with
// its pending purchase committed first.
func (s *ScanService) StartSession(ctx context.Context, operatorID string, req StartSessionRequest) (*StateResponse, error) {
	evt, err := s.eventRepo.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	if prev, ok, err := s.store.Get(ctx, operatorID); err == nil && ok {
		if _, _, err := s.engine.Finish(ctx, prev); err != nil {
			s.logger.Warn("Failed to flush the previous session's pending purchase",
				zap.String("operator_id", operatorID),
				zap.Error(err))
		}
	}

	state := scanning.NewSessionState(evt.ID)
	if err := s.store.Put(ctx, operatorID, state, s.sessionTTL); err != nil {
		return nil, err
	}

	s.logger.Info("Scan session started",
		zap.String("operator_id", operatorID),
		zap.String("event", evt.Name))

	resp := toStateResponse(state)
	return &resp, nil
}

// ProcessScan classifies one raw barcode and applies it to the
// operator's session
func (s *ScanService) ProcessScan(ctx context.Context, operatorID string, req ScanRequest) (*ScanResponse, error) {
	state, _, err := s.store.Get(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	cmd := scanning.Classify(req.Barcode)
	next, outcome := s.engine.Process(ctx, state, cmd)

	if err := s.store.Put(ctx, operatorID, next, s.sessionTTL); err != nil {
		return nil, err
	}

	return &ScanResponse{
		Status:    string(outcome.Status),
		Message:   outcome.Message,
		Committed: outcome.Committed,
		State:     toStateResponse(next),
		Purchases: s.listPurchases(ctx, next),
	}, nil
}

// listPurchases loads the event's purchase rows for the response. A
// listing failure does not fail the scan itself.
func (s *ScanService) listPurchases(ctx context.Context, state scanning.SessionState) []event.PurchaseView {
	if !state.HasEvent() {
		return []event.PurchaseView{}
	}

	views, err := s.purchaseRepo.ListViews(ctx, *state.EventID)
	if err != nil {
		s.logger.Warn("Failed to refresh the purchase list",
			zap.String("event_id", state.EventID.String()),
			zap.Error(err))
		return []event.PurchaseView{}
	}
	return views
}

// CurrentState returns the operator's session snapshot
func (s *ScanService) CurrentState(ctx context.Context, operatorID string) (*StateResponse, error) {
	state, _, err := s.store.Get(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	resp := toStateResponse(state)
	return &resp, nil
}

// FinishSession commits the pending purchase, if any, and ends the
// operator's session
func (s *ScanService) FinishSession(ctx context.Context, operatorID string) (*FinishResponse, error) {
	state, ok, err := s.store.Get(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &FinishResponse{}, nil
	}

	_, committed, err := s.engine.Finish(ctx, state)
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, operatorID); err != nil {
		return nil, err
	}

	s.logger.Info("Scan session finished",
		zap.String("operator_id", operatorID),
		zap.Bool("committed_pending", committed))

	return &FinishResponse{Committed: committed}, nil
}
