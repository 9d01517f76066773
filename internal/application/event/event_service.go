package event

import (
	"context"
	"time"

	"github.com/gabbai/backend/internal/domain/event"
	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/gabbai/backend/internal/infrastructure/hebcal"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HebrewCalendar resolves a Gregorian date to its Hebrew calendar info
type HebrewCalendar interface {
	Describe(date time.Time) (hebcal.DateInfo, error)
}

// EventService handles event lifecycle operations
type EventService struct {
	eventRepo    event.EventRepository
	purchaseRepo event.PurchaseRepository
	calendar     HebrewCalendar
	logger       *zap.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo event.EventRepository, purchaseRepo event.PurchaseRepository, calendar HebrewCalendar, logger *zap.Logger) *EventService {
	return &EventService{
		eventRepo:    eventRepo,
		purchaseRepo: purchaseRepo,
		calendar:     calendar,
		logger:       logger,
	}
}

// Create creates a new event. When the Hebrew date is not supplied it is
// derived from the Gregorian date, along with the Torah portion or
// holiday of that day.
func (s *EventService) Create(ctx context.Context, req CreateEventRequest) (*EventResponse, error) {
	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	hebrewDate, details := s.resolveHebrewDate(date, req.HebrewDate, req.Details)

	evt, err := event.NewEvent(req.Name, date, hebrewDate, details)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.Save(ctx, evt); err != nil {
		return nil, err
	}
	return toEventResponse(evt), nil
}

// Update updates an event. A cleared Hebrew date is re-derived from the
// new Gregorian date.
func (s *EventService) Update(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	evt, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	hebrewDate, details := s.resolveHebrewDate(date, req.HebrewDate, req.Details)

	if err := evt.Update(req.Name, date, hebrewDate, details); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Save(ctx, evt); err != nil {
		return nil, err
	}
	return toEventResponse(evt), nil
}

// Get returns one event with its purchase totals
func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*EventDetailResponse, error) {
	evt, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := s.purchaseRepo.Summarize(ctx, id)
	if err != nil {
		return nil, err
	}

	return &EventDetailResponse{
		EventResponse: *toEventResponse(evt),
		PurchaseCount: summary.PurchaseCount,
		TotalPledged:  summary.TotalPledged,
	}, nil
}

// List returns a page of events, newest first
func (s *EventService) List(ctx context.Context, req ListEventsRequest) (*shared.Paginated[EventResponse], error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search

	events, err := s.eventRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.eventRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = *toEventResponse(&events[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Recent returns the most recently held events for the scanner's
// event picker
func (s *EventService) Recent(ctx context.Context, limit int) ([]EventResponse, error) {
	if limit < 1 {
		limit = 5
	}

	events, err := s.eventRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = *toEventResponse(&events[i])
	}
	return responses, nil
}

// Delete removes an event together with all of its purchases
func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.eventRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.eventRepo.Delete(ctx, id)
}

// resolveHebrewDate fills empty Hebrew date fields from the calendar.
// Calendar failures are logged and leave the fields as given; the event
// is still usable without them.
func (s *EventService) resolveHebrewDate(date time.Time, hebrewDate, details string) (string, string) {
	if hebrewDate != "" {
		return hebrewDate, details
	}

	info, err := s.calendar.Describe(date)
	if err != nil {
		s.logger.Warn("Failed to resolve Hebrew date",
			zap.Time("date", date),
			zap.Error(err))
		return hebrewDate, details
	}

	if details == "" {
		details = info.Details
	}
	return info.HebrewDate, details
}

func parseEventDate(value string) (time.Time, error) {
	date, err := time.Parse(eventDateLayout, value)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date must be in YYYY-MM-DD format")
	}
	return date, nil
}
