package report

import (
	"context"
	"time"

	"github.com/gabbai/backend/internal/domain/event"
	"github.com/gabbai/backend/internal/infrastructure/printing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Row is one purchase line of an event report
type Row struct {
	BuyerName    string          `json:"buyer"`
	ItemName     string          `json:"item"`
	Price        decimal.Decimal `json:"price"`
	IsUniqueItem bool            `json:"is_unique_item"`
	Timestamp    time.Time       `json:"time"`
}

// BuyerGroup collects one buyer's purchases with their subtotal
type BuyerGroup struct {
	BuyerName string          `json:"buyer"`
	Rows      []Row           `json:"rows"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ReportData is everything a rendered event report contains
type ReportData struct {
	EventName     string          `json:"event_name"`
	EventDate     string          `json:"event_date"`
	HebrewDate    string          `json:"hebrew_date"`
	Details       string          `json:"details"`
	Groups        []BuyerGroup    `json:"groups"`
	PurchaseCount int64           `json:"purchase_count"`
	TotalPledged  decimal.Decimal `json:"total_pledged"`
}

// ReportService builds event reports and exports them as CSV, Excel
// and printable PDF
type ReportService struct {
	eventRepo    event.EventRepository
	purchaseRepo event.PurchaseRepository
	renderer     printing.PDFRenderer
	logger       *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(eventRepo event.EventRepository, purchaseRepo event.PurchaseRepository, renderer printing.PDFRenderer, logger *zap.Logger) *ReportService {
	return &ReportService{
		eventRepo:    eventRepo,
		purchaseRepo: purchaseRepo,
		renderer:     renderer,
		logger:       logger,
	}
}

// BuildData assembles the report for one event: all purchases grouped
// by buyer in scan order, with per-buyer subtotals and the event total
func (s *ReportService) BuildData(ctx context.Context, eventID uuid.UUID) (*ReportData, error) {
	evt, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	rows, err := s.purchaseRepo.ListReportRows(ctx, eventID)
	if err != nil {
		return nil, err
	}

	summary, err := s.purchaseRepo.Summarize(ctx, eventID)
	if err != nil {
		return nil, err
	}

	data := &ReportData{
		EventName:     evt.Name,
		EventDate:     evt.GregorianDate.Format("2006-01-02"),
		HebrewDate:    evt.HebrewDate,
		Details:       evt.Details,
		Groups:        groupByBuyer(rows),
		PurchaseCount: summary.PurchaseCount,
		TotalPledged:  summary.TotalPledged,
	}
	return data, nil
}

// groupByBuyer folds the buyer-ordered rows into per-buyer groups.
// Rows arrive already sorted by buyer name, then purchase time.
func groupByBuyer(rows []event.ReportRow) []BuyerGroup {
	groups := make([]BuyerGroup, 0)

	for _, r := range rows {
		row := Row{
			BuyerName:    r.BuyerName,
			ItemName:     r.ItemName,
			Price:        r.Price,
			IsUniqueItem: r.IsUniqueItem,
			Timestamp:    r.Timestamp,
		}

		if len(groups) == 0 || groups[len(groups)-1].BuyerName != r.BuyerName {
			groups = append(groups, BuyerGroup{
				BuyerName: r.BuyerName,
				Subtotal:  decimal.Zero,
			})
		}

		last := &groups[len(groups)-1]
		last.Rows = append(last.Rows, row)
		last.Subtotal = last.Subtotal.Add(r.Price)
	}

	return groups
}
