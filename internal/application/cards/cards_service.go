package cards

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/gabbai/backend/internal/domain/registry"
	"github.com/gabbai/backend/internal/domain/scanning"
	"github.com/gabbai/backend/internal/domain/shared"
	"github.com/gabbai/backend/internal/infrastructure/barcode"
	"github.com/gabbai/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// defaultDenominations are the amounts printed on the price card sheet
// when no custom list is given. Operators combine them by scanning more
// than one.
var defaultDenominations = []int{10, 20, 30, 40, 50}

// maxPriceCards bounds a single sheet so a typo in copies cannot ask
// the renderer for thousands of barcodes.
const maxPriceCards = 200

// card is one printable cell: a label over a barcode image
type card struct {
	Title    string
	Subtitle string
	Image    template.URL
}

type sheetData struct {
	Heading string
	Cards   []card
}

// cardSheetTemplate lays cards out three per row for A4. Page breaks
// are left to the print engine.
const cardSheetTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: "Noto Sans Hebrew", sans-serif; margin: 0; }
  h1 { font-size: 16px; margin: 0 0 10px 0; }
  .grid { display: flex; flex-wrap: wrap; }
  .card { width: 31%; margin: 0 1% 14px 1%; border: 1px dashed #aaa;
          padding: 8px; text-align: center; page-break-inside: avoid; }
  .title { font-size: 14px; font-weight: bold; margin-bottom: 2px; }
  .subtitle { font-size: 10px; color: #666; margin-bottom: 4px; }
  img { width: 100%; height: 52px; }
</style>
</head>
<body>
<h1>{{.Heading}}</h1>
<div class="grid">
{{range .Cards}}
  <div class="card">
    <div class="title" dir="auto">{{.Title}}</div>
    {{if .Subtitle}}<div class="subtitle">{{.Subtitle}}</div>{{end}}
    <img src="{{.Image}}" alt="">
  </div>
{{end}}
</div>
</body>
</html>`

var cardSheetTmpl = template.Must(template.New("cards").Parse(cardSheetTemplate))

// CardService renders printable barcode card sheets: one card per
// buyer or item, plus the fixed price and control cards
type CardService struct {
	buyerRepo registry.BuyerRepository
	itemRepo  registry.ItemRepository
	generator *barcode.Generator
	renderer  printing.PDFRenderer
	logger    *zap.Logger
}

// NewCardService creates a new CardService
func NewCardService(buyerRepo registry.BuyerRepository, itemRepo registry.ItemRepository, generator *barcode.Generator, renderer printing.PDFRenderer, logger *zap.Logger) *CardService {
	return &CardService{
		buyerRepo: buyerRepo,
		itemRepo:  itemRepo,
		generator: generator,
		renderer:  renderer,
		logger:    logger,
	}
}

// BuyerCards renders one scannable card per registered buyer
func (s *CardService) BuyerCards(ctx context.Context) ([]byte, error) {
	buyers, err := s.buyerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	cards := make([]card, 0, len(buyers))
	for _, b := range buyers {
		c, err := s.makeCard(b.Name, b.BarcodeID, scanning.BuyerPrefix+b.BarcodeID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	return s.renderSheet(ctx, "Buyer Cards", cards)
}

// ItemCards renders one scannable card per registered item
func (s *CardService) ItemCards(ctx context.Context) ([]byte, error) {
	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	cards := make([]card, 0, len(items))
	for _, i := range items {
		title := i.Name
		if i.IsUnique {
			title += " *"
		}
		c, err := s.makeCard(title, i.BarcodeID, scanning.ItemPrefix+i.BarcodeID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	return s.renderSheet(ctx, "Item Cards", cards)
}

// PriceCards renders price denomination cards and the clear card used
// to reset the scanner. An empty amounts list falls back to the default
// denominations; copies repeats each amount on the sheet.
func (s *CardService) PriceCards(ctx context.Context, amounts []int, copies int) ([]byte, error) {
	if len(amounts) == 0 {
		amounts = defaultDenominations
	}
	if copies < 1 {
		copies = 1
	}
	for _, amount := range amounts {
		if amount <= 0 {
			return nil, shared.NewDomainError("INVALID_PRICE", "Price card amounts must be positive")
		}
	}
	if len(amounts)*copies > maxPriceCards {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("A price card sheet is limited to %d cards", maxPriceCards))
	}

	cards := make([]card, 0, len(amounts)*copies+1)
	for _, amount := range amounts {
		value := fmt.Sprintf("%s%d", scanning.PricePrefix, amount)
		c, err := s.makeCard(fmt.Sprintf("₪%d", amount), "", value)
		if err != nil {
			return nil, err
		}
		for n := 0; n < copies; n++ {
			cards = append(cards, c)
		}
	}

	clear, err := s.makeCard("CLEAR", "resets the current selection", scanning.ClearCommand)
	if err != nil {
		return nil, err
	}
	cards = append(cards, clear)

	return s.renderSheet(ctx, "Price Cards", cards)
}

func (s *CardService) makeCard(title, subtitle, value string) (card, error) {
	uri, err := s.generator.DataURI(value)
	if err != nil {
		return card{}, err
	}
	return card{
		Title:    title,
		Subtitle: subtitle,
		Image:    template.URL(uri),
	}, nil
}

func (s *CardService) renderSheet(ctx context.Context, heading string, cards []card) ([]byte, error) {
	var buf bytes.Buffer
	if err := cardSheetTmpl.Execute(&buf, sheetData{Heading: heading, Cards: cards}); err != nil {
		return nil, err
	}

	pdf, err := s.renderer.RenderPDF(ctx, buf.String())
	if err != nil {
		s.logger.Error("Card sheet rendering failed",
			zap.String("sheet", heading),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Card sheet rendered",
		zap.String("sheet", heading),
		zap.Int("cards", len(cards)))
	return pdf, nil
}
