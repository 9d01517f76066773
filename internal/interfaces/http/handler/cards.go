package handler

import (
	"strconv"
	"strings"

	cardsapp "github.com/gabbai/backend/internal/application/cards"
	"github.com/gin-gonic/gin"
)

// CardHandler handles printable barcode card sheets
type CardHandler struct {
	BaseHandler
	cardService *cardsapp.CardService
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService *cardsapp.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// RegisterRoutes registers card printing routes
func (h *CardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cards := rg.Group("/cards")
	{
		cards.GET("/buyers", h.Buyers)
		cards.GET("/items", h.Items)
		cards.GET("/prices", h.Prices)
	}
}

// Buyers downloads one scannable card per registered buyer
func (h *CardHandler) Buyers(c *gin.Context) {
	out, err := h.cardService.BuyerCards(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SendPDF(c, "buyer-cards.pdf", out)
}

// Items downloads one scannable card per registered item
func (h *CardHandler) Items(c *gin.Context) {
	out, err := h.cardService.ItemCards(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SendPDF(c, "item-cards.pdf", out)
}

// Prices downloads the price denomination and clear cards. A custom
// sheet is requested with ?amounts=5,18,36&copies=2; without parameters
// the default denominations are printed once each.
func (h *CardHandler) Prices(c *gin.Context) {
	var amounts []int
	if raw := c.Query("amounts"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			amount, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				h.BadRequest(c, "Invalid amounts list")
				return
			}
			amounts = append(amounts, amount)
		}
	}

	copies := 1
	if raw := c.Query("copies"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "Invalid copies value")
			return
		}
		copies = parsed
	}

	out, err := h.cardService.PriceCards(c.Request.Context(), amounts, copies)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SendPDF(c, "price-cards.pdf", out)
}
