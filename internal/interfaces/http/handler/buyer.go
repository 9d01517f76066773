package handler

import (
	registryapp "github.com/gabbai/backend/internal/application/registry"
	"github.com/gin-gonic/gin"
)

// BuyerHandler handles buyer registry endpoints
type BuyerHandler struct {
	BaseHandler
	buyerService *registryapp.BuyerService
}

// NewBuyerHandler creates a new BuyerHandler
func NewBuyerHandler(buyerService *registryapp.BuyerService) *BuyerHandler {
	return &BuyerHandler{buyerService: buyerService}
}

// RegisterRoutes registers buyer routes
func (h *BuyerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	buyers := rg.Group("/buyers")
	{
		buyers.GET("", h.List)
		buyers.POST("", h.Create)
		buyers.POST("/quick-add", h.QuickAdd)
		buyers.GET("/:id", h.Get)
		buyers.PUT("/:id", h.Update)
		buyers.DELETE("/:id", h.Delete)
	}
}

// List returns all buyers ordered by name
func (h *BuyerHandler) List(c *gin.Context) {
	buyers, err := h.buyerService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, buyers)
}

// Create registers a buyer
func (h *BuyerHandler) Create(c *gin.Context) {
	var req registryapp.CreateBuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	buyer, err := h.buyerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, buyer)
}

// QuickAdd registers a buyer by name from the scanner screen
func (h *BuyerHandler) QuickAdd(c *gin.Context) {
	var req registryapp.QuickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	buyer, err := h.buyerService.QuickAdd(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, buyer)
}

// Get returns one buyer
func (h *BuyerHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid buyer ID")
		return
	}

	buyer, err := h.buyerService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, buyer)
}

// Update updates a buyer
func (h *BuyerHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid buyer ID")
		return
	}

	var req registryapp.UpdateBuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	buyer, err := h.buyerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, buyer)
}

// Delete removes a buyer without purchase history
func (h *BuyerHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid buyer ID")
		return
	}

	if err := h.buyerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
