package handler

import (
	"strconv"

	eventapp "github.com/gabbai/backend/internal/application/event"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventHandler handles event lifecycle and purchase endpoints
type EventHandler struct {
	BaseHandler
	eventService    *eventapp.EventService
	purchaseService *eventapp.PurchaseService
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventService *eventapp.EventService, purchaseService *eventapp.PurchaseService) *EventHandler {
	return &EventHandler{
		eventService:    eventService,
		purchaseService: purchaseService,
	}
}

// RegisterRoutes registers event and purchase routes
func (h *EventHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.GET("", h.List)
		events.POST("", h.Create)
		events.GET("/recent", h.Recent)
		events.GET("/:id", h.Get)
		events.PUT("/:id", h.Update)
		events.DELETE("/:id", h.Delete)

		events.GET("/:id/purchases", h.ListPurchases)
		events.POST("/:id/purchases", h.AddManualPurchase)
		events.DELETE("/:id/purchases/:purchaseId", h.DeletePurchase)
	}
}

// List returns a page of events
func (h *EventHandler) List(c *gin.Context) {
	var req eventapp.ListEventsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.eventService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Recent returns the most recently held events
func (h *EventHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	events, err := h.eventService.Recent(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// Create creates an event
func (h *EventHandler) Create(c *gin.Context) {
	var req eventapp.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	evt, err := h.eventService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, evt)
}

// Get returns one event with purchase totals
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	evt, err := h.eventService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, evt)
}

// Update updates an event
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req eventapp.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	evt, err := h.eventService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, evt)
}

// Delete removes an event and its purchases
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListPurchases returns an event's purchases in scan order
func (h *EventHandler) ListPurchases(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	purchases, err := h.purchaseService.List(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, purchases)
}

// AddManualPurchase records a purchase entered through the manual form
func (h *EventHandler) AddManualPurchase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req eventapp.AddManualPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	purchase, err := h.purchaseService.AddManual(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, purchase)
}

// DeletePurchase removes a purchase row from an event
func (h *EventHandler) DeletePurchase(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	purchaseID, err := uuid.Parse(c.Param("purchaseId"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), id, purchaseID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
