package handler

import (
	scanapp "github.com/gabbai/backend/internal/application/scanning"
	"github.com/gabbai/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ScanHandler handles the barcode scanning endpoints. Sessions are
// keyed by the authenticated operator, so each gabbai scans
// independently.
type ScanHandler struct {
	BaseHandler
	scanService *scanapp.ScanService
}

// NewScanHandler creates a new ScanHandler
func NewScanHandler(scanService *scanapp.ScanService) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// RegisterRoutes registers scanning routes
func (h *ScanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	scan := rg.Group("/scan")
	{
		scan.POST("/session", h.StartSession)
		scan.GET("/session", h.CurrentState)
		scan.DELETE("/session", h.FinishSession)
		scan.POST("", h.ProcessScan)
	}
}

func operatorID(c *gin.Context) (string, bool) {
	id := middleware.GetJWTUserID(c)
	return id, id != ""
}

// StartSession opens a scan session against an event
func (h *ScanHandler) StartSession(c *gin.Context) {
	operator, ok := operatorID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req scanapp.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	state, err := h.scanService.StartSession(c.Request.Context(), operator, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, state)
}

// CurrentState returns the operator's session snapshot
func (h *ScanHandler) CurrentState(c *gin.Context) {
	operator, ok := operatorID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	state, err := h.scanService.CurrentState(c.Request.Context(), operator)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, state)
}

// ProcessScan applies one raw barcode to the operator's session.
// Scan-level problems (unknown barcode, missing buyer) come back as a
// 200 with an error status in the payload; the scanner UI shows the
// message and keeps going.
func (h *ScanHandler) ProcessScan(c *gin.Context) {
	operator, ok := operatorID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req scanapp.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.scanService.ProcessScan(c.Request.Context(), operator, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// FinishSession commits any pending purchase and ends the session
func (h *ScanHandler) FinishSession(c *gin.Context) {
	operator, ok := operatorID(c)
	if !ok {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	result, err := h.scanService.FinishSession(c.Request.Context(), operator)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
