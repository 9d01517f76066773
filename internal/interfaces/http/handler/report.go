package handler

import (
	"net/http"

	reportapp "github.com/gabbai/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles event report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.GET("/:id/report", h.Data)
		events.GET("/:id/report/csv", h.CSV)
		events.GET("/:id/report/excel", h.Excel)
		events.GET("/:id/report/pdf", h.PDF)
	}
}

// Data returns the report as JSON
func (h *ReportHandler) Data(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	data, err := h.reportService.BuildData(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, data)
}

// CSV downloads the report as CSV
func (h *ReportHandler) CSV(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	out, err := h.reportService.ExportCSV(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="report.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", out)
}

// Excel downloads the report as an .xlsx workbook
func (h *ReportHandler) Excel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	out, err := h.reportService.ExportExcel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="report.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}

// PDF downloads the printable report
func (h *ReportHandler) PDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	out, err := h.reportService.ExportPDF(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SendPDF(c, "report.pdf", out)
}
