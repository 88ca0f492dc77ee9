package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openhire/recruitment-api/internal/core/ports"
)

// ReportHandler produces CSV exports and pipeline metrics.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Export handles GET /reports/export, streaming applications as CSV.
// Optional "from"/"to" query parameters bound the applied-at date range.
func (h *ReportHandler) Export(c echo.Context) error {
	var from, to time.Time
	if raw := c.QueryParam("from"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			from = t
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			to = t
		}
	}

	data, err := h.service.ExportApplicationsCSV(c.Request().Context(), from, to)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="applications.csv"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}

// Pipeline handles GET /reports/pipeline.
func (h *ReportHandler) Pipeline(c echo.Context) error {
	metrics, err := h.service.PipelineMetrics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, metrics)
}
