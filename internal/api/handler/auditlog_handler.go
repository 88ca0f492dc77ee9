package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openhire/recruitment-api/internal/core/ports"
)

// AuditLogHandler exposes the immutable audit trail to administrators.
type AuditLogHandler struct {
	service ports.AuditService
}

func NewAuditLogHandler(service ports.AuditService) *AuditLogHandler {
	return &AuditLogHandler{service: service}
}

// List handles GET /audit-logs, newest first.
func (h *AuditLogHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context(), ports.ListAuditFilter{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 0),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
