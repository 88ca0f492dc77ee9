package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openhire/recruitment-api/internal/core/ports"
)

// NotificationHandler exposes a user's own notification feed.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// List handles GET /notifications for the authenticated user.
func (h *NotificationHandler) List(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	items, err := h.service.ListMine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"notifications": items})
}

// MarkRead handles PUT /notifications/:id/read. Only the owner can mark a
// notification read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	n, err := h.service.MarkRead(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}
