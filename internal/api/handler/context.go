package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openhire/recruitment-api/internal/core/ports"
)

// ctxIdentity extracts the authenticated identity injected by the Auth
// middleware. An empty user id means the middleware did not run; fail with
// 401 before touching any service.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	userID, _ := c.Get("user_id").(string)
	role, _ := c.Get("role").(string)
	if userID == "" || role == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Identity{ID: userID, Role: role}, nil
}
