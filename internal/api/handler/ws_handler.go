package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ConnectionJoiner registers a live connection for a user and blocks until it
// disconnects.
type ConnectionJoiner interface {
	Join(userID string, conn *websocket.Conn)
}

// WSHandler upgrades authenticated requests to a websocket and parks them in
// the connection registry so services can push events to the user.
type WSHandler struct {
	hub ConnectionJoiner
	log zerolog.Logger

	upgrader websocket.Upgrader
}

func NewWSHandler(hub ConnectionJoiner, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		hub: hub,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Connect handles GET /ws. The request must carry a valid access token; the
// connection is registered under the token's subject.
func (h *WSHandler) Connect(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn().Err(err).Str("user_id", userID).Msg("websocket upgrade failed")
		return nil
	}

	h.hub.Join(userID, conn)
	return nil
}
