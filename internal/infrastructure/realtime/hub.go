// Package realtime implements the per-user push channel over WebSocket.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/openhire/recruitment-api/internal/api/metrics"
)

// message is the wire envelope for pushed events.
type message struct {
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Hub is the process-local connection registry: it maps user ids to live
// WebSocket connections. State does not survive a restart; clients must
// rejoin their channel after reconnecting.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]map[*websocket.Conn]struct{}
	logger zerolog.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]map[*websocket.Conn]struct{}),
		logger: logger,
	}
}

// Join registers a connection under the given user id and blocks reading
// until the peer disconnects, then cleans the registration up.
func (h *Hub) Join(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[userID][conn] = struct{}{}
	h.mu.Unlock()

	metrics.WebsocketConnections.Inc()

	h.logger.Info().Str("user_id", userID).Msg("realtime channel joined")

	// Reads are discarded; the channel is server-to-client only. The read
	// loop exists to detect disconnects and answer control frames.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.drop(userID, conn)
}

// Emit sends a named event to every connection joined under userID.
// Delivery is best-effort; failed connections are dropped.
func (h *Hub) Emit(userID, event string, payload map[string]any) {
	raw, err := json.Marshal(message{Event: event, Payload: payload})
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns[userID]))
	for conn := range h.conns[userID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			h.logger.Warn().Err(err).Str("user_id", userID).Str("event", event).Msg("realtime push failed")
			h.drop(userID, conn)
		}
	}
}

func (h *Hub) drop(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	if set, ok := h.conns[userID]; ok {
		if _, present := set[conn]; present {
			delete(set, conn)
			metrics.WebsocketConnections.Dec()
		}
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
	h.mu.Unlock()
	_ = conn.Close()
}
