package ports

// Registry is the connection registry for the real-time push channel. It maps
// user ids to live connections; state is process-local and lost on restart,
// so clients must rejoin their channel after reconnecting.
type Registry interface {
	// Emit sends a named event to every connection joined under userID.
	// Delivery is best-effort; unknown users are a no-op.
	Emit(userID, event string, payload map[string]any)
}
