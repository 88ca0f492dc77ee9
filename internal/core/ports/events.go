package ports

import (
	"context"
	"time"
)

// EmailIntent is an outbound mail composed by the service that owns the
// mutation. Delivery is best-effort.
type EmailIntent struct {
	To      string
	Subject string
	Body    string
}

// NoticeIntent is a notification for one user: persisted as a Notification
// record, pushed over the user's real-time channel, or both.
type NoticeIntent struct {
	UserID  string
	Type    string
	Payload map[string]any
	Persist bool
	Push    bool
}

// DomainEvent is published after a domain operation durably commits. The
// audit recorder and the side-effect dispatcher consume it independently;
// their failures never alter the response of the request that produced it.
type DomainEvent struct {
	Action     string
	ActorID    string
	TargetType string
	TargetID   string
	Details    map[string]any
	OccurredAt time.Time

	Emails  []EmailIntent
	Notices []NoticeIntent
}

// EventBus accepts post-commit events for asynchronous fan-out.
type EventBus interface {
	Publish(event DomainEvent)
}

// EventConsumer processes one event. Consumers run on the dispatcher's
// worker goroutines; per-target ordering is preserved.
type EventConsumer interface {
	Name() string
	Consume(ctx context.Context, event DomainEvent) error
}
