package domain

import "context"

// Realtime event types pushed to subscribed clients
const (
	EventMessageCreated      = "message.created"
	EventNotificationCreated = "notification.created"
)

// Event is a row-insert notification fanned out to the recipient's live
// connections. Clients re-fetch on receipt; the payload is advisory.
type Event struct {
	Type    string      `json:"type"`
	UserID  string      `json:"user_id"` // recipient
	Payload interface{} `json:"payload,omitempty"`
}

// EventPublisher pushes events toward connected clients. Publishing is
// best-effort: a failed publish never fails the originating write.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event Event) error
}
