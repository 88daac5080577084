package domain

import (
	"context"
	"time"
)

// NotificationKind tags the notification at creation time so clients never
// have to classify by matching message text.
type NotificationKind string

const (
	NotificationKindSystem  NotificationKind = "system"
	NotificationKindMessage NotificationKind = "message"
)

// Notification rows are append-only; the only mutation is the read-state flip.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    string           `json:"user_id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	LinkURL   *string          `json:"link_url,omitempty"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkRead flips is_read for the row, scoped to userID. ErrNotFound when
	// the row is absent or owned by someone else.
	MarkRead(ctx context.Context, id int64, userID string) error
	// MarkAllRead flips every unread row for the user; other users' rows are
	// untouched. Returns the number of rows flipped.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

type NotificationUsecase interface {
	// Notify is fire-and-forget: failures are logged, never propagated to
	// the triggering operation.
	Notify(ctx context.Context, userID string, kind NotificationKind, message string, linkURL *string)
	Recent(ctx context.Context, userID string, limit int) ([]Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID string, id int64) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
