package usecase

import (
	"context"
	"errors"
	"log/slog"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

const defaultNotificationLimit = 20

type notificationUsecase struct {
	repo      domain.NotificationRepository
	publisher domain.EventPublisher
}

func NewNotificationUsecase(repo domain.NotificationRepository, publisher domain.EventPublisher) domain.NotificationUsecase {
	return &notificationUsecase{
		repo:      repo,
		publisher: publisher,
	}
}

// Notify inserts the row and pushes a realtime event. Both steps are
// best-effort; the triggering operation never observes a failure here.
func (uc *notificationUsecase) Notify(ctx context.Context, userID string, kind domain.NotificationKind, message string, linkURL *string) {
	n := &domain.Notification{
		UserID:  userID,
		Kind:    kind,
		Message: message,
		LinkURL: linkURL,
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		slog.Warn("failed to create notification", "user_id", userID, "kind", kind, "error", err)
		return
	}

	if uc.publisher != nil {
		err := uc.publisher.PublishEvent(ctx, domain.Event{
			Type:    domain.EventNotificationCreated,
			UserID:  userID,
			Payload: n,
		})
		if err != nil {
			slog.Warn("failed to publish notification event", "user_id", userID, "error", err)
		}
	}
}

func (uc *notificationUsecase) Recent(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = defaultNotificationLimit
	}
	items, err := uc.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

func (uc *notificationUsecase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := uc.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return count, nil
}

func (uc *notificationUsecase) MarkRead(ctx context.Context, userID string, id int64) error {
	if err := uc.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Notification not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (uc *notificationUsecase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	updated, err := uc.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return updated, nil
}
