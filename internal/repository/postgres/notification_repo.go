package postgres

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, kind, message, link_url, is_read, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
		RETURNING id`

	n.CreatedAt = time.Now()
	n.IsRead = false

	return r.db.QueryRow(ctx, query,
		n.UserID, n.Kind, n.Message, n.LinkURL, n.CreatedAt).Scan(&n.ID)
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	query := `
		SELECT id, user_id, kind, message, link_url, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.Kind, &n.Message, &n.LinkURL, &n.IsRead, &n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *notificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`,
		userID).Scan(&count)
	return count, err
}

// MarkRead is scoped to the owner; flipping someone else's row is a not-found.
func (r *notificationRepo) MarkRead(ctx context.Context, id int64, userID string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`,
		userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
