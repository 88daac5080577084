package postgres

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type messageRepo struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) domain.MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	msg.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx, query,
		msg.ID, msg.ConversationID, msg.SenderID, msg.Content, msg.CreatedAt)
	return err
}

func (r *messageRepo) ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]domain.Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(
			&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Content, &msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
