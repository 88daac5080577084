package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type conversationRepo struct {
	db *pgxpool.Pool
}

func NewConversationRepository(db *pgxpool.Pool) domain.ConversationRepository {
	return &conversationRepo{db: db}
}

// Create inserts a new conversation. A unique index over (employer_id,
// seeker_id, COALESCE(job_id, '')) enforces at most one thread per triple,
// including the job-less case.
func (r *conversationRepo) Create(ctx context.Context, conv *domain.Conversation) error {
	query := `
		INSERT INTO conversations (id, employer_id, seeker_id, job_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`

	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		conv.ID, conv.EmployerID, conv.SeekerID, conv.JobID, now)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *conversationRepo) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	query := `
		SELECT id, employer_id, seeker_id, job_id, created_at, updated_at
		FROM conversations
		WHERE id = $1`

	var conv domain.Conversation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&conv.ID, &conv.EmployerID, &conv.SeekerID, &conv.JobID,
		&conv.CreatedAt, &conv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepo) FindByTriple(ctx context.Context, employerID, seekerID string, jobID *string) (*domain.Conversation, error) {
	query := `
		SELECT id, employer_id, seeker_id, job_id, created_at, updated_at
		FROM conversations
		WHERE employer_id = $1 AND seeker_id = $2 AND COALESCE(job_id, '') = COALESCE($3, '')`

	var conv domain.Conversation
	err := r.db.QueryRow(ctx, query, employerID, seekerID, jobID).Scan(
		&conv.ID, &conv.EmployerID, &conv.SeekerID, &conv.JobID,
		&conv.CreatedAt, &conv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// ListByUser returns the caller's conversations, latest activity first, with
// both participant names for rendering the counterpart.
func (r *conversationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Conversation, error) {
	query := `
		SELECT c.id, c.employer_id, c.seeker_id, c.job_id, c.created_at, c.updated_at,
		       e.full_name AS employer_name, s.full_name AS seeker_name
		FROM conversations c
		LEFT JOIN app_users e ON c.employer_id = e.id
		LEFT JOIN app_users s ON c.seeker_id = s.id
		WHERE c.employer_id = $1 OR c.seeker_id = $1
		ORDER BY c.updated_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		var conv domain.Conversation
		if err := rows.Scan(
			&conv.ID, &conv.EmployerID, &conv.SeekerID, &conv.JobID,
			&conv.CreatedAt, &conv.UpdatedAt,
			&conv.EmployerName, &conv.SeekerName,
		); err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

func (r *conversationRepo) Touch(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE conversations SET updated_at = $2 WHERE id = $1`, id, time.Now())
	return err
}
