package postgres

import (
	"context"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type savedJobRepo struct {
	db *pgxpool.Pool
}

func NewSavedJobRepository(db *pgxpool.Pool) domain.SavedJobRepository {
	return &savedJobRepo{db: db}
}

func (r *savedJobRepo) Create(ctx context.Context, saved *domain.SavedJob) error {
	query := `
		INSERT INTO saved_jobs (id, user_id, job_id, created_at)
		VALUES ($1, $2, $3, $4)`

	saved.CreatedAt = time.Now()
	_, err := r.db.Exec(ctx, query, saved.ID, saved.UserID, saved.JobID, saved.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *savedJobRepo) Delete(ctx context.Context, userID, jobID string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *savedJobRepo) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM saved_jobs WHERE user_id = $1 AND job_id = $2)`,
		userID, jobID).Scan(&exists)
	return exists, err
}

// ListByUser joins job details for the saved-jobs page
func (r *savedJobRepo) ListByUser(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	query := `
		SELECT s.id, s.user_id, s.job_id, s.created_at,
		       j.title, j.company_name, j.location
		FROM saved_jobs s
		LEFT JOIN jobs j ON s.job_id = j.id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saved []domain.SavedJob
	for rows.Next() {
		var s domain.SavedJob
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.JobID, &s.CreatedAt,
			&s.JobTitle, &s.CompanyName, &s.Location,
		); err != nil {
			return nil, err
		}
		saved = append(saved, s)
	}
	return saved, rows.Err()
}
