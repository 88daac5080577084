package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The (job_id, applicant_id) unique
// constraint is the duplicate check.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, job_id, applicant_id, status, cv_url, cover_letter_content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	app.CreatedAt = time.Now()
	if app.Status == "" {
		app.Status = domain.ApplicationStatusNew
	}

	_, err := r.db.Exec(ctx, query,
		app.ID, app.JobID, app.ApplicantID, app.Status, app.CvURL,
		app.CoverLetter, app.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID).Scan(&exists)
	return exists, err
}

// GetByID retrieves an application with joined job and applicant data
func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `
		SELECT a.id, a.job_id, a.applicant_id, a.status, a.cv_url,
		       a.cover_letter_content, a.created_at,
		       j.title AS job_title, j.company_name,
		       u.full_name AS applicant_name
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		LEFT JOIN app_users u ON a.applicant_id = u.id
		WHERE a.id = $1`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &app.CvURL,
		&app.CoverLetter, &app.CreatedAt,
		&app.JobTitle, &app.CompanyName, &app.ApplicantName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// GetByJobID retrieves all applications for a job with applicant names
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID string) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.job_id, a.applicant_id, a.status, a.cv_url,
		       a.cover_letter_content, a.created_at,
		       u.full_name AS applicant_name
		FROM applications a
		LEFT JOIN app_users u ON a.applicant_id = u.id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &app.CvURL,
			&app.CoverLetter, &app.CreatedAt, &app.ApplicantName,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// GetByApplicantID retrieves all applications for a seeker with job titles
func (r *applicationRepo) GetByApplicantID(ctx context.Context, applicantID string) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.job_id, a.applicant_id, a.status, a.cv_url,
		       a.cover_letter_content, a.created_at,
		       j.title AS job_title, j.company_name
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.applicant_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &app.CvURL,
			&app.CoverLetter, &app.CreatedAt, &app.JobTitle, &app.CompanyName,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}
