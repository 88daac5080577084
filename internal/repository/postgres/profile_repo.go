package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type seekerProfileRepo struct {
	db *pgxpool.Pool
}

func NewSeekerProfileRepository(db *pgxpool.Pool) domain.SeekerProfileRepository {
	return &seekerProfileRepo{db: db}
}

func (r *seekerProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.JobSeekerProfile, error) {
	query := `
		SELECT user_id, bio, location, resume_url, skills, phone_number,
		       linkedin_url, github_url, portfolio_url, job_alerts_enabled, updated_at
		FROM job_seeker_profiles
		WHERE user_id = $1`

	var p domain.JobSeekerProfile
	var skills []string
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Bio, &p.Location, &p.ResumeURL, pq.Array(&skills),
		&p.PhoneNumber, &p.LinkedinURL, &p.GithubURL, &p.PortfolioURL,
		&p.JobAlertsEnabled, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Skills = skills
	return &p, nil
}

func (r *seekerProfileRepo) Upsert(ctx context.Context, profile *domain.JobSeekerProfile) error {
	query := `
		INSERT INTO job_seeker_profiles
			(user_id, bio, location, resume_url, skills, phone_number,
			 linkedin_url, github_url, portfolio_url, job_alerts_enabled, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			resume_url = EXCLUDED.resume_url,
			skills = EXCLUDED.skills,
			phone_number = EXCLUDED.phone_number,
			linkedin_url = EXCLUDED.linkedin_url,
			github_url = EXCLUDED.github_url,
			portfolio_url = EXCLUDED.portfolio_url,
			job_alerts_enabled = EXCLUDED.job_alerts_enabled,
			updated_at = EXCLUDED.updated_at`

	profile.UpdatedAt = time.Now()
	_, err := r.db.Exec(ctx, query,
		profile.UserID, profile.Bio, profile.Location, profile.ResumeURL,
		pq.Array(profile.Skills), profile.PhoneNumber, profile.LinkedinURL,
		profile.GithubURL, profile.PortfolioURL, profile.JobAlertsEnabled,
		profile.UpdatedAt,
	)
	return err
}

// FetchWithAlertsEnabled joins the owner's contact details for the matcher.
func (r *seekerProfileRepo) FetchWithAlertsEnabled(ctx context.Context) ([]domain.JobSeekerProfile, error) {
	query := `
		SELECT p.user_id, p.bio, p.location, p.resume_url, p.skills,
		       p.phone_number, p.linkedin_url, p.github_url, p.portfolio_url,
		       p.job_alerts_enabled, p.updated_at,
		       u.email, u.full_name
		FROM job_seeker_profiles p
		JOIN app_users u ON p.user_id = u.id
		WHERE p.job_alerts_enabled = TRUE`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.JobSeekerProfile
	for rows.Next() {
		var p domain.JobSeekerProfile
		var skills []string
		if err := rows.Scan(
			&p.UserID, &p.Bio, &p.Location, &p.ResumeURL, pq.Array(&skills),
			&p.PhoneNumber, &p.LinkedinURL, &p.GithubURL, &p.PortfolioURL,
			&p.JobAlertsEnabled, &p.UpdatedAt,
			&p.Email, &p.FullName,
		); err != nil {
			return nil, err
		}
		p.Skills = skills
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

type employerProfileRepo struct {
	db *pgxpool.Pool
}

func NewEmployerProfileRepository(db *pgxpool.Pool) domain.EmployerProfileRepository {
	return &employerProfileRepo{db: db}
}

func (r *employerProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.EmployerProfile, error) {
	query := `
		SELECT user_id, company_name, company_logo_url, company_website,
		       company_description, location, updated_at
		FROM employer_profiles
		WHERE user_id = $1`

	var p domain.EmployerProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.CompanyName, &p.CompanyLogoURL, &p.CompanyWebsite,
		&p.CompanyDescription, &p.Location, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *employerProfileRepo) Upsert(ctx context.Context, profile *domain.EmployerProfile) error {
	query := `
		INSERT INTO employer_profiles
			(user_id, company_name, company_logo_url, company_website,
			 company_description, location, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			company_logo_url = COALESCE(EXCLUDED.company_logo_url, employer_profiles.company_logo_url),
			company_website = EXCLUDED.company_website,
			company_description = EXCLUDED.company_description,
			location = EXCLUDED.location,
			updated_at = EXCLUDED.updated_at`

	profile.UpdatedAt = time.Now()
	_, err := r.db.Exec(ctx, query,
		profile.UserID, profile.CompanyName, profile.CompanyLogoURL,
		profile.CompanyWebsite, profile.CompanyDescription, profile.Location,
		profile.UpdatedAt,
	)
	return err
}
