package domain

import (
	"context"
	"time"
)

type Job struct {
	ID                  string     `json:"id"`
	EmployerID          string     `json:"employer_id"`
	Title               string     `json:"title"`
	CompanyName         string     `json:"company_name"`
	Location            string     `json:"location"`
	Salary              string     `json:"salary"` // Textual representation (e.g. "30k - 50k")
	SalaryMin           int64      `json:"salary_min"`
	SalaryMax           int64      `json:"salary_max"`
	Category            string     `json:"category"`
	Type                string     `json:"type"` // Full-time, Part-time, Contract...
	Description         string     `json:"description"`
	ExperienceLevel     *string    `json:"experience_level,omitempty"`
	RequiredSkills      *string    `json:"required_skills,omitempty"` // Comma-separated list
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	ViewsCount          int64      `json:"views_count"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// JobFilter narrows public job listings.
type JobFilter struct {
	Category string
	Type     string
	Location string
	Keyword  string // Matches title, company name, and description
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter, limit, offset int) ([]Job, int64, error)
	FetchByEmployer(ctx context.Context, employerID string, limit, offset int) ([]Job, int64, error)
	// Update writes the job, scoped to employerID. ErrNotFound when no row
	// matched, which doubles as the ownership check.
	Update(ctx context.Context, job *Job) error
	// Delete removes the job scoped to employerID. ErrNotFound unless
	// exactly one row was deleted.
	Delete(ctx context.Context, id, employerID string) error
	// IncrementViews bumps views_count atomically.
	IncrementViews(ctx context.Context, id string) error
	// FetchPostedSince returns jobs created after the cutoff, newest first.
	// Used by the alert matcher.
	FetchPostedSince(ctx context.Context, since time.Time, limit int) ([]Job, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, userID string, job *Job, captchaToken string) error
	GetJobDetails(ctx context.Context, id string) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter, page, pageSize int) ([]Job, int64, error)
	ListJobsByEmployer(ctx context.Context, userID string, page, pageSize int) ([]Job, int64, error)
	UpdateJob(ctx context.Context, userID string, job *Job) error
	DeleteJob(ctx context.Context, userID, jobID string) error
	// RegisterView is best-effort: failures are logged, never returned.
	RegisterView(ctx context.Context, jobID string)
}
