package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobColumns = `id, employer_id, title, company_name, location, salary,
	salary_min, salary_max, category, type, description, experience_level,
	required_skills, application_deadline, views_count, created_at, updated_at`

func scanJob(row pgx.Row, job *domain.Job) error {
	return row.Scan(
		&job.ID, &job.EmployerID, &job.Title, &job.CompanyName, &job.Location,
		&job.Salary, &job.SalaryMin, &job.SalaryMax, &job.Category, &job.Type,
		&job.Description, &job.ExperienceLevel, &job.RequiredSkills,
		&job.ApplicationDeadline, &job.ViewsCount, &job.CreatedAt, &job.UpdatedAt,
	)
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (id, employer_id, title, company_name, location, salary,
			salary_min, salary_max, category, type, description, experience_level,
			required_skills, application_deadline, views_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 0, $15, $15)`

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	job.ViewsCount = 0

	_, err := r.db.Exec(ctx, query,
		job.ID, job.EmployerID, job.Title, job.CompanyName, job.Location,
		job.Salary, job.SalaryMin, job.SalaryMax, job.Category, job.Type,
		job.Description, job.ExperienceLevel, job.RequiredSkills,
		job.ApplicationDeadline, now,
	)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	var job domain.Job
	if err := scanJob(r.db.QueryRow(ctx, query, id), &job); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// Fetch lists public jobs newest first, with optional filters.
func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	var conditions []string
	var args []interface{}

	addCondition := func(cond string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Category != "" {
		addCondition("category = $%d", filter.Category)
	}
	if filter.Type != "" {
		addCondition("type = $%d", filter.Type)
	}
	if filter.Location != "" {
		addCondition("location ILIKE $%d", "%"+filter.Location+"%")
	}
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR company_name ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM jobs` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(`SELECT `+jobColumns+` FROM jobs`+where+
		` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := scanJob(rows, &job); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	return jobs, total, rows.Err()
}

func (r *jobRepo) FetchByEmployer(ctx context.Context, employerID string, limit, offset int) ([]domain.Job, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE employer_id = $1`, employerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE employer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, employerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := scanJob(rows, &job); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	return jobs, total, rows.Err()
}

// Update writes the job scoped to its employer. The combined id + employer_id
// filter is both the ownership check and the existence check.
func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `
		UPDATE jobs SET
			title = $3, company_name = $4, location = $5, salary = $6,
			salary_min = $7, salary_max = $8, category = $9, type = $10,
			description = $11, experience_level = $12, required_skills = $13,
			application_deadline = $14, updated_at = $15
		WHERE id = $1 AND employer_id = $2`

	job.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		job.ID, job.EmployerID, job.Title, job.CompanyName, job.Location,
		job.Salary, job.SalaryMin, job.SalaryMax, job.Category, job.Type,
		job.Description, job.ExperienceLevel, job.RequiredSkills,
		job.ApplicationDeadline, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete succeeds only when exactly one row was removed.
func (r *jobRepo) Delete(ctx context.Context, id, employerID string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM jobs WHERE id = $1 AND employer_id = $2`, id, employerID)
	if err != nil {
		return err
	}
	if result.RowsAffected() != 1 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementViews is a single atomic update; no read-modify-write.
func (r *jobRepo) IncrementViews(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE jobs SET views_count = views_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) FetchPostedSince(ctx context.Context, since time.Time, limit int) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
		WHERE created_at > $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := scanJob(rows, &job); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
