package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/captcha"
)

// CaptchaVerifier checks a client-supplied CAPTCHA token. Verification is
// skipped entirely when the verifier is not configured.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) error
	IsConfigured() bool
}

type jobUsecase struct {
	jobRepo      domain.JobRepository
	employerRepo domain.EmployerProfileRepository
	captcha      CaptchaVerifier
}

func NewJobUsecase(jobRepo domain.JobRepository, employerRepo domain.EmployerProfileRepository, verifier CaptchaVerifier) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:      jobRepo,
		employerRepo: employerRepo,
		captcha:      verifier,
	}
}

func (uc *jobUsecase) CreateJob(ctx context.Context, userID string, job *domain.Job, captchaToken string) error {
	if uc.captcha != nil && uc.captcha.IsConfigured() {
		if err := uc.captcha.Verify(ctx, captchaToken); err != nil {
			if errors.Is(err, captcha.ErrMissingToken) {
				return apperror.BadRequest("CAPTCHA token is required")
			}
			return apperror.BadRequest("CAPTCHA verification failed. Please try again.")
		}
	}

	job.Title = strings.TrimSpace(job.Title)
	job.CompanyName = strings.TrimSpace(job.CompanyName)
	job.Category = strings.TrimSpace(job.Category)
	job.Description = strings.TrimSpace(job.Description)
	if job.Title == "" || job.CompanyName == "" || job.Category == "" || job.Description == "" {
		return apperror.BadRequest("Title, company name, category, and description are required")
	}
	if job.SalaryMin < 0 || job.SalaryMax < 0 || (job.SalaryMax > 0 && job.SalaryMin > job.SalaryMax) {
		return apperror.BadRequest("Invalid salary range")
	}

	// Posting requires a completed employer profile.
	if _, err := uc.employerRepo.GetByUserID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.BadRequest("Please complete your company profile before posting a job")
		}
		return apperror.Internal(err)
	}

	job.ID = uuid.NewString()
	job.EmployerID = userID
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *jobUsecase) GetJobDetails(ctx context.Context, id string) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (uc *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter, page, pageSize int) ([]domain.Job, int64, error) {
	limit, offset := paginate(page, pageSize)
	jobs, total, err := uc.jobRepo.Fetch(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

func (uc *jobUsecase) ListJobsByEmployer(ctx context.Context, userID string, page, pageSize int) ([]domain.Job, int64, error) {
	limit, offset := paginate(page, pageSize)
	jobs, total, err := uc.jobRepo.FetchByEmployer(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

func (uc *jobUsecase) UpdateJob(ctx context.Context, userID string, job *domain.Job) error {
	job.Title = strings.TrimSpace(job.Title)
	job.CompanyName = strings.TrimSpace(job.CompanyName)
	if job.Title == "" || job.CompanyName == "" {
		return apperror.BadRequest("Title and company name are required")
	}

	job.EmployerID = userID
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The row either does not exist or belongs to someone else.
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (uc *jobUsecase) DeleteJob(ctx context.Context, userID, jobID string) error {
	if err := uc.jobRepo.Delete(ctx, jobID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (uc *jobUsecase) RegisterView(ctx context.Context, jobID string) {
	if err := uc.jobRepo.IncrementViews(ctx, jobID); err != nil {
		slog.Warn("failed to increment job views", "job_id", jobID, "error", err)
	}
}

// paginate normalizes page/pageSize into limit/offset.
func paginate(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return pageSize, (page - 1) * pageSize
}
