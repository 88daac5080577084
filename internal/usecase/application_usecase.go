package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/upload"
)

type applicationUsecase struct {
	appRepo       domain.ApplicationRepository
	jobRepo       domain.JobRepository
	storage       domain.FileStorage
	notifier      domain.NotificationUsecase
	resumesBucket string
}

func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	storage domain.FileStorage,
	notifier domain.NotificationUsecase,
	resumesBucket string,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		storage:       storage,
		notifier:      notifier,
		resumesBucket: resumesBucket,
	}
}

// Apply validates the CV, stores it, and inserts the application. The file is
// checked before any storage call so oversized or malformed uploads never
// leave the process.
func (uc *applicationUsecase) Apply(ctx context.Context, userID, jobID string, cv *domain.FileUpload, coverLetter string) (*domain.Application, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.EmployerID == userID {
		return nil, apperror.BadRequest("You cannot apply to your own job posting")
	}

	// Duplicate check before the upload so a repeat application never leaves
	// an orphaned CV in the resumes bucket. The unique constraint on the
	// insert below still catches concurrent applies.
	exists, err := uc.appRepo.Exists(ctx, jobID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied for this job.")
	}

	var cvURL *string
	if cv != nil {
		if len(cv.Data) > upload.MaxFileSize {
			return nil, apperror.BadRequest("File size must not exceed 5MB")
		}
		if result := upload.ValidateCV(cv.Filename, cv.Data, cv.ContentType); !result.Valid {
			return nil, apperror.BadRequest("Invalid CV file: " + result.Error)
		}

		key := fmt.Sprintf("%s/%s-%s", userID, uuid.NewString(), upload.SanitizeFilename(cv.Filename))
		url, err := uc.storage.Upload(ctx, uc.resumesBucket, key, cv.Data, cv.ContentType)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		cvURL = &url
	}

	app := &domain.Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		ApplicantID: userID,
		Status:      domain.ApplicationStatusNew,
		CvURL:       cvURL,
	}
	if trimmed := strings.TrimSpace(coverLetter); trimmed != "" {
		app.CoverLetter = &trimmed
	}

	if err := uc.appRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, apperror.Conflict("You have already applied for this job.")
		}
		return nil, apperror.Internal(err)
	}

	link := "/dashboard/applications/" + app.ID
	uc.notifier.Notify(ctx, job.EmployerID, domain.NotificationKindSystem,
		fmt.Sprintf("New application received for %q", job.Title), &link)

	return app, nil
}

func (uc *applicationUsecase) GetMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	apps, err := uc.appRepo.GetByApplicantID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (uc *applicationUsecase) ListByJobID(ctx context.Context, userID, jobID string) ([]domain.Application, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.EmployerID != userID {
		return nil, apperror.Forbidden("You do not own this job posting")
	}

	apps, err := uc.appRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (uc *applicationUsecase) GetApplicationDetail(ctx context.Context, userID, applicationID string) (*domain.Application, error) {
	app, err := uc.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	job, err := uc.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if job.EmployerID != userID {
		return nil, apperror.Forbidden("You do not own this job posting")
	}
	return app, nil
}
