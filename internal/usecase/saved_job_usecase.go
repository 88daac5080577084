package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type savedJobUsecase struct {
	savedRepo domain.SavedJobRepository
	jobRepo   domain.JobRepository
}

func NewSavedJobUsecase(savedRepo domain.SavedJobRepository, jobRepo domain.JobRepository) domain.SavedJobUsecase {
	return &savedJobUsecase{
		savedRepo: savedRepo,
		jobRepo:   jobRepo,
	}
}

func (uc *savedJobUsecase) ToggleSave(ctx context.Context, userID, jobID string) (string, error) {
	if _, err := uc.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", apperror.NotFound("Job not found")
		}
		return "", apperror.Internal(err)
	}

	saved, err := uc.savedRepo.Exists(ctx, userID, jobID)
	if err != nil {
		return "", apperror.Internal(err)
	}

	if saved {
		if err := uc.savedRepo.Delete(ctx, userID, jobID); err != nil {
			return "", apperror.Internal(err)
		}
		return domain.SaveActionRemoved, nil
	}

	err = uc.savedRepo.Create(ctx, &domain.SavedJob{
		ID:     uuid.NewString(),
		UserID: userID,
		JobID:  jobID,
	})
	if err != nil {
		// A concurrent save already won; the job ends up saved either way.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return domain.SaveActionSaved, nil
		}
		return "", apperror.Internal(err)
	}
	return domain.SaveActionSaved, nil
}

func (uc *savedJobUsecase) GetSavedStatus(ctx context.Context, userID, jobID string) (bool, error) {
	saved, err := uc.savedRepo.Exists(ctx, userID, jobID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return saved, nil
}

func (uc *savedJobUsecase) ListSaved(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	saved, err := uc.savedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return saved, nil
}
