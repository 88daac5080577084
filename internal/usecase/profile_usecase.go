package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/upload"
)

const (
	avatarMaxDimension = 512
	avatarJPEGQuality  = 85
)

type profileUsecase struct {
	seekerRepo    domain.SeekerProfileRepository
	employerRepo  domain.EmployerProfileRepository
	userRepo      domain.UserRepository
	storage       domain.FileStorage
	avatarsBucket string
}

func NewProfileUsecase(
	seekerRepo domain.SeekerProfileRepository,
	employerRepo domain.EmployerProfileRepository,
	userRepo domain.UserRepository,
	storage domain.FileStorage,
	avatarsBucket string,
) domain.ProfileUsecase {
	return &profileUsecase{
		seekerRepo:    seekerRepo,
		employerRepo:  employerRepo,
		userRepo:      userRepo,
		storage:       storage,
		avatarsBucket: avatarsBucket,
	}
}

func (uc *profileUsecase) GetSeekerProfile(ctx context.Context, userID string) (*domain.JobSeekerProfile, error) {
	profile, err := uc.seekerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// A fresh user simply has no profile row yet.
			return &domain.JobSeekerProfile{UserID: userID, Skills: []string{}}, nil
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (uc *profileUsecase) GetEmployerProfile(ctx context.Context, userID string) (*domain.EmployerProfile, error) {
	profile, err := uc.employerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Employer profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (uc *profileUsecase) UpdateSeekerProfile(ctx context.Context, userID string, profile *domain.JobSeekerProfile) error {
	profile.UserID = userID
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if err := uc.seekerRepo.Upsert(ctx, profile); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *profileUsecase) UpdateEmployerProfile(ctx context.Context, userID string, profile *domain.EmployerProfile) error {
	if profile.CompanyName == "" {
		return apperror.BadRequest("Company name is required")
	}
	profile.UserID = userID
	if err := uc.employerRepo.Upsert(ctx, profile); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (uc *profileUsecase) UploadAvatar(ctx context.Context, userID string, file *domain.FileUpload) (string, error) {
	data, contentType, err := prepareImage(file)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s/%s.jpg", userID, uuid.NewString())
	url, err := uc.storage.Upload(ctx, uc.avatarsBucket, key, data, contentType)
	if err != nil {
		return "", apperror.Internal(err)
	}

	if err := uc.userRepo.UpdateAvatarURL(ctx, userID, url); err != nil {
		return "", apperror.Internal(err)
	}
	return url, nil
}

func (uc *profileUsecase) UploadCompanyLogo(ctx context.Context, userID string, file *domain.FileUpload) (string, error) {
	profile, err := uc.employerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", apperror.BadRequest("Please create your company profile first")
		}
		return "", apperror.Internal(err)
	}

	data, contentType, err := prepareImage(file)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("logos/%s/%s.jpg", userID, uuid.NewString())
	url, err := uc.storage.Upload(ctx, uc.avatarsBucket, key, data, contentType)
	if err != nil {
		return "", apperror.Internal(err)
	}

	profile.CompanyLogoURL = &url
	if err := uc.employerRepo.Upsert(ctx, profile); err != nil {
		return "", apperror.Internal(err)
	}
	return url, nil
}

// prepareImage validates the upload and downscales it to a bounded JPEG.
// Falls back to the original bytes when re-encoding fails.
func prepareImage(file *domain.FileUpload) ([]byte, string, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, "", apperror.BadRequest("No file provided")
	}
	if len(file.Data) > upload.MaxFileSize {
		return nil, "", apperror.BadRequest("File size must not exceed 5MB")
	}
	if result := upload.ValidateImage(file.Filename, file.Data, file.ContentType); !result.Valid {
		return nil, "", apperror.BadRequest("Invalid image file: " + result.Error)
	}

	compressed, err := upload.CompressImage(file.Data, avatarMaxDimension, avatarJPEGQuality)
	if err != nil {
		slog.Warn("image compression failed, storing original", "filename", file.Filename, "error", err)
		return file.Data, file.ContentType, nil
	}
	return compressed, "image/jpeg", nil
}
