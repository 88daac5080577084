package usecase

import (
	"context"
	"strings"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

func (uc *authUsecase) GetCurrentUser(ctx context.Context, userID string) (*domain.AppUser, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

// SetRole assigns a role via upsert. OAuth users can reach role selection
// before the signup trigger creates their app_users row.
func (uc *authUsecase) SetRole(ctx context.Context, userID, email, fullName, avatarURL, role string) (*domain.AppUser, error) {
	if role != domain.RoleJobSeeker && role != domain.RoleEmployer {
		return nil, apperror.BadRequest("Role must be job_seeker or employer")
	}
	if userID == "" || email == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	if fullName == "" {
		fullName = usernameFromEmail(email)
	}

	user := &domain.AppUser{
		ID:       userID,
		Email:    email,
		Role:     role,
		FullName: fullName,
		Username: buildUsername(email, userID),
	}
	if avatarURL != "" {
		user.AvatarURL = &avatarURL
	}

	if err := uc.userRepo.Upsert(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "User"
}

// buildUsername derives a lowercase handle from the email local part,
// falling back to a user-id prefix.
func buildUsername(email, userID string) string {
	local := strings.ToLower(usernameFromEmail(email))

	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	handle := b.String()
	if handle == "" || handle == "user" {
		if len(userID) >= 8 {
			return "user_" + userID[:8]
		}
		return "user_" + userID
	}
	if len(handle) > 20 {
		handle = handle[:20]
	}
	return handle
}
