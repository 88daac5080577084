package domain

import (
	"context"
	"time"
)

// User roles
const (
	RoleJobSeeker = "job_seeker"
	RoleEmployer  = "employer"
)

// AppUser mirrors a row in app_users. The id references the identity
// provider's user id (UUID).
type AppUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*AppUser, error)
	// Upsert creates or updates the row keyed by id. Used for OAuth users
	// whose row may not exist yet when they pick a role.
	Upsert(ctx context.Context, user *AppUser) error
	UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error
}

type AuthUsecase interface {
	GetCurrentUser(ctx context.Context, userID string) (*AppUser, error)
	// SetRole assigns job_seeker or employer to the authenticated user,
	// creating the app_users row if the signup trigger has not yet.
	SetRole(ctx context.Context, userID, email, fullName, avatarURL, role string) (*AppUser, error)
}
