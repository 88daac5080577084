package domain

import (
	"context"
	"time"
)

// JobSeekerProfile holds the seeker-side profile. Names live on app_users to
// avoid duplication.
type JobSeekerProfile struct {
	UserID           string    `json:"user_id"`
	Bio              *string   `json:"bio,omitempty"`
	Location         *string   `json:"location,omitempty"`
	ResumeURL        *string   `json:"resume_url,omitempty"`
	Skills           []string  `json:"skills"`
	PhoneNumber      *string   `json:"phone_number,omitempty"`
	LinkedinURL      *string   `json:"linkedin_url,omitempty"`
	GithubURL        *string   `json:"github_url,omitempty"`
	PortfolioURL     *string   `json:"portfolio_url,omitempty"`
	JobAlertsEnabled bool      `json:"job_alerts_enabled"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Joined data for the alert matcher
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// EmployerProfile holds the employer-side profile.
type EmployerProfile struct {
	UserID             string    `json:"user_id"`
	CompanyName        string    `json:"company_name"`
	CompanyLogoURL     *string   `json:"company_logo_url,omitempty"`
	CompanyWebsite     *string   `json:"company_website,omitempty"`
	CompanyDescription *string   `json:"company_description,omitempty"`
	Location           *string   `json:"location,omitempty"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type SeekerProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*JobSeekerProfile, error)
	Upsert(ctx context.Context, profile *JobSeekerProfile) error
	// FetchWithAlertsEnabled returns profiles opted into job alerts, joined
	// with the owner's email and name.
	FetchWithAlertsEnabled(ctx context.Context) ([]JobSeekerProfile, error)
}

type EmployerProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*EmployerProfile, error)
	Upsert(ctx context.Context, profile *EmployerProfile) error
}

// FileUpload carries an in-memory upload from handler to usecase.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FileStorage abstracts the object storage used for resumes, avatars, and
// company logos. Upload returns the object's public URL.
type FileStorage interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
}

type ProfileUsecase interface {
	GetSeekerProfile(ctx context.Context, userID string) (*JobSeekerProfile, error)
	GetEmployerProfile(ctx context.Context, userID string) (*EmployerProfile, error)
	UpdateSeekerProfile(ctx context.Context, userID string, profile *JobSeekerProfile) error
	UpdateEmployerProfile(ctx context.Context, userID string, profile *EmployerProfile) error
	// UploadAvatar validates, downscales, and stores the image, then updates
	// the user's avatar URL. Returns the public URL.
	UploadAvatar(ctx context.Context, userID string, file *FileUpload) (string, error)
	// UploadCompanyLogo validates and stores the image, then updates the
	// employer profile. Returns the public URL.
	UploadCompanyLogo(ctx context.Context, userID string, file *FileUpload) (string, error)
}
