package domain

import (
	"context"
	"time"
)

// Application status. New applications start here and the flow is terminal;
// there are no further transitions.
const ApplicationStatusNew = "New"

// Application represents a job application from a seeker
type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	ApplicantID string    `json:"applicant_id"`
	Status      string    `json:"status"`
	CvURL       *string   `json:"cv_url,omitempty"`
	CoverLetter *string   `json:"cover_letter_content,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined data for list responses
	JobTitle      *string `json:"job_title,omitempty"`
	CompanyName   *string `json:"company_name,omitempty"`
	ApplicantName *string `json:"applicant_name,omitempty"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	// Create inserts the row. ErrAlreadyExists when the (job_id,
	// applicant_id) unique constraint rejects a duplicate.
	Create(ctx context.Context, app *Application) error
	Exists(ctx context.Context, jobID, applicantID string) (bool, error)
	GetByID(ctx context.Context, id string) (*Application, error)
	GetByJobID(ctx context.Context, jobID string) ([]Application, error)
	GetByApplicantID(ctx context.Context, applicantID string) ([]Application, error)
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Seeker operations
	Apply(ctx context.Context, userID, jobID string, cv *FileUpload, coverLetter string) (*Application, error)
	GetMyApplications(ctx context.Context, userID string) ([]Application, error)

	// Employer operations
	ListByJobID(ctx context.Context, userID, jobID string) ([]Application, error)
	GetApplicationDetail(ctx context.Context, userID, applicationID string) (*Application, error)
}
