package domain

import (
	"context"
	"time"
)

// Save toggle outcomes
const (
	SaveActionSaved   = "saved"
	SaveActionRemoved = "removed"
)

type SavedJob struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	JobID     string    `json:"job_id"`
	CreatedAt time.Time `json:"created_at"`

	// Joined job data for list responses
	JobTitle    *string `json:"job_title,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	Location    *string `json:"location,omitempty"`
}

type SavedJobRepository interface {
	// Create inserts the row. ErrAlreadyExists when (user_id, job_id) is
	// already saved.
	Create(ctx context.Context, saved *SavedJob) error
	Delete(ctx context.Context, userID, jobID string) error
	Exists(ctx context.Context, userID, jobID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]SavedJob, error)
}

type SavedJobUsecase interface {
	// ToggleSave saves the job if unsaved, removes it otherwise. Returns
	// SaveActionSaved or SaveActionRemoved.
	ToggleSave(ctx context.Context, userID, jobID string) (string, error)
	GetSavedStatus(ctx context.Context, userID, jobID string) (bool, error)
	ListSaved(ctx context.Context, userID string) ([]SavedJob, error)
}
