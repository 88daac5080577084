package domain

import (
	"context"
	"time"
)

// Conversation is a messaging thread between exactly one employer and one
// seeker, optionally scoped to a job. The (employer_id, seeker_id, job_id)
// triple is unique.
type Conversation struct {
	ID         string    `json:"id"`
	EmployerID string    `json:"employer_id"`
	SeekerID   string    `json:"seeker_id"`
	JobID      *string   `json:"job_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Joined data for list responses
	EmployerName *string `json:"employer_name,omitempty"`
	SeekerName   *string `json:"seeker_name,omitempty"`
	// OtherUserName is the counterpart's name from the caller's viewpoint
	OtherUserName *string `json:"other_user_name,omitempty"`
}

// Message is an append-only row in a conversation. No editing or deletion.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type ConversationRepository interface {
	// Create inserts the row. ErrAlreadyExists when the triple is taken.
	Create(ctx context.Context, conv *Conversation) error
	GetByID(ctx context.Context, id string) (*Conversation, error)
	// FindByTriple looks up the conversation for (employerID, seekerID,
	// jobID), jobID nil meaning the job-less thread. ErrNotFound when absent.
	FindByTriple(ctx context.Context, employerID, seekerID string, jobID *string) (*Conversation, error)
	// ListByUser returns conversations where the user is either participant,
	// most recent activity first, with both participant names joined.
	ListByUser(ctx context.Context, userID string, limit int) ([]Conversation, error)
	// Touch bumps updated_at so the thread sorts to the top.
	Touch(ctx context.Context, id string) error
}

type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	// ListByConversation returns messages ascending by creation time.
	ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]Message, error)
}

type MessagingUsecase interface {
	// StartConversation returns the existing conversation for the triple or
	// creates it. Idempotent: concurrent starts converge on one row.
	StartConversation(ctx context.Context, userID, role, otherUserID string, jobID *string) (*Conversation, error)
	// SendMessage rejects empty/whitespace-only content and callers who are
	// not participants.
	SendMessage(ctx context.Context, userID, conversationID, content string) (*Message, error)
	ListConversations(ctx context.Context, userID string) ([]Conversation, error)
	ListMessages(ctx context.Context, userID, conversationID string, page, pageSize int) ([]Message, error)
}
