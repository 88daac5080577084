package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
)

const maxMessageLength = 4000

type messagingUsecase struct {
	convRepo  domain.ConversationRepository
	msgRepo   domain.MessageRepository
	userRepo  domain.UserRepository
	notifier  domain.NotificationUsecase
	publisher domain.EventPublisher
}

func NewMessagingUsecase(
	convRepo domain.ConversationRepository,
	msgRepo domain.MessageRepository,
	userRepo domain.UserRepository,
	notifier domain.NotificationUsecase,
	publisher domain.EventPublisher,
) domain.MessagingUsecase {
	return &messagingUsecase{
		convRepo:  convRepo,
		msgRepo:   msgRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		publisher: publisher,
	}
}

// StartConversation resolves the caller and counterpart into the
// (employer, seeker) pair by the caller's role, then finds or creates the
// thread. A losing racer re-reads the winner's row, so both callers get the
// same conversation.
func (uc *messagingUsecase) StartConversation(ctx context.Context, userID, role, otherUserID string, jobID *string) (*domain.Conversation, error) {
	if otherUserID == "" {
		return nil, apperror.BadRequest("Other user ID is required")
	}
	if otherUserID == userID {
		return nil, apperror.BadRequest("You cannot start a conversation with yourself")
	}

	if _, err := uc.userRepo.GetByID(ctx, otherUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	var employerID, seekerID string
	switch role {
	case domain.RoleEmployer:
		employerID, seekerID = userID, otherUserID
	case domain.RoleJobSeeker:
		employerID, seekerID = otherUserID, userID
	default:
		return nil, apperror.Forbidden("Select a role before messaging")
	}

	conv, err := uc.convRepo.FindByTriple(ctx, employerID, seekerID, jobID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	conv = &domain.Conversation{
		ID:         uuid.NewString(),
		EmployerID: employerID,
		SeekerID:   seekerID,
		JobID:      jobID,
	}
	err = uc.convRepo.Create(ctx, conv)
	if err == nil {
		return conv, nil
	}
	if errors.Is(err, domain.ErrAlreadyExists) {
		conv, err = uc.convRepo.FindByTriple(ctx, employerID, seekerID, jobID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return conv, nil
	}
	return nil, apperror.Internal(err)
}

func (uc *messagingUsecase) SendMessage(ctx context.Context, userID, conversationID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("Message content cannot be empty")
	}
	if len(content) > maxMessageLength {
		return nil, apperror.BadRequest("Message is too long")
	}

	conv, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Conversation not found")
		}
		return nil, apperror.Internal(err)
	}
	if conv.EmployerID != userID && conv.SeekerID != userID {
		return nil, apperror.Forbidden("You are not a participant in this conversation")
	}

	msg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        content,
	}
	if err := uc.msgRepo.Create(ctx, msg); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := uc.convRepo.Touch(ctx, conversationID); err != nil {
		slog.Warn("failed to touch conversation", "conversation_id", conversationID, "error", err)
	}

	recipient := conv.EmployerID
	if recipient == userID {
		recipient = conv.SeekerID
	}

	senderName := "Someone"
	if sender, err := uc.userRepo.GetByID(ctx, userID); err == nil && sender.FullName != "" {
		senderName = sender.FullName
	}
	link := "/dashboard/chat/" + conversationID
	uc.notifier.Notify(ctx, recipient, domain.NotificationKindMessage,
		fmt.Sprintf("New message from %s", senderName), &link)

	if uc.publisher != nil {
		err := uc.publisher.PublishEvent(ctx, domain.Event{
			Type:    domain.EventMessageCreated,
			UserID:  recipient,
			Payload: msg,
		})
		if err != nil {
			slog.Warn("failed to publish message event", "conversation_id", conversationID, "error", err)
		}
	}

	return msg, nil
}

func (uc *messagingUsecase) ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	convs, err := uc.convRepo.ListByUser(ctx, userID, 50)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	// Present the counterpart's name from the caller's viewpoint.
	for i := range convs {
		if convs[i].EmployerID == userID {
			convs[i].OtherUserName = convs[i].SeekerName
		} else {
			convs[i].OtherUserName = convs[i].EmployerName
		}
	}
	return convs, nil
}

func (uc *messagingUsecase) ListMessages(ctx context.Context, userID, conversationID string, page, pageSize int) ([]domain.Message, error) {
	conv, err := uc.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Conversation not found")
		}
		return nil, apperror.Internal(err)
	}
	if conv.EmployerID != userID && conv.SeekerID != userID {
		return nil, apperror.Forbidden("You are not a participant in this conversation")
	}

	limit, offset := paginate(page, pageSize)
	msgs, err := uc.msgRepo.ListByConversation(ctx, conversationID, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return msgs, nil
}
