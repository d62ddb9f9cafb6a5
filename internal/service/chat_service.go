package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"crm-platform/internal/domain"
	"crm-platform/internal/repository"
	"crm-platform/internal/validation"

	"github.com/google/uuid"
)

// UserInput carries the fields accepted when creating a chat user
type UserInput struct {
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber *string
	Role        *domain.Role
}

// ChatService defines the interface for the messaging domain
type ChatService interface {
	CreateUser(ctx context.Context, input UserInput) (*domain.User, error)
	CreateConversation(ctx context.Context, participantIDs []uuid.UUID) (*domain.Conversation, error)
	SendMessage(ctx context.Context, conversationID, senderID uuid.UUID, body string) (*domain.Message, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ListConversations(ctx context.Context) ([]*domain.Conversation, error)
	ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]*domain.User, error)
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*domain.Message, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type chatService struct {
	userRepo         repository.UserRepository
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
}

// NewChatService creates a new instance of ChatService
func NewChatService(
	userRepo repository.UserRepository,
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
) ChatService {
	return &chatService{
		userRepo:         userRepo,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
	}
}

// CreateUser validates and persists a chat user. Email must be unique and
// well formed; the optional phone number uses the same accepted formats as
// CRM customers; role defaults to guest.
func (s *chatService) CreateUser(ctx context.Context, input UserInput) (*domain.User, error) {
	if !validation.ValidEmail(input.Email) {
		return nil, newFormatError("Invalid email format")
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, newUniquenessError("Email already exists")
	}

	if input.PhoneNumber != nil && *input.PhoneNumber != "" && !validation.ValidPhone(*input.PhoneNumber) {
		return nil, newFormatError("Invalid phone number format")
	}

	role := domain.RoleGuest
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, newFormatError(fmt.Sprintf("Invalid role: %s", *input.Role))
		}
		role = *input.Role
	}

	user := &domain.User{
		ID:          uuid.New(),
		Email:       input.Email,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
		Role:        role,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return nil, newUniquenessError("Email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// CreateConversation persists a conversation linking at least two distinct
// existing users; the conversation and its participant rows are written
// atomically.
func (s *chatService) CreateConversation(ctx context.Context, participantIDs []uuid.UUID) (*domain.Conversation, error) {
	ids := dedupe(participantIDs)
	if len(ids) < 2 {
		return nil, newReferentialError("At least two distinct participants are required")
	}

	participants := make([]*domain.User, 0, len(ids))
	missing := []string{}
	for _, id := range ids {
		user, err := s.userRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				missing = append(missing, id.String())
				continue
			}
			return nil, fmt.Errorf("failed to resolve participant: %w", err)
		}
		participants = append(participants, user)
	}
	if len(missing) > 0 {
		return nil, newReferentialError(fmt.Sprintf("Invalid participant IDs: %s", strings.Join(missing, ", ")))
	}

	conversation := &domain.Conversation{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		Participants: participants,
	}

	if err := s.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return conversation, nil
}

// SendMessage persists a message after checking that the conversation exists
// and the sender is one of its participants
func (s *chatService) SendMessage(ctx context.Context, conversationID, senderID uuid.UUID, body string) (*domain.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, newFormatError("Message body is required")
	}

	if _, err := s.conversationRepo.FindByID(ctx, conversationID); err != nil {
		if errors.Is(err, repository.ErrConversationNotFound) {
			return nil, newReferentialError(fmt.Sprintf("Invalid conversation ID: %s", conversationID))
		}
		return nil, fmt.Errorf("failed to resolve conversation: %w", err)
	}

	if _, err := s.userRepo.FindByID(ctx, senderID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, newReferentialError(fmt.Sprintf("Invalid sender ID: %s", senderID))
		}
		return nil, fmt.Errorf("failed to resolve sender: %w", err)
	}

	isParticipant, err := s.conversationRepo.IsParticipant(ctx, conversationID, senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check participant: %w", err)
	}
	if !isParticipant {
		return nil, newReferentialError("Sender is not a participant of the conversation")
	}

	message := &domain.Message{
		ID:             uuid.New(),
		SenderID:       senderID,
		ConversationID: conversationID,
		Body:           body,
		SentAt:         time.Now().UTC(),
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return message, nil
}

// ListUsers retrieves all chat users
func (s *chatService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListConversations retrieves all conversations
func (s *chatService) ListConversations(ctx context.Context) ([]*domain.Conversation, error) {
	conversations, err := s.conversationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// ListParticipants retrieves a conversation's participants
func (s *chatService) ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]*domain.User, error) {
	users, err := s.conversationRepo.ListParticipants(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return users, nil
}

// ListMessages retrieves a conversation's messages ordered by sent_at
func (s *chatService) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*domain.Message, error) {
	messages, err := s.messageRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// GetUser retrieves a chat user by ID
func (s *chatService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
