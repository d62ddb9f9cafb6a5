package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crm-platform/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
)

// ConversationRepository defines the interface for conversation data access
type ConversationRepository interface {
	// Create persists the conversation and its participant associations
	// atomically; conversation.Participants must already hold the resolved users.
	Create(ctx context.Context, conversation *domain.Conversation) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	List(ctx context.Context) ([]*domain.Conversation, error)
	ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]*domain.User, error)
	IsParticipant(ctx context.Context, conversationID, userID uuid.UUID) (bool, error)
}

type conversationRepository struct {
	db *sql.DB
}

// NewConversationRepository creates a new instance of ConversationRepository
func NewConversationRepository(db *sql.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Create inserts the conversation and its participant rows within one scoped
// transaction
func (r *conversationRepository) Create(ctx context.Context, conversation *domain.Conversation) error {
	return WithinTx(ctx, r.db, func(tx *sql.Tx) error {
		convQuery := `
			INSERT INTO conversations (id, created_at)
			VALUES ($1, $2)
		`

		if _, err := tx.ExecContext(ctx, convQuery, conversation.ID, conversation.CreatedAt); err != nil {
			return fmt.Errorf("failed to create conversation: %w", err)
		}

		participantQuery := `
			INSERT INTO conversation_participants (conversation_id, user_id)
			VALUES ($1, $2)
		`

		for _, user := range conversation.Participants {
			if _, err := tx.ExecContext(ctx, participantQuery, conversation.ID, user.ID); err != nil {
				return fmt.Errorf("failed to add participant %s: %w", user.ID, err)
			}
		}

		return nil
	})
}

// FindByID retrieves a conversation by ID without its participants
func (r *conversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	query := `
		SELECT id, created_at
		FROM conversations
		WHERE id = $1
	`

	conversation := &domain.Conversation{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&conversation.ID,
		&conversation.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to find conversation by ID: %w", err)
	}

	return conversation, nil
}

// List retrieves all conversations, most recent first
func (r *conversationRepository) List(ctx context.Context) ([]*domain.Conversation, error) {
	query := `
		SELECT id, created_at
		FROM conversations
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	conversations := []*domain.Conversation{}
	for rows.Next() {
		conversation := &domain.Conversation{}
		if err := rows.Scan(&conversation.ID, &conversation.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, conversation)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversations: %w", err)
	}

	return conversations, nil
}

// ListParticipants retrieves the users participating in a conversation
func (r *conversationRepository) ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]*domain.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.phone_number, u.role, u.created_at
		FROM chat_users u
		JOIN conversation_participants cp ON cp.user_id = u.id
		WHERE cp.conversation_id = $1
		ORDER BY u.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// IsParticipant reports whether the user belongs to the conversation
func (r *conversationRepository) IsParticipant(ctx context.Context, conversationID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM conversation_participants
			WHERE conversation_id = $1 AND user_id = $2
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, conversationID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check participant: %w", err)
	}

	return exists, nil
}
