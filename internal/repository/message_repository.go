package repository

import (
	"context"
	"database/sql"
	"fmt"

	"crm-platform/internal/domain"

	"github.com/google/uuid"
)

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*domain.Message, error)
}

type messageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new instance of MessageRepository
func NewMessageRepository(db *sql.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts a new message using parameterized queries
func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, sender_id, conversation_id, body, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		message.ID,
		message.SenderID,
		message.ConversationID,
		message.Body,
		message.SentAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	return nil
}

// ListByConversation retrieves a conversation's messages ordered by sent_at
func (r *messageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*domain.Message, error) {
	query := `
		SELECT id, sender_id, conversation_id, body, sent_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY sent_at
	`

	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []*domain.Message{}
	for rows.Next() {
		message := &domain.Message{}
		err := rows.Scan(
			&message.ID,
			&message.SenderID,
			&message.ConversationID,
			&message.Body,
			&message.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, message)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}
