package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role classifies a chat user's level of access
type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAdmin:
		return true
	}
	return false
}

// User represents a participant in the messaging domain.
// Distinct from Customer: users exchange messages, customers place orders.
type User struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	PhoneNumber *string   `json:"phone_number,omitempty" db:"phone_number"`
	Role        Role      `json:"role" db:"role"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Conversation groups two or more users exchanging messages
type Conversation struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Participants is populated by nested query resolution.
	Participants []*User `json:"participants,omitempty" db:"-"`
}

// Message belongs to one sender and one conversation; listings are ordered
// by SentAt ascending.
type Message struct {
	ID             uuid.UUID `json:"id" db:"id"`
	SenderID       uuid.UUID `json:"sender_id" db:"sender_id"`
	ConversationID uuid.UUID `json:"conversation_id" db:"conversation_id"`
	Body           string    `json:"body" db:"body"`
	SentAt         time.Time `json:"sent_at" db:"sent_at"`
}
