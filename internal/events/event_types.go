package events

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventVerificationResent     EventType = "verification_resent"
	EventPasswordResetRequested EventType = "password_reset_requested"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email             string      `json:"email"`
	Role              domain.Role `json:"role"`
	VerificationToken string      `json:"verification_token"`
}

// VerificationResentPayload payload.
type VerificationResentPayload struct {
	Email             string `json:"email"`
	VerificationToken string `json:"verification_token"`
}

// PasswordResetRequestedPayload payload.
type PasswordResetRequestedPayload struct {
	Email      string    `json:"email"`
	ResetToken string    `json:"reset_token"`
	ExpiresAt  time.Time `json:"expires_at"`
}
