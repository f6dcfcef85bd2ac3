package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/lostfound/services/user/domain/models"
)

// TopicUserRegistered is the Watermill topic published when an account is created.
const TopicUserRegistered = "user.registered"

// Topics lists every topic the user context publishes.
var Topics = []string{TopicUserRegistered}

// UserRegisteredEvent is published after a new User is persisted. The
// password hash is never part of the payload.
type UserRegisteredEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewUserRegistered builds the event for u.
func NewUserRegistered(u *models.User) UserRegisteredEvent {
	return UserRegisteredEvent{
		EventID:    uuid.New(),
		Version:    1,
		UserID:     u.ID,
		Email:      u.Email,
		Role:       u.Role,
		OccurredAt: time.Now().UTC(),
	}
}
