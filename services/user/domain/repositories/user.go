package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/lostfound/services/user/domain/models"
)

// UserRepository is the persistence interface for the User aggregate.
// Implementations return domain.ErrUserNotFound for missing rows and
// domain.ErrEmailTaken on a duplicate email.
type UserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role string) error
}
