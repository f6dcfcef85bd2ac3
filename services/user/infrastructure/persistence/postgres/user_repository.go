package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/lostfound/pkg/database"
	"github.com/ghuser/lostfound/pkg/events"
	userdomain "github.com/ghuser/lostfound/services/user/domain"
	domainevents "github.com/ghuser/lostfound/services/user/domain/events"
	"github.com/ghuser/lostfound/services/user/domain/models"
	"github.com/ghuser/lostfound/services/user/domain/repositories"
	"github.com/ghuser/lostfound/services/user/infrastructure/persistence/postgres/db"
)

const emailConstraint = "users_email_key"

// UserRepository implements repositories.UserRepository against PostgreSQL.
type UserRepository struct {
	db  *database.Database
	bus *events.EventBus
}

var _ repositories.UserRepository = (*UserRepository)(nil)

// NewUserRepository returns a UserRepository. A nil bus disables publishing
// of UserRegisteredEvents.
func NewUserRepository(database *database.Database, bus *events.EventBus) *UserRepository {
	return &UserRepository{db: database, bus: bus}
}

// Insert persists a new User and publishes a UserRegisteredEvent within the
// same transaction. Returns ErrEmailTaken on a duplicate email.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		createdAt, err := db.New(tx).InsertUser(ctx, db.InsertUserParams{
			ID:           user.ID,
			Name:         user.Name,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
			Role:         user.Role,
		})
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == emailConstraint {
				return userdomain.ErrEmailTaken
			}
			return fmt.Errorf("insert user: %w", err)
		}
		user.CreatedAt = createdAt

		if r.bus == nil {
			return nil
		}
		if err := r.bus.PublishTx(ctx, tx, domainevents.TopicUserRegistered, domainevents.NewUserRegistered(user)); err != nil {
			return fmt.Errorf("publish user registered: %w", err)
		}
		return nil
	})
}

// FindByEmail looks up a user by normalized email. Returns ErrUserNotFound if not found.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row, err := db.New(r.db.DB()).GetUserByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return rowToUser(row), nil
}

// FindByID looks up a user by ID. Returns ErrUserNotFound if not found.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row, err := db.New(r.db.DB()).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return rowToUser(row), nil
}

// SetRole changes a user's role. Returns ErrUserNotFound if not found.
func (r *UserRepository) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	n, err := db.New(r.db.DB()).SetUserRole(ctx, id, role)
	if err != nil {
		return fmt.Errorf("set user role: %w", err)
	}
	if n == 0 {
		return userdomain.ErrUserNotFound
	}
	return nil
}

func rowToUser(row db.User) *models.User {
	return &models.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		CreatedAt:    row.CreatedAt,
	}
}
