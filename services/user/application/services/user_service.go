package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghuser/lostfound/pkg/auth"
	"github.com/ghuser/lostfound/pkg/logger"
	userdomain "github.com/ghuser/lostfound/services/user/domain"
	"github.com/ghuser/lostfound/services/user/domain/models"
	"github.com/ghuser/lostfound/services/user/domain/repositories"
)

// Password length bounds. bcrypt ignores everything past 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// UserService handles registration, credential checks and admin bootstrap.
type UserService struct {
	repo repositories.UserRepository
	log  logger.Logger
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewUserService returns a UserService hashing with bcrypt.DefaultCost.
func NewUserService(repo repositories.UserRepository, log logger.Logger) *UserService {
	return &UserService{repo: repo, log: log, cost: bcrypt.DefaultCost}
}

// Register creates a regular user. Returns ErrEmailTaken if the address is in use.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	return s.create(ctx, name, email, password, models.RoleUser)
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Authenticate returns the user for valid credentials and ErrInvalidCredentials
// otherwise. Unknown emails still pay for a bcrypt comparison.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, userdomain.ErrUserNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, userdomain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, userdomain.ErrInvalidCredentials
	}
	return user, nil
}

// EnsureAdmin makes sure an admin account exists for email. An existing
// account is promoted and keeps its password; a missing one is created.
// A blank email is a no-op.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.IsAdmin() {
			return nil
		}
		if err := s.repo.SetRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		s.log.InfoContext(ctx, "promoted existing user to admin", "user_id", existing.ID)
		return nil
	case errors.Is(err, userdomain.ErrUserNotFound):
		user, err := s.create(ctx, name, email, password, models.RoleAdmin)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		s.log.InfoContext(ctx, "created admin account", "user_id", user.ID)
		return nil
	default:
		return fmt.Errorf("find admin: %w", err)
	}
}

// ResolveIdentity reloads the account behind a token or session so the
// current role applies. It implements auth.AccountResolver.
func (s *UserService) ResolveIdentity(ctx context.Context, id uuid.UUID) (auth.Identity, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, userdomain.ErrUserNotFound) {
		return auth.Identity{}, fmt.Errorf("%w: account no longer exists", auth.ErrUnauthenticated)
	}
	if err != nil {
		return auth.Identity{}, fmt.Errorf("resolve account: %w", err)
	}
	return ToIdentity(user), nil
}

// ToIdentity converts a user into the per-request identity carried in tokens
// and sessions.
func ToIdentity(u *models.User) auth.Identity {
	return auth.Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (s *UserService) create(ctx context.Context, name, email, password, role string) (*models.User, error) {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return nil, userdomain.ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := models.NewUser(name, email, string(hash), role)
	if err := s.repo.Insert(ctx, user); err != nil {
		if errors.Is(err, userdomain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

func (s *UserService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}
