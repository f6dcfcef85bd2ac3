package postgres

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/lostfound/migrations/lostfound"
	"github.com/ghuser/lostfound/pkg/database"
	"github.com/ghuser/lostfound/pkg/logger"
	"github.com/ghuser/lostfound/pkg/migrator"
	userdomain "github.com/ghuser/lostfound/services/user/domain"
	"github.com/ghuser/lostfound/services/user/domain/models"
)

// Integration tests: skipped unless DATABASE_URL is set.
func TestUserRepositoryIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	ctx := context.Background()
	if err := migrator.RunMigrations(ctx, url, lostfound.FS, logger.Discard()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db, err := database.NewPool(ctx, url, logger.Discard())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close() //nolint:errcheck

	repo := NewUserRepository(db, nil)
	email := "Ada-" + uuid.NewString() + "@Example.com"
	user := models.NewUser("Ada", email, "hash", models.RoleUser)
	t.Cleanup(func() {
		_, _ = db.DB().ExecContext(ctx, `DELETE FROM users WHERE id = $1`, user.ID)
	})

	t.Run("Insert", func(t *testing.T) {
		if err := repo.Insert(ctx, user); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if user.CreatedAt.IsZero() {
			t.Error("CreatedAt must be set by storage")
		}
	})

	t.Run("Insert_DuplicateEmail", func(t *testing.T) {
		dup := models.NewUser("Other", strings.ToUpper(email), "hash", models.RoleUser)
		if err := repo.Insert(ctx, dup); !errors.Is(err, userdomain.ErrEmailTaken) {
			t.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("FindByEmail_CaseInsensitive", func(t *testing.T) {
		got, err := repo.FindByEmail(ctx, strings.ToUpper(email))
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.ID != user.ID || got.PasswordHash != "hash" {
			t.Errorf("unexpected user %+v", got)
		}
	})

	t.Run("SetRole", func(t *testing.T) {
		if err := repo.SetRole(ctx, user.ID, models.RoleAdmin); err != nil {
			t.Fatalf("set role: %v", err)
		}
		got, err := repo.FindByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if !got.IsAdmin() {
			t.Errorf("expected admin, got %s", got.Role)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, userdomain.ErrUserNotFound) {
			t.Errorf("FindByID: expected ErrUserNotFound, got %v", err)
		}
		if _, err := repo.FindByEmail(ctx, "nobody-"+uuid.NewString()+"@example.com"); !errors.Is(err, userdomain.ErrUserNotFound) {
			t.Errorf("FindByEmail: expected ErrUserNotFound, got %v", err)
		}
		if err := repo.SetRole(ctx, uuid.New(), models.RoleAdmin); !errors.Is(err, userdomain.ErrUserNotFound) {
			t.Errorf("SetRole: expected ErrUserNotFound, got %v", err)
		}
	})
}
