package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/lostfound/services/item/domain/models"
)

// ItemFilter narrows Find. Zero values mean "no constraint"; all set
// constraints are AND'ed.
type ItemFilter struct {
	Type   models.Type
	Status models.Status
	// Search is a case-insensitive substring matched against title OR
	// description OR location.
	Search string
}

// StatusCounts is the admin dashboard summary.
type StatusCounts struct {
	Total    int `json:"total"`
	Open     int `json:"open"`
	Verified int `json:"verified"`
	Returned int `json:"returned"`
}

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Implementations return domain.ErrItemNotFound for missing rows and
// domain.ErrDuplicateTicket when the ticket number is already taken.
type ItemRepository interface {
	// Insert persists a new item. Storage sets CreatedAt and UpdatedAt.
	Insert(ctx context.Context, item *models.Item) error

	// FindByID returns the item with its Reporter resolved.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// Find returns matching items newest-created first, reporters resolved.
	Find(ctx context.Context, filter ItemFilter) ([]*models.Item, error)

	// Update writes only the columns set in patch and returns the result.
	Update(ctx context.Context, id uuid.UUID, patch models.ItemPatch) (*models.Item, error)

	// Delete removes the item permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	CountByStatus(ctx context.Context) (StatusCounts, error)
}
