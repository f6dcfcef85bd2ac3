package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/lostfound/pkg/auth"
	"github.com/ghuser/lostfound/pkg/imaging"
	"github.com/ghuser/lostfound/pkg/logger"
	"github.com/ghuser/lostfound/pkg/media"
	"github.com/ghuser/lostfound/pkg/telemetry"
	itemdomain "github.com/ghuser/lostfound/services/item/domain"
	"github.com/ghuser/lostfound/services/item/domain/models"
	"github.com/ghuser/lostfound/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/lostfound/services/item/domain/services"
)

// DefaultTicketAttempts bounds the insert retries on ticket collisions.
const DefaultTicketAttempts = 3

// ItemService orchestrates the item lifecycle: reporting, browsing, updates
// by owners and admins, and deletion. Event publishing is handled by the
// repository layer inside the write transaction.
type ItemService struct {
	repo        repositories.ItemRepository
	media       media.Store
	tickets     *domainsvcs.TicketGenerator
	metrics     *telemetry.ItemMetrics
	log         logger.Logger
	maxAttempts int
}

// NewItemService returns an ItemService. maxAttempts below 1 falls back to
// DefaultTicketAttempts.
func NewItemService(
	repo repositories.ItemRepository,
	store media.Store,
	metrics *telemetry.ItemMetrics,
	log logger.Logger,
	maxAttempts int,
) *ItemService {
	if maxAttempts < 1 {
		maxAttempts = DefaultTicketAttempts
	}
	return &ItemService{
		repo:        repo,
		media:       store,
		tickets:     domainsvcs.NewTicketGenerator(),
		metrics:     metrics,
		log:         log,
		maxAttempts: maxAttempts,
	}
}

// ListQuery holds the raw filter values of a list request. Empty means unset.
type ListQuery struct {
	Type   string
	Status string
	Search string
}

// Create validates in, stores the optional image and persists a new open item
// reported by caller. A ticket collision regenerates the ticket and retries
// up to maxAttempts times.
func (s *ItemService) Create(ctx context.Context, caller auth.Identity, in domainsvcs.ItemInput, image []byte) (*models.Item, error) {
	if caller.UserID == uuid.Nil {
		return nil, auth.ErrUnauthenticated
	}

	item, err := domainsvcs.BuildItem(caller.UserID, in)
	if err != nil {
		return nil, err
	}

	if image != nil {
		ref, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		item.ImageReference = ref
	}

	if err := s.insertWithTicket(ctx, item); err != nil {
		return nil, err
	}

	item.Reporter = &models.Reporter{ID: caller.UserID, Name: caller.Name, Email: caller.Email}
	s.metrics.Reported.Add(ctx, 1, metric.WithAttributes(attribute.String("type", string(item.Type))))
	s.log.InfoContext(ctx, "item reported",
		"item_id", item.ID,
		"ticket_number", item.TicketNumber,
		"type", item.Type,
	)
	return item, nil
}

func (s *ItemService) insertWithTicket(ctx context.Context, item *models.Item) error {
	for attempt := 1; ; attempt++ {
		item.TicketNumber = ""
		s.tickets.Assign(item)

		err := s.repo.Insert(ctx, item)
		if err == nil {
			return nil
		}
		if !errors.Is(err, itemdomain.ErrDuplicateTicket) {
			return fmt.Errorf("save item: %w", err)
		}

		s.metrics.TicketCollisions.Add(ctx, 1)
		s.log.WarnContext(ctx, "ticket collision", "ticket_number", item.TicketNumber, "attempt", attempt)
		if attempt >= s.maxAttempts {
			return fmt.Errorf("save item after %d attempts: %w", attempt, err)
		}
	}
}

// GetByID returns the item with its reporter. Returns ErrItemNotFound if absent.
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns items matching q, newest first. Unknown type or status values
// are a ValidationError rather than an empty result.
func (s *ItemService) List(ctx context.Context, q ListQuery) ([]*models.Item, error) {
	var (
		ve     itemdomain.ValidationError
		filter = repositories.ItemFilter{Search: q.Search}
	)
	if q.Type != "" {
		t, err := models.ParseType(q.Type)
		if err != nil {
			ve.Add("type", "Must be one of: lost found")
		}
		filter.Type = t
	}
	if q.Status != "" {
		st, err := models.ParseStatus(q.Status)
		if err != nil {
			ve.Add("status", "Must be one of: open verified returned")
		}
		filter.Status = st
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	items, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Update applies the non-empty fields of in to the item. Only the reporter or
// an admin may update; a status change is honored for admins only. When
// nothing is left to change the current item is returned as is.
func (s *ItemService) Update(ctx context.Context, caller auth.Identity, id uuid.UUID, in domainsvcs.PatchInput, image []byte) (*models.Item, error) {
	if caller.UserID == uuid.Nil {
		return nil, auth.ErrUnauthenticated
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if !domainsvcs.CanModify(caller.UserID, caller.IsAdmin(), current) {
		return nil, itemdomain.ErrForbidden
	}

	patch, err := domainsvcs.NormalizePatch(in, caller.IsAdmin())
	if err != nil {
		return nil, err
	}
	if image != nil {
		ref, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		patch.ImageReference = &ref
	}
	if patch.IsEmpty() {
		return current, nil
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	if patch.Status != nil && *patch.Status != current.Status {
		s.metrics.StatusChanges.Add(ctx, 1, metric.WithAttributes(
			attribute.String("from", string(current.Status)),
			attribute.String("to", string(*patch.Status)),
		))
		s.log.InfoContext(ctx, "item status changed",
			"item_id", id,
			"from", current.Status,
			"to", *patch.Status,
			"by", caller.UserID,
		)
	}
	return updated, nil
}

// Delete removes the item permanently. Only the reporter or an admin may
// delete. Stored media is left in place.
func (s *ItemService) Delete(ctx context.Context, caller auth.Identity, id uuid.UUID) error {
	if caller.UserID == uuid.Nil {
		return auth.ErrUnauthenticated
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}
	if !domainsvcs.CanModify(caller.UserID, caller.IsAdmin(), current) {
		return itemdomain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	s.log.InfoContext(ctx, "item deleted", "item_id", id, "by", caller.UserID)
	return nil
}

// Stats returns item counts per status. Admin only.
func (s *ItemService) Stats(ctx context.Context, caller auth.Identity) (repositories.StatusCounts, error) {
	if !caller.IsAdmin() {
		return repositories.StatusCounts{}, itemdomain.ErrForbidden
	}
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return repositories.StatusCounts{}, fmt.Errorf("item stats: %w", err)
	}
	return counts, nil
}

func (s *ItemService) storeImage(ctx context.Context, data []byte) (string, error) {
	img, err := imaging.Process(data)
	if err != nil {
		return "", fmt.Errorf("process image: %w", err)
	}
	ref, err := s.media.Store(ctx, img.Data, img.MIME)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return ref, nil
}
