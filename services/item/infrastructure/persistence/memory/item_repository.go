// Package memory is an in-process repositories.ItemRepository with the same
// observable semantics as the PostgreSQL one. It backs service and handler
// tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	itemdomain "github.com/ghuser/lostfound/services/item/domain"
	"github.com/ghuser/lostfound/services/item/domain/models"
	"github.com/ghuser/lostfound/services/item/domain/repositories"
)

// ItemRepository stores items in a map. Reporters are resolved from users
// registered with AddReporter.
type ItemRepository struct {
	mu        sync.RWMutex
	items     map[uuid.UUID]*models.Item
	reporters map[uuid.UUID]models.Reporter
	last      time.Time
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

func NewItemRepository() *ItemRepository {
	return &ItemRepository{
		items:     make(map[uuid.UUID]*models.Item),
		reporters: make(map[uuid.UUID]models.Reporter),
	}
}

// AddReporter makes r resolvable as an item's reporter.
func (r *ItemRepository) AddReporter(rep models.Reporter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reporters[rep.ID] = rep
}

// Insert implements repositories.ItemRepository.
func (r *ItemRepository) Insert(ctx context.Context, item *models.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.TicketNumber == item.TicketNumber {
			return itemdomain.ErrDuplicateTicket
		}
	}
	now := r.tick()
	item.CreatedAt, item.UpdatedAt = now, now

	stored := *item
	stored.Reporter = nil
	r.items[item.ID] = &stored
	return nil
}

// FindByID implements repositories.ItemRepository.
func (r *ItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	return r.resolve(item), nil
}

// Find implements repositories.ItemRepository.
func (r *ItemRepository) Find(ctx context.Context, f repositories.ItemFilter) ([]*models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []*models.Item{}
	for _, item := range r.items {
		if f.Type != "" && item.Type != f.Type {
			continue
		}
		if f.Status != "" && item.Status != f.Status {
			continue
		}
		if search != "" && !containsFold(search, item.Title, item.Description, item.Location) {
			continue
		}
		out = append(out, r.resolve(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Update implements repositories.ItemRepository.
func (r *ItemRepository) Update(ctx context.Context, id uuid.UUID, patch models.ItemPatch) (*models.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, itemdomain.ErrItemNotFound
	}
	item.Apply(patch)
	item.UpdatedAt = r.tick()
	return r.resolve(item), nil
}

// Delete implements repositories.ItemRepository.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return itemdomain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

// CountByStatus implements repositories.ItemRepository.
func (r *ItemRepository) CountByStatus(ctx context.Context) (repositories.StatusCounts, error) {
	if err := ctx.Err(); err != nil {
		return repositories.StatusCounts{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var c repositories.StatusCounts
	for _, item := range r.items {
		c.Total++
		switch item.Status {
		case models.StatusOpen:
			c.Open++
		case models.StatusVerified:
			c.Verified++
		case models.StatusReturned:
			c.Returned++
		}
	}
	return c, nil
}

// tick returns a strictly increasing timestamp so ordering by creation time
// is total. Callers hold r.mu.
func (r *ItemRepository) tick() time.Time {
	now := time.Now().UTC()
	if !now.After(r.last) {
		now = r.last.Add(time.Microsecond)
	}
	r.last = now
	return now
}

func (r *ItemRepository) resolve(item *models.Item) *models.Item {
	cp := *item
	if rep, ok := r.reporters[item.ReporterID]; ok {
		cp.Reporter = &rep
	}
	return &cp
}

func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
