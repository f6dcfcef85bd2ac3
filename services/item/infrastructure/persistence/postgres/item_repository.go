package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/lostfound/pkg/database"
	"github.com/ghuser/lostfound/pkg/events"
	itemdomain "github.com/ghuser/lostfound/services/item/domain"
	domainevents "github.com/ghuser/lostfound/services/item/domain/events"
	"github.com/ghuser/lostfound/services/item/domain/models"
	"github.com/ghuser/lostfound/services/item/domain/repositories"
	"github.com/ghuser/lostfound/services/item/infrastructure/persistence/postgres/db"
)

// ticketConstraint is the unique constraint backing ticket uniqueness.
const ticketConstraint = "items_ticket_number_key"

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. Every write publishes its domain event in the same
// transaction; a nil bus disables publishing.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

// Insert persists a new Item and publishes an ItemReportedEvent within the same
// transaction. Returns ErrDuplicateTicket when the ticket number is taken.
func (r *ItemRepository) Insert(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).InsertItem(ctx, db.InsertItemParams{
			ID:             item.ID,
			Type:           string(item.Type),
			Title:          item.Title,
			Description:    item.Description,
			Location:       item.Location,
			Date:           item.Date,
			ImageReference: item.ImageReference,
			Status:         string(item.Status),
			ReporterID:     item.ReporterID,
			TicketNumber:   item.TicketNumber,
		})
		if err != nil {
			if isUniqueViolation(err, ticketConstraint) {
				return itemdomain.ErrDuplicateTicket
			}
			return fmt.Errorf("insert item: %w", err)
		}
		item.CreatedAt = row.CreatedAt
		item.UpdatedAt = row.UpdatedAt

		return r.publish(ctx, tx, domainevents.TopicItemReported, domainevents.NewItemReported(item))
	})
}

// FindByID retrieves an Item with its reporter. Returns ErrItemNotFound if not found.
func (r *ItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

// Find lists items matching filter, newest first.
func (r *ItemRepository) Find(ctx context.Context, filter repositories.ItemFilter) ([]*models.Item, error) {
	rows, err := db.New(r.db.DB()).FindItems(ctx, findParams(filter))
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items, nil
}

// Update writes the set fields of patch. The row is locked for the duration
// of the transaction so the published status transition reflects the value
// actually replaced.
func (r *ItemRepository) Update(ctx context.Context, id uuid.UUID, patch models.ItemPatch) (*models.Item, error) {
	var updated *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		prev, err := q.LockItem(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return itemdomain.ErrItemNotFound
			}
			return fmt.Errorf("lock item: %w", err)
		}

		if err := q.UpdateItem(ctx, updateParams(id, patch)); err != nil {
			return fmt.Errorf("update item: %w", err)
		}

		row, err := q.GetItemByID(ctx, id)
		if err != nil {
			return fmt.Errorf("reload item: %w", err)
		}
		updated = rowToItem(row)

		from := models.Status(prev.Status)
		if patch.Status != nil && *patch.Status != from {
			evt := domainevents.NewItemStatusChanged(id, prev.TicketNumber, from, *patch.Status)
			return r.publish(ctx, tx, domainevents.TopicItemStatusChanged, evt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an item permanently. Returns ErrItemNotFound if not found.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).DeleteItem(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return itemdomain.ErrItemNotFound
			}
			return fmt.Errorf("delete item: %w", err)
		}
		evt := domainevents.NewItemDeleted(id, row.TicketNumber, row.ImageReference)
		return r.publish(ctx, tx, domainevents.TopicItemDeleted, evt)
	})
}

// CountByStatus returns total and per-status item counts.
func (r *ItemRepository) CountByStatus(ctx context.Context) (repositories.StatusCounts, error) {
	row, err := db.New(r.db.DB()).CountItemsByStatus(ctx)
	if err != nil {
		return repositories.StatusCounts{}, fmt.Errorf("count items: %w", err)
	}
	return repositories.StatusCounts{
		Total:    int(row.Total),
		Open:     int(row.Open),
		Verified: int(row.Verified),
		Returned: int(row.Returned),
	}, nil
}

func (r *ItemRepository) publish(ctx context.Context, tx *sql.Tx, topic string, evt any) error {
	if r.bus == nil {
		return nil
	}
	if err := r.bus.PublishTx(ctx, tx, topic, evt); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

func findParams(f repositories.ItemFilter) db.FindItemsParams {
	var p db.FindItemsParams
	if f.Type != "" {
		p.Type = sql.NullString{String: string(f.Type), Valid: true}
	}
	if f.Status != "" {
		p.Status = sql.NullString{String: string(f.Status), Valid: true}
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p.SearchPattern = sql.NullString{String: "%" + escapeLike(s) + "%", Valid: true}
	}
	return p
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func updateParams(id uuid.UUID, p models.ItemPatch) db.UpdateItemParams {
	params := db.UpdateItemParams{ID: id}
	if p.Type != nil {
		params.Type = sql.NullString{String: string(*p.Type), Valid: true}
	}
	params.Title = nullString(p.Title)
	params.Description = nullString(p.Description)
	params.Location = nullString(p.Location)
	params.ImageReference = nullString(p.ImageReference)
	if p.Date != nil {
		params.Date = sql.NullTime{Time: *p.Date, Valid: true}
	}
	if p.Status != nil {
		params.Status = sql.NullString{String: string(*p.Status), Valid: true}
	}
	return params
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// rowToItem maps a joined row to a domain models.Item.
func rowToItem(row db.ItemWithReporter) *models.Item {
	return &models.Item{
		ID:             row.ID,
		Type:           models.Type(row.Type),
		Title:          row.Title,
		Description:    row.Description,
		Location:       row.Location,
		Date:           row.Date.UTC(),
		ImageReference: row.ImageReference,
		Status:         models.Status(row.Status),
		ReporterID:     row.ReporterID,
		TicketNumber:   row.TicketNumber,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
		Reporter: &models.Reporter{
			ID:    row.ReporterID,
			Name:  row.ReporterName,
			Email: row.ReporterEmail,
			Role:  row.ReporterRole,
		},
	}
}
