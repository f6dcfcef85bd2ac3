package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const itemWithReporterColumns = `
  i.id, i.type, i.title, i.description, i.location, i.date, i.image_reference,
  i.status, i.reporter_id, i.ticket_number, i.created_at, i.updated_at,
  u.name, u.email, u.role
`

func scanItemWithReporter(row interface{ Scan(...any) error }) (ItemWithReporter, error) {
	var i ItemWithReporter
	err := row.Scan(
		&i.ID,
		&i.Type,
		&i.Title,
		&i.Description,
		&i.Location,
		&i.Date,
		&i.ImageReference,
		&i.Status,
		&i.ReporterID,
		&i.TicketNumber,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.ReporterName,
		&i.ReporterEmail,
		&i.ReporterRole,
	)
	return i, err
}

const insertItem = `-- name: InsertItem :one
INSERT INTO items (
  id, type, title, description, location, date, image_reference,
  status, reporter_id, ticket_number
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING created_at, updated_at
`

type InsertItemParams struct {
	ID             uuid.UUID
	Type           string
	Title          string
	Description    string
	Location       string
	Date           time.Time
	ImageReference string
	Status         string
	ReporterID     uuid.UUID
	TicketNumber   string
}

type InsertItemRow struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) InsertItem(ctx context.Context, arg InsertItemParams) (InsertItemRow, error) {
	row := q.db.QueryRowContext(ctx, insertItem,
		arg.ID,
		arg.Type,
		arg.Title,
		arg.Description,
		arg.Location,
		arg.Date,
		arg.ImageReference,
		arg.Status,
		arg.ReporterID,
		arg.TicketNumber,
	)
	var i InsertItemRow
	err := row.Scan(&i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getItemByID = `-- name: GetItemByID :one
SELECT` + itemWithReporterColumns + `
FROM items i
JOIN users u ON u.id = i.reporter_id
WHERE i.id = $1
`

func (q *Queries) GetItemByID(ctx context.Context, id uuid.UUID) (ItemWithReporter, error) {
	return scanItemWithReporter(q.db.QueryRowContext(ctx, getItemByID, id))
}

// Search is matched with ILIKE; callers pass an already escaped pattern.
const findItems = `-- name: FindItems :many
SELECT` + itemWithReporterColumns + `
FROM items i
JOIN users u ON u.id = i.reporter_id
WHERE ($1::text IS NULL OR i.type = $1)
  AND ($2::text IS NULL OR i.status = $2)
  AND ($3::text IS NULL
       OR i.title ILIKE $3 ESCAPE '\'
       OR i.description ILIKE $3 ESCAPE '\'
       OR i.location ILIKE $3 ESCAPE '\')
ORDER BY i.created_at DESC, i.id
`

type FindItemsParams struct {
	Type          sql.NullString
	Status        sql.NullString
	SearchPattern sql.NullString
}

func (q *Queries) FindItems(ctx context.Context, arg FindItemsParams) ([]ItemWithReporter, error) {
	rows, err := q.db.QueryContext(ctx, findItems, arg.Type, arg.Status, arg.SearchPattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ItemWithReporter{}
	for rows.Next() {
		i, err := scanItemWithReporter(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const lockItem = `-- name: LockItem :one
SELECT status, ticket_number FROM items WHERE id = $1 FOR UPDATE
`

type LockItemRow struct {
	Status       string
	TicketNumber string
}

func (q *Queries) LockItem(ctx context.Context, id uuid.UUID) (LockItemRow, error) {
	row := q.db.QueryRowContext(ctx, lockItem, id)
	var i LockItemRow
	err := row.Scan(&i.Status, &i.TicketNumber)
	return i, err
}

// NULL parameters keep the stored column value.
const updateItem = `-- name: UpdateItem :exec
UPDATE items SET
  type            = COALESCE($2, type),
  title           = COALESCE($3, title),
  description     = COALESCE($4, description),
  location        = COALESCE($5, location),
  date            = COALESCE($6, date),
  image_reference = COALESCE($7, image_reference),
  status          = COALESCE($8, status),
  updated_at      = now()
WHERE id = $1
`

type UpdateItemParams struct {
	ID             uuid.UUID
	Type           sql.NullString
	Title          sql.NullString
	Description    sql.NullString
	Location       sql.NullString
	Date           sql.NullTime
	ImageReference sql.NullString
	Status         sql.NullString
}

func (q *Queries) UpdateItem(ctx context.Context, arg UpdateItemParams) error {
	_, err := q.db.ExecContext(ctx, updateItem,
		arg.ID,
		arg.Type,
		arg.Title,
		arg.Description,
		arg.Location,
		arg.Date,
		arg.ImageReference,
		arg.Status,
	)
	return err
}

const deleteItem = `-- name: DeleteItem :one
DELETE FROM items WHERE id = $1
RETURNING ticket_number, image_reference
`

type DeleteItemRow struct {
	TicketNumber   string
	ImageReference string
}

func (q *Queries) DeleteItem(ctx context.Context, id uuid.UUID) (DeleteItemRow, error) {
	row := q.db.QueryRowContext(ctx, deleteItem, id)
	var i DeleteItemRow
	err := row.Scan(&i.TicketNumber, &i.ImageReference)
	return i, err
}

const countItemsByStatus = `-- name: CountItemsByStatus :one
SELECT
  count(*),
  count(*) FILTER (WHERE status = 'open'),
  count(*) FILTER (WHERE status = 'verified'),
  count(*) FILTER (WHERE status = 'returned')
FROM items
`

type CountItemsByStatusRow struct {
	Total    int64
	Open     int64
	Verified int64
	Returned int64
}

func (q *Queries) CountItemsByStatus(ctx context.Context) (CountItemsByStatusRow, error) {
	row := q.db.QueryRowContext(ctx, countItemsByStatus)
	var i CountItemsByStatusRow
	err := row.Scan(&i.Total, &i.Open, &i.Verified, &i.Returned)
	return i, err
}
