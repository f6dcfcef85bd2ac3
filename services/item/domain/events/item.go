package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/lostfound/services/item/domain/models"
)

// Topics published by the item context.
const (
	TopicItemReported      = "item.reported"
	TopicItemStatusChanged = "item.status_changed"
	TopicItemDeleted       = "item.deleted"
)

// Topics lists every topic above, for schema initialization at startup.
var Topics = []string{TopicItemReported, TopicItemStatusChanged, TopicItemDeleted}

// Version is the current payload schema version of all item events.
const Version = 1

// ItemReportedEvent is published when a new item is persisted.
type ItemReportedEvent struct {
	EventID      uuid.UUID   `json:"event_id"` // Unique publish-time identifier for deduplication
	Version      int         `json:"version"`
	ItemID       uuid.UUID   `json:"item_id"`
	TicketNumber string      `json:"ticket_number"`
	Type         models.Type `json:"type"`
	Title        string      `json:"title"`
	ReporterID   uuid.UUID   `json:"reporter_id"`
	OccurredAt   time.Time   `json:"occurred_at"`
}

// NewItemReported builds the event for a freshly inserted item.
func NewItemReported(item *models.Item) ItemReportedEvent {
	return ItemReportedEvent{
		EventID:      uuid.New(),
		Version:      Version,
		ItemID:       item.ID,
		TicketNumber: item.TicketNumber,
		Type:         item.Type,
		Title:        item.Title,
		ReporterID:   item.ReporterID,
		OccurredAt:   time.Now().UTC(),
	}
}

// ItemStatusChangedEvent is published when an update moves an item to a
// different status.
type ItemStatusChangedEvent struct {
	EventID      uuid.UUID     `json:"event_id"`
	Version      int           `json:"version"`
	ItemID       uuid.UUID     `json:"item_id"`
	TicketNumber string        `json:"ticket_number"`
	From         models.Status `json:"from"`
	To           models.Status `json:"to"`
	OccurredAt   time.Time     `json:"occurred_at"`
}

// NewItemStatusChanged builds the event for a status transition.
func NewItemStatusChanged(itemID uuid.UUID, ticket string, from, to models.Status) ItemStatusChangedEvent {
	return ItemStatusChangedEvent{
		EventID:      uuid.New(),
		Version:      Version,
		ItemID:       itemID,
		TicketNumber: ticket,
		From:         from,
		To:           to,
		OccurredAt:   time.Now().UTC(),
	}
}

// ItemDeletedEvent is published when an item is hard-deleted.
type ItemDeletedEvent struct {
	EventID        uuid.UUID `json:"event_id"`
	Version        int       `json:"version"`
	ItemID         uuid.UUID `json:"item_id"`
	TicketNumber   string    `json:"ticket_number"`
	ImageReference string    `json:"image_reference,omitempty"` // media left behind, if any
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewItemDeleted builds the event for a deleted item.
func NewItemDeleted(itemID uuid.UUID, ticket, imageRef string) ItemDeletedEvent {
	return ItemDeletedEvent{
		EventID:        uuid.New(),
		Version:        Version,
		ItemID:         itemID,
		TicketNumber:   ticket,
		ImageReference: imageRef,
		OccurredAt:     time.Now().UTC(),
	}
}
