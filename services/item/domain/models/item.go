package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type tells whether an item was lost or found.
type Type string

const (
	TypeLost  Type = "lost"
	TypeFound Type = "found"
)

// ParseType accepts "lost" or "found" in any case.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown item type %q", s)
	}
	return t, nil
}

// Valid reports whether t is a known item type.
func (t Type) Valid() bool {
	return t == TypeLost || t == TypeFound
}

// Status is the triage state of an item. Admins may move an item between any
// two statuses; there is no terminal state.
type Status string

const (
	StatusOpen     Status = "open"
	StatusVerified Status = "verified"
	StatusReturned Status = "returned"
)

// ParseStatus accepts "open", "verified" or "returned" in any case.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown item status %q", s)
	}
	return st, nil
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusVerified, StatusReturned:
		return true
	}
	return false
}

// DateLayout is the calendar date format used on the wire and in storage.
const DateLayout = "2006-01-02"

// ParseDate accepts a calendar date (2024-01-05) or an RFC 3339 timestamp and
// returns midnight UTC of that date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not YYYY-MM-DD", s)
	}
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// Reporter is the display view of the user who reported an item.
type Reporter struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

// Item is the core aggregate for this bounded context.
type Item struct {
	ID             uuid.UUID
	Type           Type
	Title          string
	Description    string
	Location       string
	Date           time.Time
	ImageReference string // "" means no image
	Status         Status
	ReporterID     uuid.UUID // set once at creation
	TicketNumber   string    // assigned once before first insert
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Reporter is resolved by the repository on reads; nil when unknown.
	Reporter *Reporter
}

// NewItem constructs an open Item with a generated ID. The ticket number is
// left empty for the ticket generator.
func NewItem(reporterID uuid.UUID, t Type, title, description, location string, date time.Time) *Item {
	now := time.Now().UTC()
	return &Item{
		ID:          uuid.New(),
		Type:        t,
		Title:       title,
		Description: description,
		Location:    location,
		Date:        date,
		Status:      StatusOpen,
		ReporterID:  reporterID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ItemPatch is a partial update. A nil field is left unchanged.
type ItemPatch struct {
	Type           *Type
	Title          *string
	Description    *string
	Location       *string
	Date           *time.Time
	ImageReference *string
	Status         *Status
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Type == nil && p.Title == nil && p.Description == nil && p.Location == nil &&
		p.Date == nil && p.ImageReference == nil && p.Status == nil
}

// Apply copies every set field of p onto i. ReporterID and TicketNumber are
// not patchable.
func (i *Item) Apply(p ItemPatch) {
	if p.Type != nil {
		i.Type = *p.Type
	}
	if p.Title != nil {
		i.Title = *p.Title
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.Location != nil {
		i.Location = *p.Location
	}
	if p.Date != nil {
		i.Date = *p.Date
	}
	if p.ImageReference != nil {
		i.ImageReference = *p.ImageReference
	}
	if p.Status != nil {
		i.Status = *p.Status
	}
}
