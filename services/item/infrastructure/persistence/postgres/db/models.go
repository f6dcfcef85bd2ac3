package db

import (
	"time"

	"github.com/google/uuid"
)

// ItemWithReporter is an items row joined with its reporter's public fields.
type ItemWithReporter struct {
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
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ReporterName   string
	ReporterEmail  string
	ReporterRole   string
}
