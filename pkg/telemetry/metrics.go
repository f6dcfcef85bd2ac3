package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// meterName scopes the item lifecycle instruments.
const meterName = "github.com/ghuser/lostfound/services/item"

// ItemMetrics are the counters recorded by the item service.
type ItemMetrics struct {
	Reported         metric.Int64Counter // items created, by type
	StatusChanges    metric.Int64Counter // admin status transitions, by from/to
	TicketCollisions metric.Int64Counter // inserts rejected for a duplicate ticket
}

// NewItemMetrics registers the item counters on mp. Pass otel.GetMeterProvider()
// in production and a test or noop provider elsewhere.
func NewItemMetrics(mp metric.MeterProvider) (*ItemMetrics, error) {
	meter := mp.Meter(meterName)

	reported, err := meter.Int64Counter("lostfound.items.reported",
		metric.WithDescription("Lost and found reports created"),
		metric.WithUnit("{item}"))
	if err != nil {
		return nil, fmt.Errorf("items.reported counter: %w", err)
	}
	changes, err := meter.Int64Counter("lostfound.items.status_changes",
		metric.WithDescription("Item status transitions"),
		metric.WithUnit("{transition}"))
	if err != nil {
		return nil, fmt.Errorf("items.status_changes counter: %w", err)
	}
	collisions, err := meter.Int64Counter("lostfound.tickets.collisions",
		metric.WithDescription("Ticket numbers rejected as duplicates"),
		metric.WithUnit("{collision}"))
	if err != nil {
		return nil, fmt.Errorf("tickets.collisions counter: %w", err)
	}

	return &ItemMetrics{Reported: reported, StatusChanges: changes, TicketCollisions: collisions}, nil
}
