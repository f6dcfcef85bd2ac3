package services

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/ghuser/lostfound/pkg/app"
	"github.com/ghuser/lostfound/pkg/telemetry"
	"github.com/ghuser/lostfound/services/item/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all item application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewItemRepository(a.Db, a.EventBus)

	metrics, err := telemetry.NewItemMetrics(otel.GetMeterProvider())
	if err != nil {
		a.Logger.Warn("item metrics unavailable, recording disabled", "error", err)
		metrics, _ = telemetry.NewItemMetrics(noop.NewMeterProvider())
	}

	return &Services{
		Item: NewItemService(repo, a.Media, metrics, a.Logger, a.Config.TicketMaxAttempts),
	}
}
