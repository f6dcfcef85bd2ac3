package services

import (
	"github.com/ghuser/lostfound/pkg/app"
	"github.com/ghuser/lostfound/services/user/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	User *UserService
}

// New wires all user application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewUserRepository(a.Db, a.EventBus)
	return &Services{
		User: NewUserService(repo, a.Logger),
	}
}
