package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/lostfound/pkg/app"
	"github.com/ghuser/lostfound/pkg/auth"
	"github.com/ghuser/lostfound/pkg/logger"
	"github.com/ghuser/lostfound/services/item/application/handlers"
	appsvcs "github.com/ghuser/lostfound/services/item/application/services"
)

// ItemRoutes registers item endpoints on the provided chi router.
func ItemRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), a.Identity, a.Logger, a.Config.MaxUploadBytes)
}

// Mount registers the /items routes backed by svcs. Reads are public; writes
// require authentication and the statistics endpoint requires the admin role.
func Mount(r chi.Router, svcs *appsvcs.Services, authn auth.Authenticator, log logger.Logger, maxImage int64) {
	r.Route("/items", func(r chi.Router) {
		r.Get("/", handlers.NewListItemsHandler(svcs, log).Execute)
		r.Get("/{id}", handlers.NewGetItemHandler(svcs, log).Execute)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(authn, log))

			r.Post("/", handlers.NewPostItemHandler(svcs, log, maxImage).Execute)
			r.Put("/{id}", handlers.NewPutItemHandler(svcs, log, maxImage).Execute)
			r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs, log).Execute)

			r.With(auth.RequireRole(auth.RoleAdmin)).Get("/stats", handlers.NewGetStatsHandler(svcs, log).Execute)
		})
	})
}
