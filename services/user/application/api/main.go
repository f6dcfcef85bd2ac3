package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/lostfound/pkg/app"
	"github.com/ghuser/lostfound/pkg/auth"
	"github.com/ghuser/lostfound/pkg/httpx"
	"github.com/ghuser/lostfound/pkg/logger"
	"github.com/ghuser/lostfound/services/user/application/handlers"
	appsvcs "github.com/ghuser/lostfound/services/user/application/services"
)

// UserRoutes registers account endpoints on the provided chi router.
func UserRoutes(r chi.Router, a *app.Application) {
	Mount(r, appsvcs.New(a), a.Identity, a.Logger)
}

// Mount registers the /auth routes backed by svcs. Register and login share
// a per-IP attempt limit.
func Mount(r chi.Router, svcs *appsvcs.Services, identity *auth.IdentityProvider, log logger.Logger) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(httpx.AuthRateLimit())
			r.Post("/register", handlers.NewRegisterHandler(svcs, identity, log).Execute)
			r.Post("/login", handlers.NewLoginHandler(svcs, identity, log).Execute)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(identity, log))
			r.Post("/logout", handlers.NewLogoutHandler(identity, log).Execute)
			r.Get("/me", handlers.NewMeHandler(svcs, log).Execute)
		})
	})
}
