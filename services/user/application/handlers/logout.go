package handlers

import (
	"net/http"

	"github.com/ghuser/lostfound/pkg/auth"
	"github.com/ghuser/lostfound/pkg/errhttp"
	"github.com/ghuser/lostfound/pkg/httpx"
	"github.com/ghuser/lostfound/pkg/logger"
)

// LogoutHandler handles POST /auth/logout requests.
type LogoutHandler struct {
	login *auth.IdentityProvider
	log   logger.Logger
}

// NewLogoutHandler returns a LogoutHandler.
func NewLogoutHandler(login *auth.IdentityProvider, log logger.Logger) *LogoutHandler {
	return &LogoutHandler{login: login, log: log}
}

// Execute revokes the bearer token and clears the session cookie.
//
//	@Summary	Log out
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	MessageResponse
//	@Failure	401	{object}	ErrorResponse
//	@Router		/auth/logout [post]
func (h *LogoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := h.login.Logout(w, r); err != nil {
		errhttp.WriteError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, MessageResponse{Message: "Logged out"})
}
