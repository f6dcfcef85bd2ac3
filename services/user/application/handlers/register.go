package handlers

import (
	"net/http"

	"github.com/ghuser/lostfound/pkg/auth"
	"github.com/ghuser/lostfound/pkg/errhttp"
	"github.com/ghuser/lostfound/pkg/httpx"
	"github.com/ghuser/lostfound/pkg/logger"
	pkgvalidator "github.com/ghuser/lostfound/pkg/validator"
	appsvcs "github.com/ghuser/lostfound/services/user/application/services"
)

// RegisterHandler handles POST /auth/register requests.
type RegisterHandler struct {
	svc   *appsvcs.Services
	login *auth.IdentityProvider
	log   logger.Logger
}

// NewRegisterHandler returns a RegisterHandler. New accounts are logged in
// through login straight away.
func NewRegisterHandler(svc *appsvcs.Services, login *auth.IdentityProvider, log logger.Logger) *RegisterHandler {
	return &RegisterHandler{svc: svc, login: login, log: log}
}

// Execute creates an account with the user role.
//
//	@Summary	Register
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		RegisterRequest	true	"Account details"
//	@Success	201		{object}	AuthResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Router		/auth/register [post]
func (h *RegisterHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[RegisterRequest](w, r)
	if !ok {
		return
	}

	user, err := h.svc.User.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		errhttp.WriteError(w, r, h.log, err)
		return
	}
	h.log.InfoContext(r.Context(), "user registered", "user_id", user.ID)

	token, err := h.login.Login(w, r, appsvcs.ToIdentity(user))
	if err != nil {
		errhttp.WriteError(w, r, h.log, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, AuthResponse{Token: token, User: toUserResponse(user)})
}
