package handlers

import (
	"errors"
	"net/http"

	"github.com/ghuser/lostfound/pkg/auth"
	"github.com/ghuser/lostfound/pkg/errhttp"
	"github.com/ghuser/lostfound/pkg/httpx"
	"github.com/ghuser/lostfound/pkg/logger"
	appsvcs "github.com/ghuser/lostfound/services/item/application/services"
)

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc      *appsvcs.Services
	log      logger.Logger
	maxImage int64
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
// Uploaded images may be at most maxImage bytes.
func NewPostItemHandler(svc *appsvcs.Services, log logger.Logger, maxImage int64) *PostItemHandler {
	return &PostItemHandler{svc: svc, log: log, maxImage: maxImage}
}

// Execute reports a new lost or found item.
//
//	@Summary		Report item
//	@Description	Creates a lost or found report owned by the caller. Accepts JSON or multipart/form-data with an optional "image" file part.
//	@Tags			items
//	@Accept			json,mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ItemRequest	true	"Item fields"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Router			/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, h.log, err)
		return
	}

	form, err := decodeItemForm(r, h.maxImage)
	if err != nil {
		writeDecodeError(w, r, h.log, err)
		return
	}

	item, err := h.svc.Item.Create(r.Context(), caller, form.itemInput(), form.Image)
	if err != nil {
		errhttp.WriteError(w, r, h.log, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}

func writeDecodeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	if errors.Is(err, errBadRequest) {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	errhttp.WriteError(w, r, log, err)
}
