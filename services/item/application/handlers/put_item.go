package handlers

import (
	"net/http"

	"github.com/ghuser/lostfound/pkg/auth"
	"github.com/ghuser/lostfound/pkg/errhttp"
	"github.com/ghuser/lostfound/pkg/httpx"
	"github.com/ghuser/lostfound/pkg/logger"
	appsvcs "github.com/ghuser/lostfound/services/item/application/services"
)

// PutItemHandler handles PUT /items/{id} requests.
type PutItemHandler struct {
	svc      *appsvcs.Services
	log      logger.Logger
	maxImage int64
}

// NewPutItemHandler returns a PutItemHandler backed by the given services.
func NewPutItemHandler(svc *appsvcs.Services, log logger.Logger, maxImage int64) *PutItemHandler {
	return &PutItemHandler{svc: svc, log: log, maxImage: maxImage}
}

// Execute partially updates an item.
//
//	@Summary		Update item
//	@Description	Reporter or admin only. Absent or blank fields are left unchanged; status is applied for admins only. A new image part replaces the stored reference.
//	@Tags			items
//	@Accept			json,mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string		true	"Item ID"	format(uuid)
//	@Param			request	body		ItemRequest	true	"Fields to change"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/items/{id} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		errhttp.WriteError(w, r, h.log, err)
		return
	}

	id, ok := itemID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	form, err := decodeItemForm(r, h.maxImage)
	if err != nil {
		writeDecodeError(w, r, h.log, err)
		return
	}

	item, err := h.svc.Item.Update(r.Context(), caller, id, form.patchInput(), form.Image)
	if err != nil {
		errhttp.WriteError(w, r, h.log, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
