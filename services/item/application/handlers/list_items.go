package handlers

import (
	"net/http"
	"strings"

	"github.com/ghuser/lostfound/pkg/errhttp"
	"github.com/ghuser/lostfound/pkg/httpx"
	"github.com/ghuser/lostfound/pkg/logger"
	pkgvalidator "github.com/ghuser/lostfound/pkg/validator"
	appsvcs "github.com/ghuser/lostfound/services/item/application/services"
)

// ListItemsQuery is the query string of GET /items.
type ListItemsQuery struct {
	Type   string `json:"type"   validate:"omitempty,oneof=lost found"`
	Status string `json:"status" validate:"omitempty,oneof=open verified returned"`
	Search string `json:"search" validate:"max=200"`
}

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services, log logger.Logger) *ListItemsHandler {
	return &ListItemsHandler{svc: svc, log: log}
}

// Execute lists items, newest first.
//
//	@Summary		List items
//	@Description	Lists reports newest first. search matches title, description or location case-insensitively and is combined with the type and status filters.
//	@Tags			items
//	@Produce		json
//	@Param			type	query		string	false	"lost or found"
//	@Param			status	query		string	false	"open, verified or returned"
//	@Param			search	query		string	false	"Substring to look for"
//	@Success		200		{array}		ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := ListItemsQuery{
		Type:   strings.ToLower(strings.TrimSpace(q.Get("type"))),
		Status: strings.ToLower(strings.TrimSpace(q.Get("status"))),
		Search: strings.TrimSpace(q.Get("search")),
	}
	if !pkgvalidator.WriteIfInvalid(w, &query) {
		return
	}

	items, err := h.svc.Item.List(r.Context(), appsvcs.ListQuery{
		Type:   query.Type,
		Status: query.Status,
		Search: query.Search,
	})
	if err != nil {
		errhttp.WriteError(w, r, h.log, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponses(items))
}
