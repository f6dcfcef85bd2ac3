package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/lostfound/services/item/domain/models"
	"github.com/ghuser/lostfound/services/item/domain/repositories"
)

// ItemRequest is the JSON body for POST /items and PUT /items/{id}. The same
// fields are accepted as multipart/form-data parts together with an "image"
// file part. On update every field is optional and blank values are ignored.
type ItemRequest struct {
	Type        *string `json:"type"        example:"lost"`
	Title       *string `json:"title"       example:"Black Wallet"`
	Description *string `json:"description" example:"Leather, has student ID"`
	Location    *string `json:"location"    example:"Library 2F"`
	Date        *string `json:"date"        example:"2024-01-05"`
	Status      *string `json:"status,omitempty" example:"verified"` // admins only, update only
} // @name ItemRequest

// ReporterResponse is the public view of an item's reporter.
type ReporterResponse struct {
	ID    uuid.UUID `json:"id"             example:"123e4567-e89b-12d3-a456-426614174000"`
	Name  string    `json:"name"           example:"Ada Lovelace"`
	Email string    `json:"email"          example:"ada@example.com"`
	Role  string    `json:"role,omitempty" example:"user"`
} // @name ReporterResponse

// ItemResponse is the JSON representation of an item.
type ItemResponse struct {
	ID             uuid.UUID         `json:"id"              example:"550e8400-e29b-41d4-a716-446655440000"`
	TicketNumber   string            `json:"ticket_number"   example:"LST-482913-007"`
	Type           string            `json:"type"            example:"lost"`
	Title          string            `json:"title"           example:"Black Wallet"`
	Description    string            `json:"description"     example:"Leather, has student ID"`
	Location       string            `json:"location"        example:"Library 2F"`
	Date           string            `json:"date"            example:"2024-01-05"`
	ImageReference string            `json:"image_reference" example:"/api/media/0b7f6c1e-6a3e-4f7e-9a51-3c1f0d2b8e4a.jpg"`
	Status         string            `json:"status"          example:"open"`
	ReporterID     uuid.UUID         `json:"reporter_id"     example:"123e4567-e89b-12d3-a456-426614174000"`
	Reporter       *ReporterResponse `json:"reporter,omitempty"`
	CreatedAt      time.Time         `json:"created_at"      example:"2024-01-05T10:30:00Z"`
	UpdatedAt      time.Time         `json:"updated_at"      example:"2024-01-05T10:30:00Z"`
} // @name ItemResponse

// StatsResponse holds item counts for the admin dashboard.
type StatsResponse struct {
	Total    int `json:"total"    example:"42"`
	Open     int `json:"open"     example:"30"`
	Verified int `json:"verified" example:"8"`
	Returned int `json:"returned" example:"4"`
} // @name StatsResponse

// ErrorResponse is returned on all error responses. Fields is present only
// for validation failures.
type ErrorResponse struct {
	Error  string            `json:"error"            example:"Validation failed"`
	Fields map[string]string `json:"fields,omitempty"`
} // @name ErrorResponse

// MessageResponse carries a confirmation text.
type MessageResponse struct {
	Message string `json:"message" example:"Item deleted successfully"`
} // @name MessageResponse

func toItemResponse(item *models.Item) ItemResponse {
	resp := ItemResponse{
		ID:             item.ID,
		TicketNumber:   item.TicketNumber,
		Type:           string(item.Type),
		Title:          item.Title,
		Description:    item.Description,
		Location:       item.Location,
		Date:           item.Date.Format(models.DateLayout),
		ImageReference: item.ImageReference,
		Status:         string(item.Status),
		ReporterID:     item.ReporterID,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
	if item.Reporter != nil {
		resp.Reporter = &ReporterResponse{
			ID:    item.Reporter.ID,
			Name:  item.Reporter.Name,
			Email: item.Reporter.Email,
			Role:  item.Reporter.Role,
		}
	}
	return resp
}

func toItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	return out
}

func toStatsResponse(c repositories.StatusCounts) StatsResponse {
	return StatsResponse{Total: c.Total, Open: c.Open, Verified: c.Verified, Returned: c.Returned}
}
