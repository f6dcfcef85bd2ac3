package handlers

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/lostfound/services/user/domain/models"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,notblank,max=100" example:"Ada Lovelace"`
	Email    string `json:"email"    validate:"required,email"             example:"ada@example.com"`
	Password string `json:"password" validate:"required,min=8,max=72"     example:"correct-horse"`
} // @name RegisterRequest

// Normalize trims the identifying fields; the password is taken verbatim.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required"       example:"correct-horse"`
} // @name LoginRequest

// Normalize trims the email.
func (r *LoginRequest) Normalize() { r.Email = strings.TrimSpace(r.Email) }

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Name      string    `json:"name"       example:"Ada Lovelace"`
	Email     string    `json:"email"      example:"ada@example.com"`
	Role      string    `json:"role"       example:"user"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-05T10:30:00Z"`
} // @name UserResponse

// AuthResponse is returned after registration and login. The token goes in
// an "Authorization: Bearer" header; browsers may rely on the session cookie
// set alongside it instead.
type AuthResponse struct {
	Token string       `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	User  UserResponse `json:"user"`
} // @name AuthResponse

// ErrorResponse documents the error body written by httpx and errhttp.
type ErrorResponse struct {
	Error  string            `json:"error"            example:"Validation failed"`
	Fields map[string]string `json:"fields,omitempty"`
} // @name AuthErrorResponse

// MessageResponse carries a confirmation text.
type MessageResponse struct {
	Message string `json:"message" example:"Logged out"`
} // @name AuthMessageResponse

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
