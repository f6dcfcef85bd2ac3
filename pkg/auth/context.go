package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Role names carried in Identity.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const identityKey contextKey = "identity"

// ErrUnauthenticated is returned when a request carries no valid credentials.
// Handlers should return 401 when this error occurs.
var ErrUnauthenticated = errors.New("authentication required")

// Identity is the authenticated caller, established once per request by
// RequireAuth and read by services through IdentityFromCtx.
type Identity struct {
	UserID uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IdentityFromCtx extracts the authenticated caller from the request context.
// Returns ErrUnauthenticated if no identity is set.
func IdentityFromCtx(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID == uuid.Nil {
		return Identity{}, ErrUnauthenticated
	}
	return id, nil
}

// WithIdentity returns a new context carrying id.
// Used by authentication middleware after validating credentials.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
