// Package errhttp maps domain sentinel errors to HTTP responses.
// Add a case to classify for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/lostfound/pkg/auth"
	"github.com/ghuser/lostfound/pkg/httpx"
	"github.com/ghuser/lostfound/pkg/imaging"
	"github.com/ghuser/lostfound/pkg/logger"
	"github.com/ghuser/lostfound/pkg/media"
	"github.com/ghuser/lostfound/pkg/telemetry"
	itemdomain "github.com/ghuser/lostfound/services/item/domain"
	userdomain "github.com/ghuser/lostfound/services/user/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Unrecognized errors become a 500 with a generic message; the full error is
// logged with the request context so it carries trace and request ids, and
// reported to Sentry when the request carries a hub.
func WriteError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		telemetry.CaptureError(r, err)
	}
	httpx.JSON(w, status, body)
}

func classify(err error) (int, httpx.ErrorBody) {
	var (
		ve      *itemdomain.ValidationError
		tooBig  *http.MaxBytesError
		status  int
		message string
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, httpx.ErrorBody{Error: "Validation failed", Fields: ve.Fields}
	case errors.Is(err, itemdomain.ErrInvalidItem):
		status, message = http.StatusBadRequest, "Invalid item"
	case errors.Is(err, imaging.ErrUnsupportedFormat):
		status, message = http.StatusBadRequest, "Image must be a JPEG, PNG or WebP file"
	case errors.Is(err, userdomain.ErrInvalidPassword):
		status, message = http.StatusBadRequest, "Password must be between 8 and 72 characters"
	case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidToken):
		status, message = http.StatusUnauthorized, "Authentication required"
	case errors.Is(err, userdomain.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, itemdomain.ErrForbidden):
		status, message = http.StatusForbidden, "Not authorized to modify this item"
	case errors.Is(err, itemdomain.ErrItemNotFound):
		status, message = http.StatusNotFound, "Item not found"
	case errors.Is(err, media.ErrNotFound):
		status, message = http.StatusNotFound, "Media not found"
	case errors.Is(err, userdomain.ErrUserNotFound):
		status, message = http.StatusNotFound, "User not found"
	case errors.Is(err, itemdomain.ErrDuplicateTicket):
		status, message = http.StatusConflict, "Could not assign a unique ticket number, please retry"
	case errors.Is(err, userdomain.ErrEmailTaken):
		status, message = http.StatusConflict, "Email already registered"
	case errors.Is(err, imaging.ErrTooLarge), errors.As(err, &tooBig):
		status, message = http.StatusRequestEntityTooLarge, "Upload too large"
	default:
		status, message = http.StatusInternalServerError, "Internal server error"
	}
	return status, httpx.ErrorBody{Error: message}
}
