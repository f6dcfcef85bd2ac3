// Package media stores item photos and resolves the references handed out for
// them. References have the form /api/media/<key> regardless of backend, so
// stored items never depend on where the bytes live.
package media

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// RoutePrefix is the URL path under which stored media is served.
const RoutePrefix = "/api/media/"

// ErrNotFound is returned by Open for unknown or malformed keys.
var ErrNotFound = errors.New("media not found")

// Store persists media bytes and serves them back.
type Store interface {
	// Store saves data and returns an opaque reference suitable for
	// Item.ImageReference.
	Store(ctx context.Context, data []byte, contentType string) (string, error)
	// Open returns the stored bytes for key and their content type.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

var keyPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.(jpg|png|webp)$`)

// NewKey returns a fresh object key for the given content type.
func NewKey(contentType string) string {
	return uuid.NewString() + extension(contentType)
}

// ValidKey reports whether key could have been produced by NewKey. Backends
// reject everything else before touching storage, which also rules out path
// traversal.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Reference builds the public reference for key.
func Reference(key string) string {
	return RoutePrefix + key
}

// KeyFromReference extracts the key from a reference built by Reference.
func KeyFromReference(ref string) (string, bool) {
	key, ok := strings.CutPrefix(ref, RoutePrefix)
	if !ok || !ValidKey(key) {
		return "", false
	}
	return key, true
}

func extension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func contentTypeFor(key string) string {
	switch {
	case strings.HasSuffix(key, ".png"):
		return "image/png"
	case strings.HasSuffix(key, ".webp"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
