package media

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	store, err := NewLocalStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()

	ref, err := store.Store(ctx, []byte("jpeg-bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	key, ok := KeyFromReference(ref)
	if !ok {
		t.Fatalf("reference %q does not carry a valid key", ref)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("expected .jpg key, got %q", key)
	}

	body, contentType, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer body.Close() //nolint:errcheck
	data, _ := io.ReadAll(body)
	if string(data) != "jpeg-bytes" {
		t.Errorf("unexpected content %q", data)
	}
	if contentType != "image/jpeg" {
		t.Errorf("unexpected content type %q", contentType)
	}
}

func TestLocalStore_DistinctKeys(t *testing.T) {
	store, _ := NewLocalStore(t.TempDir())
	a, _ := store.Store(context.Background(), []byte("a"), "image/jpeg")
	b, _ := store.Store(context.Background(), []byte("b"), "image/jpeg")
	if a == b {
		t.Fatal("expected distinct references for separate uploads")
	}
}

func TestLocalStore_OpenNotFound(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewLocalStore(dir)
	if err := os.WriteFile(filepath.Join(filepath.Dir(dir), "secret.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []string{
		"",
		"../secret.txt",
		"not-a-key.jpg",
		NewKey("image/jpeg"), // well-formed but never stored
	}
	for _, key := range tests {
		_, _, err := store.Open(context.Background(), key)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Open(%q): expected ErrNotFound, got %v", key, err)
		}
	}
}

func TestLocalStore_Ping(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, _ := NewLocalStore(dir)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.Ping(context.Background()); err == nil {
		t.Fatal("expected Ping to fail after directory removal")
	}
}

func TestKeyHelpers(t *testing.T) {
	tests := []struct {
		contentType string
		suffix      string
	}{
		{"image/jpeg", ".jpg"},
		{"image/png", ".png"},
		{"image/webp", ".webp"},
		{"application/octet-stream", ".jpg"},
	}
	for _, tt := range tests {
		key := NewKey(tt.contentType)
		if !strings.HasSuffix(key, tt.suffix) || !ValidKey(key) {
			t.Errorf("NewKey(%q) = %q", tt.contentType, key)
		}
	}

	if _, ok := KeyFromReference("/uploads/photo.jpg"); ok {
		t.Error("foreign reference must not resolve")
	}
	if Reference("k") != "/api/media/k" {
		t.Errorf("unexpected reference %q", Reference("k"))
	}
}
