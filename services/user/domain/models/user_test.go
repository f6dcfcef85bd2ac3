package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	u := NewUser("  Ada Lovelace ", " Ada@Example.COM ", "hash", RoleUser)

	if u.ID == uuid.Nil {
		t.Fatal("expected non-zero UUID for ID")
	}
	if u.Name != "Ada Lovelace" {
		t.Errorf("name not trimmed: %q", u.Name)
	}
	if u.Email != "ada@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if u.IsAdmin() {
		t.Error("role user must not be admin")
	}
	if !NewUser("a", "a@b.c", "h", RoleAdmin).IsAdmin() {
		t.Error("role admin must be admin")
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct{ in, want string }{
		{"user@example.com", "user@example.com"},
		{"USER@Example.Com", "user@example.com"},
		{"  user@example.com\t", "user@example.com"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
