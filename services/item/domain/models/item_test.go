package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewItem(t *testing.T) {
	reporterID := uuid.New()
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		item := NewItem(reporterID, TypeLost, "Black Wallet", "leather", "Library", date)
		if item.ID == uuid.Nil {
			t.Fatal("expected non-zero UUID for ID")
		}
		if item.Status != StatusOpen {
			t.Errorf("expected status open, got %q", item.Status)
		}
		if item.ReporterID != reporterID {
			t.Errorf("expected reporter %v, got %v", reporterID, item.ReporterID)
		}
		if item.TicketNumber != "" {
			t.Errorf("ticket must be assigned later, got %q", item.TicketNumber)
		}
		if item.ImageReference != "" {
			t.Errorf("expected no image, got %q", item.ImageReference)
		}
	})

	t.Run("sets CreatedAt to approximately now UTC", func(t *testing.T) {
		before := time.Now().UTC()
		item := NewItem(reporterID, TypeFound, "Keys", "three keys", "Gym", date)
		after := time.Now().UTC()
		if item.CreatedAt.Before(before) || item.CreatedAt.After(after) {
			t.Fatalf("CreatedAt %v not between %v and %v", item.CreatedAt, before, after)
		}
	})

	t.Run("generates unique IDs on each call", func(t *testing.T) {
		a := NewItem(reporterID, TypeLost, "a", "a", "a", date)
		b := NewItem(reporterID, TypeLost, "a", "a", "a", date)
		if a.ID == b.ID {
			t.Fatal("expected unique IDs, got identical")
		}
	})
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"lost", TypeLost, false},
		{"FOUND", TypeFound, false},
		{" lost ", TypeLost, false},
		{"stolen", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseType(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"open", StatusOpen, false},
		{"Verified", StatusVerified, false},
		{"returned", StatusReturned, false},
		{"closed", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-01-05", "2024-01-05T15:04:05Z", " 2024-01-05 "} {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseDate("05/01/2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestItem_Apply(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	item := NewItem(uuid.New(), TypeLost, "Black Wallet", "leather", "Library", date)
	original := *item

	if !(ItemPatch{}).IsEmpty() {
		t.Fatal("zero patch must be empty")
	}
	item.Apply(ItemPatch{})
	if item.Title != original.Title || item.Status != original.Status {
		t.Fatal("empty patch must not change the item")
	}

	verified := StatusVerified
	title := "Brown Wallet"
	p := ItemPatch{Status: &verified, Title: &title}
	if p.IsEmpty() {
		t.Fatal("patch with fields must not be empty")
	}
	item.Apply(p)

	if item.Status != StatusVerified || item.Title != "Brown Wallet" {
		t.Errorf("patch not applied: %+v", item)
	}
	if item.Description != original.Description || item.Location != original.Location || !item.Date.Equal(original.Date) {
		t.Error("unpatched fields must be unchanged")
	}
	if item.ReporterID != original.ReporterID {
		t.Error("reporter must be immutable")
	}
}
