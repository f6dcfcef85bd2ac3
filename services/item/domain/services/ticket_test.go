package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/lostfound/services/item/domain/models"
)

func fixedGenerator(ms int64, r int) *TicketGenerator {
	return &TicketGenerator{
		now:   func() time.Time { return time.UnixMilli(ms) },
		randN: func(int) int { return r },
	}
}

func TestTicketGenerator_Generate(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		rand int
		typ  models.Type
		want string
	}{
		{"lost prefix", 1_704_067_482_913, 7, models.TypeLost, "LST-482913-007"},
		{"found prefix", 1_704_067_482_913, 999, models.TypeFound, "FND-482913-999"},
		{"time fragment zero padded", 1_704_000_000_042, 0, models.TypeLost, "LST-000042-000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixedGenerator(tt.ms, tt.rand).Generate(tt.typ)
			if got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
			if !TicketPattern.MatchString(got) {
				t.Errorf("%q does not match ticket pattern", got)
			}
		})
	}
}

func TestTicketGenerator_RealClockMatchesPattern(t *testing.T) {
	g := NewTicketGenerator()
	for i := 0; i < 100; i++ {
		for _, typ := range []models.Type{models.TypeLost, models.TypeFound} {
			if got := g.Generate(typ); !TicketPattern.MatchString(got) {
				t.Fatalf("%q does not match ticket pattern", got)
			}
		}
	}
}

func TestTicketGenerator_Assign(t *testing.T) {
	g := fixedGenerator(1_704_067_482_913, 7)
	item := models.NewItem(uuid.New(), models.TypeLost, "Wallet", "black", "Library", time.Now())

	if !g.Assign(item) {
		t.Fatal("expected assignment on an item without ticket")
	}
	if item.TicketNumber != "LST-482913-007" {
		t.Fatalf("unexpected ticket %q", item.TicketNumber)
	}

	g2 := fixedGenerator(1_704_067_000_001, 1)
	if g2.Assign(item) {
		t.Fatal("an assigned ticket must never be replaced")
	}
	if item.TicketNumber != "LST-482913-007" {
		t.Fatalf("ticket changed to %q", item.TicketNumber)
	}
}
