package services

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"

	"github.com/ghuser/lostfound/services/item/domain/models"
)

// TicketPattern matches every ticket number the generator can produce.
var TicketPattern = regexp.MustCompile(`^(LST|FND)-\d{6}-\d{3}$`)

// TicketGenerator produces human-readable ticket numbers of the form
// LST-482913-007. Uniqueness is not guaranteed here; the repository's unique
// index rejects collisions and the caller regenerates.
type TicketGenerator struct {
	now   func() time.Time
	randN func(n int) int
}

// NewTicketGenerator returns a generator using the wall clock and math/rand/v2.
func NewTicketGenerator() *TicketGenerator {
	return &TicketGenerator{now: time.Now, randN: rand.IntN}
}

// Generate returns a fresh ticket for an item of type t.
func (g *TicketGenerator) Generate(t models.Type) string {
	prefix := "FND"
	if t == models.TypeLost {
		prefix = "LST"
	}
	fragment := g.now().UnixMilli() % 1_000_000
	return fmt.Sprintf("%s-%06d-%03d", prefix, fragment, g.randN(1000))
}

// Assign sets item.TicketNumber when the item has none yet and reports
// whether it did. An assigned ticket is never replaced.
func (g *TicketGenerator) Assign(item *models.Item) bool {
	if item.TicketNumber != "" {
		return false
	}
	item.TicketNumber = g.Generate(item.Type)
	return true
}
