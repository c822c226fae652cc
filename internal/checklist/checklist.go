package checklist

import (
	"math"

	"github.com/google/uuid"
)

// Role mirrors the owning transaction's type and selects the template the
// checklist was seeded from.
type Role string

const (
	RoleBuy  Role = "buy"
	RoleSell Role = "sell"
)

// Item is a single checklist step. IDs are stable slugs from the template;
// items added later get uuid strings.
type Item struct {
	ID        string
	Text      string
	Phase     string
	Completed bool
}

// Checklist holds the ordered steps for one (transaction, role) pair. It is
// seeded once from the template and diverges freely afterwards.
type Checklist struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	Role          Role
	Items         []Item
}

// Progress returns the completion percentage, rounded. An empty checklist
// is 0%, not a division error.
func (c *Checklist) Progress() int {
	if len(c.Items) == 0 {
		return 0
	}

	done := 0

	for _, item := range c.Items {
		if item.Completed {
			done++
		}
	}

	return int(math.Round(100 * float64(done) / float64(len(c.Items))))
}
