package calendar

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single all-day entry derived from a transaction's deal dates.
// Nothing is stored; events are recomputed from transactions on every fetch.
type Event struct {
	ID            string
	TransactionID uuid.UUID
	Title         string
	Date          time.Time
}
