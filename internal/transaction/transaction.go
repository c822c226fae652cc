package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Type distinguishes buy-side from sell-side representation. It also picks
// which checklist template a transaction is seeded from.
type Type string

const (
	TypeBuy  Type = "buy"
	TypeSell Type = "sell"
)

// Status is a pipeline stage. The set is closed: the board columns are the
// only legal values, and writes outside the set are rejected. Any move
// between legal stages is allowed; kanban drags are not adjacency-checked.
type Status string

const (
	StatusProspect      Status = "prospect"
	StatusListingPrep   Status = "active_listing_prep"
	StatusLiveListing   Status = "live_listing"
	StatusUnderContract Status = "under_contract"
	StatusClosed        Status = "closed"
)

// Statuses lists the pipeline stages in board order.
var Statuses = []Status{
	StatusProspect,
	StatusListingPrep,
	StatusLiveListing,
	StatusUnderContract,
	StatusClosed,
}

func ValidStatus(s Status) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}

	return false
}

// Participant is a user attached to a transaction, usually a client who
// self-enrolled with the access code.
type Participant struct {
	UserID uuid.UUID
	Role   string
}

// Transaction represents a property deal owned by one agent.
// Money fields are cents.
type Transaction struct {
	ID           uuid.UUID
	Address      string
	AccessCode   string
	Status       Status
	Type         Type
	AgentID      uuid.UUID
	ClientID     *uuid.UUID
	Participants []Participant

	ContractPrice     *int64
	Commission        *int64
	EarnestMoney      *int64
	OptionFee         *int64
	DownPayment       *int64
	SellerConcessions *int64

	ContractExecutionDate  *time.Time
	OptionPeriodExpiration *time.Time
	ClosingDate            *time.Time

	CreatedAt time.Time
	UpdatedAt *time.Time
}
