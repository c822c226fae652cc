package document

import (
	"math"

	"github.com/google/uuid"
)

// Status is one of the five board columns a document can sit in.
type Status string

const (
	StatusNotApplicable     Status = "not_applicable"
	StatusWaitingSignatures Status = "waiting_signatures"
	StatusSigned            Status = "signed"
	StatusWaitingOthers     Status = "waiting_others"
	StatusComplete          Status = "complete"
)

// Statuses lists the valid document states in board order.
var Statuses = []Status{
	StatusNotApplicable,
	StatusWaitingSignatures,
	StatusSigned,
	StatusWaitingOthers,
	StatusComplete,
}

func ValidStatus(s Status) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}

	return false
}

// Document is a tracked paper for one transaction. Defaults keep their slug
// ids; documents added by hand get uuid strings.
type Document struct {
	ID            string
	TransactionID uuid.UUID
	Name          string
	Status        Status
}

// Progress returns the share of complete documents, rounded; 0 for an empty
// set.
func Progress(docs []*Document) int {
	if len(docs) == 0 {
		return 0
	}

	done := 0

	for _, d := range docs {
		if d.Status == StatusComplete {
			done++
		}
	}

	return int(math.Round(100 * float64(done) / float64(len(docs))))
}

type defaultDoc struct {
	ID   string
	Name string
}

// The nine defaults every transaction starts from.
var defaults = []defaultDoc{
	{ID: "iabs", Name: "IABS"},
	{ID: "buyer-rep-agreement", Name: "Buyer Rep Agreement"},
	{ID: "listing-agreement", Name: "Listing Agreement"},
	{ID: "sellers-disclosure", Name: "Seller's Disclosure"},
	{ID: "property-survey", Name: "Property Survey"},
	{ID: "lead-based-paint-disclosure", Name: "Lead-Based Paint Disclosure"},
	{ID: "purchase-agreement", Name: "Purchase Agreement"},
	{ID: "hoa-addendum", Name: "HOA Addendum"},
	{ID: "home-inspection-report", Name: "Home Inspection Report"},
}

func defaultDocuments(transactionID uuid.UUID) []*Document {
	docs := make([]*Document, len(defaults))
	for i, d := range defaults {
		docs[i] = &Document{
			ID:            d.ID,
			TransactionID: transactionID,
			Name:          d.Name,
			Status:        StatusNotApplicable,
		}
	}

	return docs
}
