package contact

import (
	"github.com/google/uuid"
)

// Role labels a contact's function on the deal. It is advisory: nothing
// stops two lenders on one transaction.
type Role string

const (
	RoleBuyer        Role = "buyer"
	RoleSeller       Role = "seller"
	RoleBuyerAgent   Role = "buyer_agent"
	RoleListingAgent Role = "listing_agent"
	RoleLender       Role = "lender"
	RoleTitleCompany Role = "title_company"
	RoleInspector    Role = "inspector"
	RoleAppraiser    Role = "appraiser"
)

var Roles = []Role{
	RoleBuyer,
	RoleSeller,
	RoleBuyerAgent,
	RoleListingAgent,
	RoleLender,
	RoleTitleCompany,
	RoleInspector,
	RoleAppraiser,
}

func ValidRole(r Role) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}

	return false
}

// Contact is a person attached to one transaction.
type Contact struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	Role          Role
	FirstName     string
	LastName      string
	Phone         string
	MobilePhone   string
	Email         string
}
