package client

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBuyer  Type = "buyer"
	TypeSeller Type = "seller"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

func ValidType(t Type) bool {
	return t == TypeBuyer || t == TypeSeller
}

func ValidClientStatus(s Status) bool {
	return s == StatusActive || s == StatusInactive || s == StatusPending
}

// Client is a person record in an agent's directory, independent of any
// transaction.
type Client struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	MobilePhone string
	Address     string
	Type        Type
	Status      Status
	Notes       string
	Labels      []string
	AgentID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
