package contact

import (
	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/client"
	"github.com/closetrackhq/closetrack/internal/contact"
)

type contactResponse struct {
	ID            uuid.UUID    `json:"id"`
	TransactionID uuid.UUID    `json:"transactionId"`
	Role          contact.Role `json:"role"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	Phone         string       `json:"phone,omitempty"`
	MobilePhone   string       `json:"mobilePhone,omitempty"`
	Email         string       `json:"email,omitempty"`
}

func toResponse(c *contact.Contact) contactResponse {
	return contactResponse{
		ID:            c.ID,
		TransactionID: c.TransactionID,
		Role:          c.Role,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Phone:         c.Phone,
		MobilePhone:   c.MobilePhone,
		Email:         c.Email,
	}
}

func toResponseList(contacts []*contact.Contact) []contactResponse {
	resp := make([]contactResponse, len(contacts))
	for i, c := range contacts {
		resp[i] = toResponse(c)
	}

	return resp
}

type duplicateResponse struct {
	Error  string        `json:"error"`
	Client matchedClient `json:"client"`
}

type matchedClient struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
}

func toDuplicateResponse(c *client.Client) duplicateResponse {
	return duplicateResponse{
		Error: "contact matches an existing client",
		Client: matchedClient{
			ID:        c.ID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Email:     c.Email,
			Phone:     c.Phone,
		},
	}
}
