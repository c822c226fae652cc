package client

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/client"
)

type clientResponse struct {
	ID          uuid.UUID     `json:"id"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	Email       string        `json:"email,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	MobilePhone string        `json:"mobilePhone,omitempty"`
	Address     string        `json:"address,omitempty"`
	Type        client.Type   `json:"type"`
	Status      client.Status `json:"status"`
	Notes       string        `json:"notes,omitempty"`
	Labels      []string      `json:"labels,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty"`
}

func toResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		MobilePhone: c.MobilePhone,
		Address:     c.Address,
		Type:        c.Type,
		Status:      c.Status,
		Notes:       c.Notes,
		Labels:      c.Labels,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toResponseList(clients []*client.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
	}

	return resp
}

type importResponse struct {
	Message string           `json:"message"`
	Clients []clientResponse `json:"clients"`
	Skipped int              `json:"skipped,omitempty"`
	Details []string         `json:"details,omitempty"`
}

type importErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

func rowErrorDetails(errs []client.RowError) []string {
	details := make([]string, len(errs))
	for i, e := range errs {
		details[i] = fmt.Sprintf("row %d: %s", e.Row, e.Message)
	}

	return details
}

func toImportResponse(result *client.ImportResult) importResponse {
	return importResponse{
		Message: fmt.Sprintf("imported %d clients", len(result.Created)),
		Clients: toResponseList(result.Created),
		Skipped: len(result.Errors),
		Details: rowErrorDetails(result.Errors),
	}
}

func toImportErrorResponse(result *client.ImportResult) importErrorResponse {
	return importErrorResponse{
		Error:   "no valid rows in import",
		Details: rowErrorDetails(result.Errors),
	}
}
