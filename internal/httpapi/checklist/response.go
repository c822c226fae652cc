package checklist

import (
	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/checklist"
)

type checklistResponse struct {
	ID            uuid.UUID      `json:"id"`
	TransactionID uuid.UUID      `json:"transactionId"`
	Role          checklist.Role `json:"role"`
	Items         []itemResponse `json:"items"`
	Progress      int            `json:"progress"`
}

type itemResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Phase     string `json:"phase"`
	Completed bool   `json:"completed"`
}

func toResponse(c *checklist.Checklist) checklistResponse {
	items := make([]itemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = itemResponse{
			ID:        item.ID,
			Text:      item.Text,
			Phase:     item.Phase,
			Completed: item.Completed,
		}
	}

	return checklistResponse{
		ID:            c.ID,
		TransactionID: c.TransactionID,
		Role:          c.Role,
		Items:         items,
		Progress:      c.Progress(),
	}
}
