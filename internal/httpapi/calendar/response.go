package calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/calendar"
)

type eventResponse struct {
	ID            string    `json:"id"`
	TransactionID uuid.UUID `json:"transactionId"`
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
}

func toResponseList(events []*calendar.Event) []eventResponse {
	resp := make([]eventResponse, len(events))
	for i, e := range events {
		resp[i] = eventResponse{
			ID:            e.ID,
			TransactionID: e.TransactionID,
			Title:         e.Title,
			Date:          e.Date,
		}
	}

	return resp
}
