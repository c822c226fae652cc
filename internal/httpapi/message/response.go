package message

import (
	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/message"
)

type messageResponse struct {
	ID            uuid.UUID `json:"id"`
	TransactionID uuid.UUID `json:"transactionId"`
	UserID        uuid.UUID `json:"userId"`
	Username      string    `json:"username"`
	Role          string    `json:"role"`
	Content       string    `json:"content"`
	Timestamp     string    `json:"timestamp"`
}

func toMessageResponse(m *message.Message) messageResponse {
	return messageResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Username:      m.Username,
		Role:          m.Role,
		Content:       m.Content,
		Timestamp:     m.Timestamp,
	}
}

func toThreadResponse(msgs []*message.Message) []messageResponse {
	resp := make([]messageResponse, len(msgs))
	for i, m := range msgs {
		resp[i] = toMessageResponse(m)
	}

	return resp
}

type directMessageResponse struct {
	ID          uuid.UUID `json:"id"`
	SenderID    uuid.UUID `json:"senderId"`
	RecipientID uuid.UUID `json:"recipientId"`
	Content     string    `json:"content"`
	Read        bool      `json:"read"`
	Timestamp   string    `json:"timestamp"`
}

func toDirectResponse(m *message.DirectMessage) directMessageResponse {
	return directMessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Read:        m.Read,
		Timestamp:   m.Timestamp,
	}
}

func toDirectResponseList(msgs []*message.DirectMessage) []directMessageResponse {
	resp := make([]directMessageResponse, len(msgs))
	for i, m := range msgs {
		resp[i] = toDirectResponse(m)
	}

	return resp
}

type recipientResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Unread   int       `json:"unread"`
}

func toRecipientResponseList(recipients []*message.Recipient) []recipientResponse {
	resp := make([]recipientResponse, len(recipients))
	for i, rec := range recipients {
		resp[i] = recipientResponse{UserID: rec.UserID, Username: rec.Username, Unread: rec.Unread}
	}

	return resp
}
