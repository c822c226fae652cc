package message

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/auth"
)

var ErrNotFound = errors.New("message: not found")

type Repository interface {
	CreateMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context, transactionID uuid.UUID) ([]*Message, error)

	CreateDirectMessage(ctx context.Context, m *DirectMessage) error
	ListConversation(ctx context.Context, userA, userB uuid.UUID) ([]*DirectMessage, error)
	MarkRead(ctx context.Context, recipientID, senderID uuid.UUID) error
	CountUnreadBySender(ctx context.Context, recipientID uuid.UUID) (map[uuid.UUID]int, error)
}

type Service struct {
	repo  Repository
	users *auth.Service
}

func NewService(repo Repository, users *auth.Service) *Service {
	return &Service{repo: repo, users: users}
}

// Post appends to a transaction's thread. Messages are never edited or
// deleted.
func (s *Service) Post(ctx context.Context, transactionID uuid.UUID, user *auth.User, content string) (*Message, error) {
	if content == "" {
		return nil, fmt.Errorf("message: content is required")
	}

	m := &Message{
		TransactionID: transactionID,
		UserID:        user.ID,
		Username:      user.Username,
		Role:          string(user.Role),
		Content:       content,
		Timestamp:     Now(),
	}
	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Thread(ctx context.Context, transactionID uuid.UUID) ([]*Message, error) {
	msgs, err := s.repo.ListMessages(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp < msgs[j].Timestamp })

	return msgs, nil
}

func (s *Service) SendDirect(ctx context.Context, sender *auth.User, recipientID uuid.UUID, content string) (*DirectMessage, error) {
	if content == "" {
		return nil, fmt.Errorf("message: content is required")
	}

	if _, err := s.users.UserByID(ctx, recipientID); err != nil {
		return nil, err
	}

	m := &DirectMessage{
		SenderID:    sender.ID,
		RecipientID: recipientID,
		Content:     content,
		Timestamp:   Now(),
	}
	if err := s.repo.CreateDirectMessage(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// Conversation returns both directions of a direct thread and marks the
// other party's messages as read.
func (s *Service) Conversation(ctx context.Context, user *auth.User, otherID uuid.UUID) ([]*DirectMessage, error) {
	msgs, err := s.repo.ListConversation(ctx, user.ID, otherID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkRead(ctx, user.ID, otherID); err != nil {
		return nil, err
	}

	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Timestamp < msgs[j].Timestamp })

	return msgs, nil
}

// Recipients lists every user the caller could message, with unread counts
// for those who have written.
func (s *Service) Recipients(ctx context.Context, user *auth.User) ([]*Recipient, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	unread, err := s.repo.CountUnreadBySender(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var recipients []*Recipient

	for _, u := range users {
		if u.ID == user.ID {
			continue
		}

		recipients = append(recipients, &Recipient{
			UserID:   u.ID,
			Username: u.Username,
			Unread:   unread[u.ID],
		})
	}

	return recipients, nil
}
