package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/message"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateMessage(ctx context.Context, m *message.Message) error {
	query := `
		INSERT INTO messages (transaction_id, user_id, username, role, content, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		m.TransactionID, m.UserID, m.Username, m.Role, m.Content, m.Timestamp,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("creating message: %w", err)
	}

	return nil
}

func (s *Store) ListMessages(ctx context.Context, transactionID uuid.UUID) ([]*message.Message, error) {
	query := `
		SELECT id, transaction_id, user_id, username, role, content, timestamp
		FROM messages
		WHERE transaction_id = $1
		ORDER BY timestamp ASC
	`

	rows, err := s.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var msgs []*message.Message

	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.UserID, &m.Username, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}

		msgs = append(msgs, &m)
	}

	return msgs, rows.Err()
}

func (s *Store) CreateDirectMessage(ctx context.Context, m *message.DirectMessage) error {
	query := `
		INSERT INTO direct_messages (sender_id, recipient_id, content, read, timestamp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		m.SenderID, m.RecipientID, m.Content, m.Read, m.Timestamp,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("creating direct message: %w", err)
	}

	return nil
}

func (s *Store) ListConversation(ctx context.Context, userA, userB uuid.UUID) ([]*message.DirectMessage, error) {
	query := `
		SELECT id, sender_id, recipient_id, content, read, timestamp
		FROM direct_messages
		WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY timestamp ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("listing conversation: %w", err)
	}
	defer rows.Close()

	var msgs []*message.DirectMessage

	for rows.Next() {
		var m message.DirectMessage
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.Read, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning direct message: %w", err)
		}

		msgs = append(msgs, &m)
	}

	return msgs, rows.Err()
}

func (s *Store) MarkRead(ctx context.Context, recipientID, senderID uuid.UUID) error {
	query := `
		UPDATE direct_messages SET read = TRUE
		WHERE recipient_id = $1 AND sender_id = $2 AND read = FALSE
	`

	if _, err := s.db.ExecContext(ctx, query, recipientID, senderID); err != nil {
		return fmt.Errorf("marking messages read: %w", err)
	}

	return nil
}

func (s *Store) CountUnreadBySender(ctx context.Context, recipientID uuid.UUID) (map[uuid.UUID]int, error) {
	query := `
		SELECT sender_id, COUNT(*)
		FROM direct_messages
		WHERE recipient_id = $1 AND read = FALSE
		GROUP BY sender_id
	`

	rows, err := s.db.QueryContext(ctx, query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("counting unread: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			senderID uuid.UUID
			n        int
		)
		if err := rows.Scan(&senderID, &n); err != nil {
			return nil, fmt.Errorf("scanning unread count: %w", err)
		}

		counts[senderID] = n
	}

	return counts, rows.Err()
}
