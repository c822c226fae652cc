package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/message"
)

type Memory struct {
	mu     sync.Mutex
	thread map[uuid.UUID][]message.Message
	direct []message.DirectMessage
}

func NewMemory() *Memory {
	return &Memory{thread: make(map[uuid.UUID][]message.Message)}
}

func (m *Memory) CreateMessage(_ context.Context, msg *message.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg.ID = uuid.New()
	m.thread[msg.TransactionID] = append(m.thread[msg.TransactionID], *msg)

	return nil
}

func (m *Memory) ListMessages(_ context.Context, transactionID uuid.UUID) ([]*message.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var msgs []*message.Message

	for _, msg := range m.thread[transactionID] {
		out := msg
		msgs = append(msgs, &out)
	}

	return msgs, nil
}

func (m *Memory) CreateDirectMessage(_ context.Context, msg *message.DirectMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg.ID = uuid.New()
	m.direct = append(m.direct, *msg)

	return nil
}

func (m *Memory) ListConversation(_ context.Context, userA, userB uuid.UUID) ([]*message.DirectMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var msgs []*message.DirectMessage

	for _, msg := range m.direct {
		if (msg.SenderID == userA && msg.RecipientID == userB) ||
			(msg.SenderID == userB && msg.RecipientID == userA) {
			out := msg
			msgs = append(msgs, &out)
		}
	}

	return msgs, nil
}

func (m *Memory) MarkRead(_ context.Context, recipientID, senderID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.direct {
		if m.direct[i].RecipientID == recipientID && m.direct[i].SenderID == senderID {
			m.direct[i].Read = true
		}
	}

	return nil
}

func (m *Memory) CountUnreadBySender(_ context.Context, recipientID uuid.UUID) (map[uuid.UUID]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[uuid.UUID]int)

	for _, msg := range m.direct {
		if msg.RecipientID == recipientID && !msg.Read {
			counts[msg.SenderID]++
		}
	}

	return counts, nil
}

// PurgeTransaction drops a transaction's thread; wired as a cascade hook on
// the transaction memory store.
func (m *Memory) PurgeTransaction(txID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.thread, txID)
}
