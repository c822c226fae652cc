package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/transaction"
)

// Memory is the in-memory transaction store. Other domains' memory stores
// register purge hooks so deletes cascade the same way the SQL schema does.
type Memory struct {
	mu       sync.Mutex
	txs      map[uuid.UUID]transaction.Transaction
	cascades []func(txID uuid.UUID)
}

func NewMemory() *Memory {
	return &Memory{txs: make(map[uuid.UUID]transaction.Transaction)}
}

// RegisterCascade adds a hook invoked after a transaction is deleted.
func (m *Memory) RegisterCascade(fn func(txID uuid.UUID)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cascades = append(m.cascades, fn)
}

func (m *Memory) CreateTransaction(_ context.Context, tx *transaction.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx.ID = uuid.New()
	tx.CreatedAt = time.Now()
	m.txs[tx.ID] = cloneTx(tx)

	return nil
}

func (m *Memory) GetTransaction(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.txs[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	out := cloneTx(&tx)

	return &out, nil
}

func (m *Memory) GetByAccessCode(_ context.Context, code string) (*transaction.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tx := range m.txs {
		if tx.AccessCode == code {
			out := cloneTx(&tx)
			return &out, nil
		}
	}

	return nil, transaction.ErrNotFound
}

func (m *Memory) ListTransactions(_ context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var txs []*transaction.Transaction

	for _, tx := range m.txs {
		if filter.AgentID != nil && tx.AgentID != *filter.AgentID {
			continue
		}

		if filter.Status != nil && tx.Status != *filter.Status {
			continue
		}

		if filter.ParticipantID != nil && !hasParticipant(&tx, *filter.ParticipantID) {
			continue
		}

		out := cloneTx(&tx)
		txs = append(txs, &out)
	}

	sort.Slice(txs, func(i, j int) bool { return txs[i].CreatedAt.Before(txs[j].CreatedAt) })

	return txs, nil
}

func (m *Memory) UpdateTransaction(_ context.Context, tx *transaction.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.txs[tx.ID]
	if !ok {
		return transaction.ErrNotFound
	}

	now := time.Now()
	tx.UpdatedAt = &now
	tx.Participants = existing.Participants
	m.txs[tx.ID] = cloneTx(tx)

	return nil
}

func (m *Memory) UpdateStatus(_ context.Context, id uuid.UUID, status transaction.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.txs[id]
	if !ok {
		return transaction.ErrNotFound
	}

	now := time.Now()
	tx.Status = status
	tx.UpdatedAt = &now
	m.txs[id] = tx

	return nil
}

func (m *Memory) AddParticipant(_ context.Context, id uuid.UUID, p transaction.Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.txs[id]
	if !ok {
		return transaction.ErrNotFound
	}

	if hasParticipant(&tx, p.UserID) {
		return nil
	}

	tx.Participants = append(tx.Participants, p)
	m.txs[id] = tx

	return nil
}

func (m *Memory) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	delete(m.txs, id)
	cascades := m.cascades
	m.mu.Unlock()

	for _, fn := range cascades {
		fn(id)
	}

	return nil
}

func hasParticipant(tx *transaction.Transaction, userID uuid.UUID) bool {
	for _, p := range tx.Participants {
		if p.UserID == userID {
			return true
		}
	}

	return false
}

func cloneTx(tx *transaction.Transaction) transaction.Transaction {
	out := *tx
	out.Participants = append([]transaction.Participant(nil), tx.Participants...)

	return out
}
