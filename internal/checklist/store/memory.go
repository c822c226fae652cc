package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/checklist"
)

type key struct {
	txID uuid.UUID
	role checklist.Role
}

type Memory struct {
	mu    sync.Mutex
	lists map[key]checklist.Checklist
}

func NewMemory() *Memory {
	return &Memory{lists: make(map[key]checklist.Checklist)}
}

func (m *Memory) CreateChecklist(_ context.Context, c *checklist.Checklist) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key{txID: c.TransactionID, role: c.Role}
	if _, ok := m.lists[k]; ok {
		return checklist.ErrConflict
	}

	c.ID = uuid.New()
	m.lists[k] = clone(c)

	return nil
}

func (m *Memory) GetChecklist(_ context.Context, transactionID uuid.UUID, role checklist.Role) (*checklist.Checklist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.lists[key{txID: transactionID, role: role}]
	if !ok {
		return nil, checklist.ErrNotFound
	}

	out := clone(&c)

	return &out, nil
}

func (m *Memory) UpdateItem(_ context.Context, checklistID uuid.UUID, itemID string, completed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, c := range m.lists {
		if c.ID != checklistID {
			continue
		}

		for i := range c.Items {
			if c.Items[i].ID == itemID {
				c.Items[i].Completed = completed
				m.lists[k] = c

				return nil
			}
		}

		return checklist.ErrItemNotFound
	}

	return checklist.ErrNotFound
}

// PurgeTransaction drops the transaction's checklists; wired as a cascade
// hook on the transaction memory store.
func (m *Memory) PurgeTransaction(txID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k := range m.lists {
		if k.txID == txID {
			delete(m.lists, k)
		}
	}
}

func clone(c *checklist.Checklist) checklist.Checklist {
	out := *c
	out.Items = append([]checklist.Item(nil), c.Items...)

	return out
}
