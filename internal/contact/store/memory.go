package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/contact"
)

type Memory struct {
	mu       sync.Mutex
	contacts map[uuid.UUID]contact.Contact
}

func NewMemory() *Memory {
	return &Memory{contacts: make(map[uuid.UUID]contact.Contact)}
}

func (m *Memory) CreateContact(_ context.Context, c *contact.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = uuid.New()
	m.contacts[c.ID] = *c

	return nil
}

func (m *Memory) GetContact(_ context.Context, id uuid.UUID) (*contact.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contacts[id]
	if !ok {
		return nil, contact.ErrNotFound
	}

	return &c, nil
}

func (m *Memory) ListContacts(_ context.Context, transactionID uuid.UUID) ([]*contact.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var contacts []*contact.Contact

	for _, c := range m.contacts {
		if c.TransactionID != transactionID {
			continue
		}

		out := c
		contacts = append(contacts, &out)
	}

	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].LastName != contacts[j].LastName {
			return contacts[i].LastName < contacts[j].LastName
		}

		return contacts[i].FirstName < contacts[j].FirstName
	})

	return contacts, nil
}

func (m *Memory) UpdateContact(_ context.Context, c *contact.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.contacts[c.ID]; !ok {
		return contact.ErrNotFound
	}

	m.contacts[c.ID] = *c

	return nil
}

func (m *Memory) DeleteContact(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.contacts, id)

	return nil
}

// PurgeTransaction drops the transaction's contacts; wired as a cascade
// hook on the transaction memory store.
func (m *Memory) PurgeTransaction(txID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, c := range m.contacts {
		if c.TransactionID == txID {
			delete(m.contacts, id)
		}
	}
}
