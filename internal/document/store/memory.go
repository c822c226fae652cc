package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/document"
)

type Memory struct {
	mu   sync.Mutex
	docs map[uuid.UUID][]document.Document
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[uuid.UUID][]document.Document)}
}

func (m *Memory) ListDocuments(_ context.Context, transactionID uuid.UUID) ([]*document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*document.Document

	for _, d := range m.docs[transactionID] {
		doc := d
		out = append(out, &doc)
	}

	return out, nil
}

func (m *Memory) CreateDocuments(_ context.Context, docs []*document.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range docs {
		m.docs[doc.TransactionID] = append(m.docs[doc.TransactionID], *doc)
	}

	return nil
}

func (m *Memory) GetDocument(_ context.Context, transactionID uuid.UUID, id string) (*document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, d := range m.docs[transactionID] {
		if d.ID == id {
			doc := d
			return &doc, nil
		}
	}

	return nil, document.ErrNotFound
}

func (m *Memory) UpdateStatus(_ context.Context, transactionID uuid.UUID, id string, status document.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.docs[transactionID]
	for i := range docs {
		if docs[i].ID == id {
			docs[i].Status = status
			return nil
		}
	}

	return document.ErrNotFound
}

func (m *Memory) DeleteDocument(_ context.Context, transactionID uuid.UUID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.docs[transactionID]
	for i := range docs {
		if docs[i].ID == id {
			m.docs[transactionID] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}

	return nil
}

// PurgeTransaction drops the transaction's documents; wired as a cascade
// hook on the transaction memory store.
func (m *Memory) PurgeTransaction(txID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs, txID)
}
