package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/client"
)

type Memory struct {
	mu      sync.Mutex
	clients map[uuid.UUID]client.Client
}

func NewMemory() *Memory {
	return &Memory{clients: make(map[uuid.UUID]client.Client)}
}

func (m *Memory) CreateClient(_ context.Context, c *client.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	m.clients[c.ID] = cloneClient(c)

	return nil
}

func (m *Memory) GetClient(_ context.Context, id uuid.UUID) (*client.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clients[id]
	if !ok {
		return nil, client.ErrNotFound
	}

	out := cloneClient(&c)

	return &out, nil
}

func (m *Memory) ListClients(_ context.Context, agentID uuid.UUID) ([]*client.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var clients []*client.Client

	for _, c := range m.clients {
		if c.AgentID != agentID {
			continue
		}

		out := cloneClient(&c)
		clients = append(clients, &out)
	}

	sort.Slice(clients, func(i, j int) bool {
		if clients[i].LastName != clients[j].LastName {
			return clients[i].LastName < clients[j].LastName
		}

		return clients[i].FirstName < clients[j].FirstName
	})

	return clients, nil
}

func (m *Memory) UpdateClient(_ context.Context, c *client.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.clients[c.ID]; !ok {
		return client.ErrNotFound
	}

	now := time.Now()
	c.UpdatedAt = &now
	m.clients[c.ID] = cloneClient(c)

	return nil
}

func (m *Memory) DeleteClient(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.clients, id)

	return nil
}

func cloneClient(c *client.Client) client.Client {
	out := *c
	out.Labels = append([]string(nil), c.Labels...)

	return out
}
