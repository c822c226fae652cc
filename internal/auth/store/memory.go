package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/auth"
)

// Memory is an in-memory auth store used by tests.
type Memory struct {
	mu       sync.Mutex
	users    map[uuid.UUID]auth.User
	sessions map[string]auth.Session
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[uuid.UUID]auth.User),
		sessions: make(map[string]auth.Session),
	}
}

func (m *Memory) CreateUser(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return auth.ErrDuplicateUser
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	m.users[user.ID] = *user

	return nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}

	return nil, auth.ErrUserNotFound
}

func (m *Memory) GetUserByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}

	return &u, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]*auth.User, 0, len(m.users))
	for _, u := range m.users {
		user := u
		users = append(users, &user)
	}

	return users, nil
}

func (m *Memory) CreateSession(_ context.Context, session *auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.CreatedAt = time.Now()
	m.sessions[session.ID] = *session

	return nil
}

func (m *Memory) GetSession(_ context.Context, id string) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}

	return &s, nil
}

func (m *Memory) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)

	return nil
}
