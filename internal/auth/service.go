package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrWeakPassword       = errors.New("auth: password must be at least 8 characters")
	ErrDuplicateUser      = errors.New("auth: username or email already registered")
	ErrUserNotFound       = errors.New("auth: user not found")
	ErrSessionNotFound    = errors.New("auth: session not found")
)

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)

	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type Service struct {
	repo       Repository
	sessionTTL time.Duration
}

func NewService(repo Repository, sessionTTL time.Duration) *Service {
	return &Service{repo: repo, sessionTTL: sessionTTL}
}

type RegisterParams struct {
	Username string
	Email    string
	FullName string
	Password string
	Role     Role
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if len(params.Password) < 8 {
		return nil, ErrWeakPassword
	}

	if params.Username == "" {
		return nil, fmt.Errorf("auth: username is required")
	}

	if _, err := mail.ParseAddress(params.Email); err != nil {
		return nil, fmt.Errorf("auth: invalid email %q", params.Email)
	}

	role := Role(strings.TrimSpace(string(params.Role)))
	if role == "" {
		role = RoleAgent
	}

	if role != RoleAgent && role != RoleClient {
		return nil, fmt.Errorf("auth: invalid role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	user := &User{
		Username:     params.Username,
		Email:        params.Email,
		FullName:     params.FullName,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and opens a server-side session. The
// returned session id goes into the cookie; nothing user-identifying does.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, *User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}

		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session := &Session{
		ID:        newSessionID(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("auth: create session: %w", err)
	}

	return session, user, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.repo.DeleteSession(ctx, sessionID)
}

// UserBySession resolves a session cookie value to the logged-in user.
// Expired sessions are deleted on sight.
func (s *Service) UserBySession(ctx context.Context, sessionID string) (*User, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.repo.DeleteSession(ctx, sessionID)
		return nil, ErrSessionNotFound
	}

	return s.repo.GetUserByID(ctx, session.UserID)
}

func (s *Service) UserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.ListUsers(ctx)
}

func newSessionID() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("auth: read random: %v", err))
	}

	return hex.EncodeToString(buf)
}
