package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/closetrackhq/closetrack/internal/auth"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, user *auth.User) error {
	query := `
		INSERT INTO users (username, email, full_name, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return auth.ErrDuplicateUser
		}

		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	query := `SELECT id, username, email, full_name, password_hash, role, created_at
		FROM users WHERE username = $1`

	return scanUser(s.db.QueryRowContext(ctx, query, username))
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	query := `SELECT id, username, email, full_name, password_hash, role, created_at
		FROM users WHERE id = $1`

	return scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *Store) ListUsers(ctx context.Context) ([]*auth.User, error) {
	query := `SELECT id, username, email, full_name, password_hash, role, created_at
		FROM users ORDER BY username ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*auth.User

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}

		users = append(users, user)
	}

	return users, rows.Err()
}

func (s *Store) CreateSession(ctx context.Context, session *auth.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`

	if err := s.db.QueryRowContext(ctx, query, session.ID, session.UserID, session.ExpiresAt).
		Scan(&session.CreatedAt); err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	return nil
}

func (s *Store) GetSession(ctx context.Context, id string) (*auth.Session, error) {
	query := `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = $1`

	var session auth.Session
	if err := s.db.QueryRowContext(ctx, query, id).
		Scan(&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrSessionNotFound
		}

		return nil, fmt.Errorf("getting session: %w", err)
	}

	return &session, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*auth.User, error) {
	var (
		user    auth.User
		roleStr string
	)

	if err := s.Scan(&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.PasswordHash, &roleStr, &user.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrUserNotFound
		}

		return nil, err
	}

	user.Role = auth.Role(roleStr)

	return &user, nil
}
