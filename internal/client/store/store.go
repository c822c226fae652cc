package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/client"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectClientColumns = `
	id, first_name, last_name, email, phone, mobile_phone, address,
	type, status, notes, labels, agent_id, created_at, updated_at
`

func scanClient(s scanner) (*client.Client, error) {
	var (
		c         client.Client
		typeStr   string
		statusStr string
		labels    string
	)

	if err := s.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.MobilePhone, &c.Address,
		&typeStr, &statusStr, &c.Notes, &labels, &c.AgentID, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Type = client.Type(typeStr)
	c.Status = client.Status(statusStr)
	c.Labels = splitLabels(labels)

	return &c, nil
}

// Labels live in one text column, semicolon separated, mirroring how the
// import format carries them.
func splitLabels(raw string) []string {
	if raw == "" {
		return nil
	}

	return strings.Split(raw, ";")
}

func joinLabels(labels []string) string {
	return strings.Join(labels, ";")
}

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (first_name, last_name, email, phone, mobile_phone, address,
			type, status, notes, labels, agent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.FirstName, c.LastName, c.Email, c.Phone, c.MobilePhone, c.Address,
		c.Type, c.Status, c.Notes, joinLabels(c.Labels), c.AgentID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context, agentID uuid.UUID) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients
		WHERE agent_id = $1
		ORDER BY last_name ASC, first_name ASC`

	rows, err := s.db.QueryContext(ctx, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET first_name = $1, last_name = $2, email = $3, phone = $4, mobile_phone = $5,
			address = $6, type = $7, status = $8, notes = $9, labels = $10, updated_at = NOW()
		WHERE id = $11
	`

	_, err := s.db.ExecContext(ctx, query,
		c.FirstName, c.LastName, c.Email, c.Phone, c.MobilePhone,
		c.Address, c.Type, c.Status, c.Notes, joinLabels(c.Labels), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	return nil
}

func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return nil
}
