package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/contact"
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

func scanContact(s scanner) (*contact.Contact, error) {
	var (
		c       contact.Contact
		roleStr string
	)

	if err := s.Scan(&c.ID, &c.TransactionID, &roleStr,
		&c.FirstName, &c.LastName, &c.Phone, &c.MobilePhone, &c.Email); err != nil {
		return nil, err
	}

	c.Role = contact.Role(roleStr)

	return &c, nil
}

const selectContactColumns = `
	id, transaction_id, role, first_name, last_name, phone, mobile_phone, email
`

func (s *Store) CreateContact(ctx context.Context, c *contact.Contact) error {
	query := `
		INSERT INTO contacts (transaction_id, role, first_name, last_name, phone, mobile_phone, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		c.TransactionID, c.Role, c.FirstName, c.LastName, c.Phone, c.MobilePhone, c.Email,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("creating contact: %w", err)
	}

	return nil
}

func (s *Store) GetContact(ctx context.Context, id uuid.UUID) (*contact.Contact, error) {
	query := `SELECT ` + selectContactColumns + ` FROM contacts WHERE id = $1`

	c, err := scanContact(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, contact.ErrNotFound
		}

		return nil, fmt.Errorf("getting contact: %w", err)
	}

	return c, nil
}

func (s *Store) ListContacts(ctx context.Context, transactionID uuid.UUID) ([]*contact.Contact, error) {
	query := `SELECT ` + selectContactColumns + ` FROM contacts
		WHERE transaction_id = $1
		ORDER BY last_name ASC, first_name ASC`

	rows, err := s.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*contact.Contact

	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}

		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}

func (s *Store) UpdateContact(ctx context.Context, c *contact.Contact) error {
	query := `
		UPDATE contacts
		SET role = $1, first_name = $2, last_name = $3, phone = $4, mobile_phone = $5, email = $6
		WHERE id = $7
	`

	_, err := s.db.ExecContext(ctx, query,
		c.Role, c.FirstName, c.LastName, c.Phone, c.MobilePhone, c.Email, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating contact: %w", err)
	}

	return nil
}

func (s *Store) DeleteContact(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting contact: %w", err)
	}

	return nil
}
