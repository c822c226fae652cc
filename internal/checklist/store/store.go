package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/checklist"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateChecklist(ctx context.Context, c *checklist.Checklist) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning checklist insert: %w", err)
	}
	defer tx.Rollback()

	// The unique index on (transaction_id, role) makes the first writer win;
	// losers see no row back and report the conflict.
	var id uuid.UUID

	err = tx.QueryRowContext(ctx, `
		INSERT INTO checklists (transaction_id, role)
		VALUES ($1, $2)
		ON CONFLICT (transaction_id, role) DO NOTHING
		RETURNING id
	`, c.TransactionID, c.Role).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return checklist.ErrConflict
		}

		return fmt.Errorf("creating checklist: %w", err)
	}

	for pos, item := range c.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO checklist_items (checklist_id, item_id, text, phase, completed, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, id, item.ID, item.Text, item.Phase, item.Completed, pos); err != nil {
			return fmt.Errorf("creating checklist item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing checklist insert: %w", err)
	}

	c.ID = id

	return nil
}

func (s *Store) GetChecklist(ctx context.Context, transactionID uuid.UUID, role checklist.Role) (*checklist.Checklist, error) {
	var c checklist.Checklist

	err := s.db.QueryRowContext(ctx, `
		SELECT id, transaction_id, role FROM checklists
		WHERE transaction_id = $1 AND role = $2
	`, transactionID, role).Scan(&c.ID, &c.TransactionID, &c.Role)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, checklist.ErrNotFound
		}

		return nil, fmt.Errorf("getting checklist: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT item_id, text, phase, completed FROM checklist_items
		WHERE checklist_id = $1
		ORDER BY position ASC
	`, c.ID)
	if err != nil {
		return nil, fmt.Errorf("listing checklist items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item checklist.Item
		if err := rows.Scan(&item.ID, &item.Text, &item.Phase, &item.Completed); err != nil {
			return nil, fmt.Errorf("scanning checklist item: %w", err)
		}

		c.Items = append(c.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checklist items: %w", err)
	}

	return &c, nil
}

func (s *Store) UpdateItem(ctx context.Context, checklistID uuid.UUID, itemID string, completed bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE checklist_items SET completed = $1
		WHERE checklist_id = $2 AND item_id = $3
	`, completed, checklistID, itemID)
	if err != nil {
		return fmt.Errorf("updating checklist item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}

	if affected == 0 {
		return checklist.ErrItemNotFound
	}

	return nil
}
