package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/document"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListDocuments(ctx context.Context, transactionID uuid.UUID) ([]*document.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, transaction_id, name, status FROM documents
		WHERE transaction_id = $1
		ORDER BY position ASC
	`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*document.Document

	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

func (s *Store) CreateDocuments(ctx context.Context, docs []*document.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning document insert: %w", err)
	}
	defer tx.Rollback()

	for _, doc := range docs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents (id, transaction_id, name, status, position)
			VALUES ($1, $2, $3, $4,
				(SELECT COALESCE(MAX(position), -1) + 1 FROM documents WHERE transaction_id = $2))
		`, doc.ID, doc.TransactionID, doc.Name, doc.Status); err != nil {
			return fmt.Errorf("creating document: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing document insert: %w", err)
	}

	return nil
}

func (s *Store) GetDocument(ctx context.Context, transactionID uuid.UUID, id string) (*document.Document, error) {
	doc, err := scanDocument(s.db.QueryRowContext(ctx, `
		SELECT id, transaction_id, name, status FROM documents
		WHERE transaction_id = $1 AND id = $2
	`, transactionID, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, document.ErrNotFound
		}

		return nil, fmt.Errorf("getting document: %w", err)
	}

	return doc, nil
}

func (s *Store) UpdateStatus(ctx context.Context, transactionID uuid.UUID, id string, status document.Status) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents SET status = $1
		WHERE transaction_id = $2 AND id = $3
	`, status, transactionID, id)
	if err != nil {
		return fmt.Errorf("updating document status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}

	if affected == 0 {
		return document.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteDocument(ctx context.Context, transactionID uuid.UUID, id string) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM documents WHERE transaction_id = $1 AND id = $2
	`, transactionID, id); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*document.Document, error) {
	var (
		doc       document.Document
		statusStr string
	)

	if err := s.Scan(&doc.ID, &doc.TransactionID, &doc.Name, &statusStr); err != nil {
		return nil, err
	}

	doc.Status = document.Status(statusStr)

	return &doc, nil
}
