package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTransactionColumns = `
	t.id, t.address, t.access_code, t.status, t.type, t.agent_id, t.client_id,
	t.contract_price, t.commission, t.earnest_money, t.option_fee, t.down_payment, t.seller_concessions,
	t.contract_execution_date, t.option_period_expiration, t.closing_date,
	t.created_at, t.updated_at
`

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var (
		tx        transaction.Transaction
		statusStr string
		typeStr   string
	)

	if err := s.Scan(
		&tx.ID, &tx.Address, &tx.AccessCode, &statusStr, &typeStr, &tx.AgentID, &tx.ClientID,
		&tx.ContractPrice, &tx.Commission, &tx.EarnestMoney, &tx.OptionFee, &tx.DownPayment, &tx.SellerConcessions,
		&tx.ContractExecutionDate, &tx.OptionPeriodExpiration, &tx.ClosingDate,
		&tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Status = transaction.Status(statusStr)
	tx.Type = transaction.Type(typeStr)

	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (address, access_code, status, type, agent_id, client_id,
			contract_price, commission, earnest_money, option_fee, down_payment, seller_concessions,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.Address, tx.AccessCode, tx.Status, tx.Type, tx.AgentID, tx.ClientID,
		tx.ContractPrice, tx.Commission, tx.EarnestMoney, tx.OptionFee, tx.DownPayment, tx.SellerConcessions,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions t WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	if err := s.loadParticipants(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Store) GetByAccessCode(ctx context.Context, code string) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions t WHERE t.access_code = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction by access code: %w", err)
	}

	if err := s.loadParticipants(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + ` FROM transactions t WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.AgentID != nil {
		query += fmt.Sprintf(" AND t.agent_id = $%d", argIdx)

		args = append(args, *filter.AgentID)
		argIdx++
	}

	if filter.ParticipantID != nil {
		query += fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM transaction_participants p WHERE p.transaction_id = t.id AND p.user_id = $%d)",
			argIdx)

		args = append(args, *filter.ParticipantID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND t.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY t.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	for _, tx := range txs {
		if err := s.loadParticipants(ctx, tx); err != nil {
			return nil, err
		}
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET address = $1, client_id = $2,
			contract_price = $3, commission = $4, earnest_money = $5,
			option_fee = $6, down_payment = $7, seller_concessions = $8,
			contract_execution_date = $9, option_period_expiration = $10, closing_date = $11,
			updated_at = NOW()
		WHERE id = $12
	`

	_, err := s.db.ExecContext(ctx, query,
		tx.Address, tx.ClientID,
		tx.ContractPrice, tx.Commission, tx.EarnestMoney,
		tx.OptionFee, tx.DownPayment, tx.SellerConcessions,
		tx.ContractExecutionDate, tx.OptionPeriodExpiration, tx.ClosingDate,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status transaction.Status) error {
	query := `UPDATE transactions SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating status: %w", err)
	}

	return nil
}

func (s *Store) AddParticipant(ctx context.Context, id uuid.UUID, p transaction.Participant) error {
	query := `
		INSERT INTO transaction_participants (transaction_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (transaction_id, user_id) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query, id, p.UserID, p.Role); err != nil {
		return fmt.Errorf("adding participant: %w", err)
	}

	return nil
}

// DeleteTransaction relies on ON DELETE CASCADE to take the checklists,
// documents, contacts, messages and participants with it.
func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

func (s *Store) loadParticipants(ctx context.Context, tx *transaction.Transaction) error {
	query := `SELECT user_id, role FROM transaction_participants WHERE transaction_id = $1 ORDER BY joined_at ASC`

	rows, err := s.db.QueryContext(ctx, query, tx.ID)
	if err != nil {
		return fmt.Errorf("listing participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p transaction.Participant
		if err := rows.Scan(&p.UserID, &p.Role); err != nil {
			return fmt.Errorf("scanning participant: %w", err)
		}

		tx.Participants = append(tx.Participants, p)
	}

	return rows.Err()
}
