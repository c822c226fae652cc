package checklist

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/transaction"
)

var (
	ErrNotFound     = errors.New("checklist: not found")
	ErrItemNotFound = errors.New("checklist: item not found")
	// ErrConflict is returned by stores when another caller materialized the
	// checklist first; the service re-fetches and carries on.
	ErrConflict = errors.New("checklist: already exists")
)

type Repository interface {
	// CreateChecklist persists a freshly seeded checklist. When a checklist
	// for the same (transaction, role) pair already exists it returns
	// ErrConflict and writes nothing.
	CreateChecklist(ctx context.Context, c *Checklist) error
	GetChecklist(ctx context.Context, transactionID uuid.UUID, role Role) (*Checklist, error)
	UpdateItem(ctx context.Context, checklistID uuid.UUID, itemID string, completed bool) error
}

type Service struct {
	repo         Repository
	transactions *transaction.Service
}

func NewService(repo Repository, transactions *transaction.Service) *Service {
	return &Service{repo: repo, transactions: transactions}
}

// Get returns the transaction's checklist, materializing it from the
// template on first read. A lost creation race falls back to the winner's
// row, so repeated reads always observe a single checklist.
func (s *Service) Get(ctx context.Context, transactionID uuid.UUID) (*Checklist, error) {
	tx, err := s.transactions.Get(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	role := RoleBuy
	if tx.Type == transaction.TypeSell {
		role = RoleSell
	}

	c, err := s.repo.GetChecklist(ctx, transactionID, role)
	if err == nil {
		return c, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	c = &Checklist{
		TransactionID: transactionID,
		Role:          role,
		Items:         templateFor(role),
	}

	if err := s.repo.CreateChecklist(ctx, c); err != nil {
		if errors.Is(err, ErrConflict) {
			return s.repo.GetChecklist(ctx, transactionID, role)
		}

		return nil, err
	}

	return c, nil
}

// ToggleItem sets one item's completed flag and returns the whole updated
// checklist, which is what the progress bar re-renders from.
func (s *Service) ToggleItem(ctx context.Context, transactionID uuid.UUID, itemID string, completed bool) (*Checklist, error) {
	c, err := s.Get(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateItem(ctx, c.ID, itemID, completed); err != nil {
		return nil, err
	}

	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Completed = completed
		}
	}

	return c, nil
}
