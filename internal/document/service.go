package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/transaction"
)

var (
	ErrNotFound      = errors.New("document: not found")
	ErrInvalidStatus = errors.New("document: invalid status")
)

type Repository interface {
	ListDocuments(ctx context.Context, transactionID uuid.UUID) ([]*Document, error)
	CreateDocuments(ctx context.Context, docs []*Document) error
	GetDocument(ctx context.Context, transactionID uuid.UUID, id string) (*Document, error)
	UpdateStatus(ctx context.Context, transactionID uuid.UUID, id string, status Status) error
	DeleteDocument(ctx context.Context, transactionID uuid.UUID, id string) error
}

type Service struct {
	repo         Repository
	transactions *transaction.Service
}

func NewService(repo Repository, transactions *transaction.Service) *Service {
	return &Service{repo: repo, transactions: transactions}
}

// List returns the transaction's documents, seeding the nine defaults when
// the set is empty.
func (s *Service) List(ctx context.Context, transactionID uuid.UUID) ([]*Document, error) {
	if _, err := s.transactions.Get(ctx, transactionID); err != nil {
		return nil, err
	}

	docs, err := s.repo.ListDocuments(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if len(docs) > 0 {
		return docs, nil
	}

	return s.seed(ctx, transactionID)
}

// Initialize restores any default documents missing from the set. Documents
// already present keep their status, including defaults that were deleted
// and re-added here.
func (s *Service) Initialize(ctx context.Context, transactionID uuid.UUID) ([]*Document, error) {
	if _, err := s.transactions.Get(ctx, transactionID); err != nil {
		return nil, err
	}

	docs, err := s.repo.ListDocuments(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]bool, len(docs))
	for _, d := range docs {
		existing[d.ID] = true
	}

	var missing []*Document
	for _, d := range defaultDocuments(transactionID) {
		if !existing[d.ID] {
			missing = append(missing, d)
		}
	}

	if len(missing) == 0 {
		return docs, nil
	}

	if err := s.repo.CreateDocuments(ctx, missing); err != nil {
		return nil, err
	}

	return s.repo.ListDocuments(ctx, transactionID)
}

// Add appends a custom document. A transaction that gets a custom document
// before its first read still receives the default set.
func (s *Service) Add(ctx context.Context, transactionID uuid.UUID, name string) (*Document, error) {
	if _, err := s.transactions.Get(ctx, transactionID); err != nil {
		return nil, err
	}

	if name == "" {
		return nil, fmt.Errorf("document: name is required")
	}

	docs, err := s.repo.ListDocuments(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		if _, err := s.seed(ctx, transactionID); err != nil {
			return nil, err
		}
	}

	doc := &Document{
		ID:            uuid.NewString(),
		TransactionID: transactionID,
		Name:          name,
		Status:        StatusNotApplicable,
	}
	if err := s.repo.CreateDocuments(ctx, []*Document{doc}); err != nil {
		return nil, err
	}

	return doc, nil
}

// SetStatus moves a document to another column. Values outside the closed
// five-state set are rejected before anything is written.
func (s *Service) SetStatus(ctx context.Context, transactionID uuid.UUID, id string, status Status) (*Document, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	doc, err := s.repo.GetDocument(ctx, transactionID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, transactionID, id, status); err != nil {
		return nil, err
	}

	doc.Status = status

	return doc, nil
}

func (s *Service) Remove(ctx context.Context, transactionID uuid.UUID, id string) error {
	if _, err := s.repo.GetDocument(ctx, transactionID, id); err != nil {
		return err
	}

	return s.repo.DeleteDocument(ctx, transactionID, id)
}

func (s *Service) seed(ctx context.Context, transactionID uuid.UUID) ([]*Document, error) {
	docs := defaultDocuments(transactionID)
	if err := s.repo.CreateDocuments(ctx, docs); err != nil {
		return nil, err
	}

	return docs, nil
}
