package transaction

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/auth"
)

var (
	ErrNotFound      = errors.New("transaction: not found")
	ErrForbidden     = errors.New("transaction: forbidden")
	ErrInvalidStatus = errors.New("transaction: invalid status")
	ErrInvalidType   = errors.New("transaction: invalid type")
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	GetByAccessCode(ctx context.Context, code string) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	AddParticipant(ctx context.Context, id uuid.UUID, p Participant) error

	// DeleteTransaction removes the record and everything hanging off it
	// (checklists, documents, contacts, messages) in one go.
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Address  string
	Type     Type
	AgentID  uuid.UUID
	ClientID *uuid.UUID

	ContractPrice     *int64
	Commission        *int64
	EarnestMoney      *int64
	OptionFee         *int64
	DownPayment       *int64
	SellerConcessions *int64
}

type ListFilter struct {
	AgentID       *uuid.UUID
	ParticipantID *uuid.UUID
	Status        *Status
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if params.Type != TypeBuy && params.Type != TypeSell {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, params.Type)
	}

	if params.Address == "" {
		return nil, fmt.Errorf("transaction: address is required")
	}

	tx := &Transaction{
		Address:           params.Address,
		AccessCode:        newAccessCode(),
		Status:            StatusProspect,
		Type:              params.Type,
		AgentID:           params.AgentID,
		ClientID:          params.ClientID,
		ContractPrice:     params.ContractPrice,
		Commission:        params.Commission,
		EarnestMoney:      params.EarnestMoney,
		OptionFee:         params.OptionFee,
		DownPayment:       params.DownPayment,
		SellerConcessions: params.SellerConcessions,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// ListForUser returns the transactions a user may see: everything they own
// as agent, plus everything they participate in.
func (s *Service) ListForUser(ctx context.Context, user *auth.User) ([]*Transaction, error) {
	if user.Role == auth.RoleAgent {
		return s.repo.ListTransactions(ctx, ListFilter{AgentID: &user.ID})
	}

	return s.repo.ListTransactions(ctx, ListFilter{ParticipantID: &user.ID})
}

type UpdateParams struct {
	Address  *string
	ClientID *uuid.UUID

	ContractPrice     *int64
	Commission        *int64
	EarnestMoney      *int64
	OptionFee         *int64
	DownPayment       *int64
	SellerConcessions *int64

	ContractExecutionDate  *time.Time
	OptionPeriodExpiration *time.Time
	ClosingDate            *time.Time
}

// Update applies a partial edit. The three deal dates are normalized to UTC
// noon so that timezone drift can never shift them across a day boundary.
func (s *Service) Update(ctx context.Context, id, actorID uuid.UUID, params UpdateParams) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if tx.AgentID != actorID {
		return nil, ErrForbidden
	}

	if params.Address != nil {
		tx.Address = *params.Address
	}

	if params.ClientID != nil {
		tx.ClientID = params.ClientID
	}

	if params.ContractPrice != nil {
		tx.ContractPrice = params.ContractPrice
	}

	if params.Commission != nil {
		tx.Commission = params.Commission
	}

	if params.EarnestMoney != nil {
		tx.EarnestMoney = params.EarnestMoney
	}

	if params.OptionFee != nil {
		tx.OptionFee = params.OptionFee
	}

	if params.DownPayment != nil {
		tx.DownPayment = params.DownPayment
	}

	if params.SellerConcessions != nil {
		tx.SellerConcessions = params.SellerConcessions
	}

	if params.ContractExecutionDate != nil {
		d := noonUTC(*params.ContractExecutionDate)
		tx.ContractExecutionDate = &d
	}

	if params.OptionPeriodExpiration != nil {
		d := noonUTC(*params.OptionPeriodExpiration)
		tx.OptionPeriodExpiration = &d
	}

	if params.ClosingDate != nil {
		d := noonUTC(*params.ClosingDate)
		tx.ClosingDate = &d
	}

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// UpdateStatus moves a transaction to another pipeline stage. Only the
// owning agent may move a card.
func (s *Service) UpdateStatus(ctx context.Context, id, actorID uuid.UUID, status Status) error {
	status = Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !ValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	if tx.AgentID != actorID {
		return ErrForbidden
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

// Claim enrolls a user as a participant using the transaction's access code.
// Claiming twice is a no-op.
func (s *Service) Claim(ctx context.Context, accessCode string, user *auth.User) (*Transaction, error) {
	code := strings.ToUpper(strings.TrimSpace(accessCode))

	tx, err := s.repo.GetByAccessCode(ctx, code)
	if err != nil {
		return nil, err
	}

	for _, p := range tx.Participants {
		if p.UserID == user.ID {
			return tx, nil
		}
	}

	p := Participant{UserID: user.ID, Role: string(user.Role)}
	if err := s.repo.AddParticipant(ctx, tx.ID, p); err != nil {
		return nil, err
	}

	tx.Participants = append(tx.Participants, p)

	return tx, nil
}

func (s *Service) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	if tx.AgentID != actorID {
		return ErrForbidden
	}

	return s.repo.DeleteTransaction(ctx, id)
}

// Authorize reports whether the user may read a transaction's attachments
// (checklists, documents, contacts, messages): the owning agent, the linked
// client, or any participant.
func (s *Service) Authorize(ctx context.Context, id uuid.UUID, user *auth.User) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if tx.AgentID == user.ID {
		return tx, nil
	}

	if tx.ClientID != nil && *tx.ClientID == user.ID {
		return tx, nil
	}

	for _, p := range tx.Participants {
		if p.UserID == user.ID {
			return tx, nil
		}
	}

	return nil, ErrForbidden
}

// noonUTC pins a date to 12:00 UTC.
func noonUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

// Access codes skip 0/O/1/I to survive being read over the phone.
const accessCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func newAccessCode() string {
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(accessCodeAlphabet))))
		if err != nil {
			panic(fmt.Sprintf("transaction: read random: %v", err))
		}

		code[i] = accessCodeAlphabet[n.Int64()]
	}

	return string(code)
}
