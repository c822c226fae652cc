package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/closetrackhq/closetrack/internal/client"
)

var ErrNotFound = errors.New("contact: not found")

type Repository interface {
	CreateContact(ctx context.Context, c *Contact) error
	GetContact(ctx context.Context, id uuid.UUID) (*Contact, error)
	ListContacts(ctx context.Context, transactionID uuid.UUID) ([]*Contact, error)
	UpdateContact(ctx context.Context, c *Contact) error
	DeleteContact(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo    Repository
	clients *client.Service
}

func NewService(repo Repository, clients *client.Service) *Service {
	return &Service{repo: repo, clients: clients}
}

type CreateParams struct {
	Role        Role
	FirstName   string
	LastName    string
	Phone       string
	MobilePhone string
	Email       string
}

// CheckDuplicate compares the candidate against the agent's client
// directory. A duplicate means the same first and last name plus at least
// one matching contact channel, all case-insensitive. The caller decides
// what to do with the match; nil means no prompt is needed.
func (s *Service) CheckDuplicate(ctx context.Context, agentID uuid.UUID, candidate CreateParams) (*client.Client, error) {
	clients, err := s.clients.List(ctx, agentID)
	if err != nil {
		return nil, err
	}

	for _, c := range clients {
		if !equalFold(c.FirstName, candidate.FirstName) || !equalFold(c.LastName, candidate.LastName) {
			continue
		}

		if channelMatches(c, candidate) {
			return c, nil
		}
	}

	return nil, nil
}

func (s *Service) Create(ctx context.Context, transactionID uuid.UUID, params CreateParams) (*Contact, error) {
	if !ValidRole(params.Role) {
		return nil, fmt.Errorf("contact: invalid role %q", params.Role)
	}

	if params.FirstName == "" || params.LastName == "" {
		return nil, fmt.Errorf("contact: first and last name are required")
	}

	c := &Contact{
		TransactionID: transactionID,
		Role:          params.Role,
		FirstName:     params.FirstName,
		LastName:      params.LastName,
		Phone:         params.Phone,
		MobilePhone:   params.MobilePhone,
		Email:         params.Email,
	}
	if err := s.repo.CreateContact(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// CreateFromClient copies an existing client's personal fields into a new
// contact, keeping the role the caller originally proposed. This is the
// "use existing" branch of duplicate resolution.
func (s *Service) CreateFromClient(ctx context.Context, transactionID, clientID, agentID uuid.UUID, role Role) (*Contact, error) {
	c, err := s.clients.Get(ctx, clientID, agentID)
	if err != nil {
		return nil, err
	}

	return s.Create(ctx, transactionID, CreateParams{
		Role:        role,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Phone:       c.Phone,
		MobilePhone: c.MobilePhone,
		Email:       c.Email,
	})
}

func (s *Service) List(ctx context.Context, transactionID uuid.UUID) ([]*Contact, error) {
	return s.repo.ListContacts(ctx, transactionID)
}

type UpdateParams struct {
	Role        *Role
	FirstName   *string
	LastName    *string
	Phone       *string
	MobilePhone *string
	Email       *string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Contact, error) {
	c, err := s.repo.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Role != nil {
		if !ValidRole(*params.Role) {
			return nil, fmt.Errorf("contact: invalid role %q", *params.Role)
		}

		c.Role = *params.Role
	}

	if params.FirstName != nil {
		c.FirstName = *params.FirstName
	}

	if params.LastName != nil {
		c.LastName = *params.LastName
	}

	if params.Phone != nil {
		c.Phone = *params.Phone
	}

	if params.MobilePhone != nil {
		c.MobilePhone = *params.MobilePhone
	}

	if params.Email != nil {
		c.Email = *params.Email
	}

	if err := s.repo.UpdateContact(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetContact(ctx, id); err != nil {
		return err
	}

	return s.repo.DeleteContact(ctx, id)
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func channelMatches(c *client.Client, candidate CreateParams) bool {
	channels := [][2]string{
		{c.Email, candidate.Email},
		{c.Phone, candidate.Phone},
		{c.MobilePhone, candidate.MobilePhone},
	}

	for _, pair := range channels {
		if pair[0] != "" && pair[1] != "" && equalFold(pair[0], pair[1]) {
			return true
		}
	}

	return false
}
