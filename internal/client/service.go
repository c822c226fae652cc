package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("client: not found")
	ErrForbidden = errors.New("client: forbidden")
)

type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	ListClients(ctx context.Context, agentID uuid.UUID) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	MobilePhone string
	Address     string
	Type        Type
	Status      Status
	Notes       string
	Labels      []string
}

func (s *Service) Create(ctx context.Context, agentID uuid.UUID, params CreateParams) (*Client, error) {
	if params.FirstName == "" || params.LastName == "" {
		return nil, fmt.Errorf("client: first and last name are required")
	}

	if params.Type == "" {
		params.Type = TypeBuyer
	}

	if !ValidType(params.Type) {
		return nil, fmt.Errorf("client: invalid type %q", params.Type)
	}

	if params.Status == "" {
		params.Status = StatusActive
	}

	if !ValidClientStatus(params.Status) {
		return nil, fmt.Errorf("client: invalid status %q", params.Status)
	}

	c := &Client{
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Email:       params.Email,
		Phone:       params.Phone,
		MobilePhone: params.MobilePhone,
		Address:     params.Address,
		Type:        params.Type,
		Status:      params.Status,
		Notes:       params.Notes,
		Labels:      params.Labels,
		AgentID:     agentID,
	}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Get enforces ownership: agents only see their own directory.
func (s *Service) Get(ctx context.Context, id, agentID uuid.UUID) (*Client, error) {
	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.AgentID != agentID {
		return nil, ErrForbidden
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, agentID uuid.UUID) ([]*Client, error) {
	return s.repo.ListClients(ctx, agentID)
}

type UpdateParams struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	MobilePhone *string
	Address     *string
	Type        *Type
	Status      *Status
	Notes       *string
	Labels      *[]string
}

func (s *Service) Update(ctx context.Context, id, agentID uuid.UUID, params UpdateParams) (*Client, error) {
	c, err := s.Get(ctx, id, agentID)
	if err != nil {
		return nil, err
	}

	if params.FirstName != nil {
		c.FirstName = *params.FirstName
	}

	if params.LastName != nil {
		c.LastName = *params.LastName
	}

	if params.Email != nil {
		c.Email = *params.Email
	}

	if params.Phone != nil {
		c.Phone = *params.Phone
	}

	if params.MobilePhone != nil {
		c.MobilePhone = *params.MobilePhone
	}

	if params.Address != nil {
		c.Address = *params.Address
	}

	if params.Type != nil {
		if !ValidType(*params.Type) {
			return nil, fmt.Errorf("client: invalid type %q", *params.Type)
		}

		c.Type = *params.Type
	}

	if params.Status != nil {
		if !ValidClientStatus(*params.Status) {
			return nil, fmt.Errorf("client: invalid status %q", *params.Status)
		}

		c.Status = *params.Status
	}

	if params.Notes != nil {
		c.Notes = *params.Notes
	}

	if params.Labels != nil {
		c.Labels = *params.Labels
	}

	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Delete leaves transactions pointing at the client untouched; the
// client_id there is a historical reference, not a constraint.
func (s *Service) Delete(ctx context.Context, id, agentID uuid.UUID) error {
	if _, err := s.Get(ctx, id, agentID); err != nil {
		return err
	}

	return s.repo.DeleteClient(ctx, id)
}

// ImportResult reports a bulk import: what went in and which rows were
// skipped. Imports are not transactional: valid rows land even when later
// rows fail.
type ImportResult struct {
	Created []*Client
	Errors  []RowError
}

func (s *Service) ImportCSV(ctx context.Context, agentID uuid.UUID, r io.Reader) (*ImportResult, error) {
	params, rowErrors, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: rowErrors}

	for _, p := range params {
		c, err := s.Create(ctx, agentID, p)
		if err != nil {
			return result, fmt.Errorf("client: import insert: %w", err)
		}

		result.Created = append(result.Created, c)
	}

	return result, nil
}
