package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/domain/entity"
	"github.com/sangkips/backoffice-api/internal/domain/repository"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/pagination"
)

// ClientService handles ClientMaster operations
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// ClientInput represents the create and update client input
type ClientInput struct {
	ClientName    string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	Country       *string
	GSTIN         *string
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, input *ClientInput) (*entity.Client, error) {
	name := strings.TrimSpace(input.ClientName)
	if name == "" {
		return nil, apperror.NewFieldError("client_name", "is required")
	}

	client := &entity.Client{ClientName: name}
	applyClientInput(client, input)

	if err := s.clientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("A client named " + name + " already exists")
		}
		return nil, err
	}
	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// LookupClient finds a client by exact name, as used for invoice autofill.
func (s *ClientService) LookupClient(ctx context.Context, name string) (*entity.Client, error) {
	if name == "" {
		return nil, apperror.NewBadRequestError("name is required")
	}
	client, err := s.clientRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists clients
func (s *ClientService) ListClients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	return pagination.Paginate(clients, params, total), nil
}

// UpdateClient updates a client. Renaming does not touch invoices already
// carrying the old name.
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, input *ClientInput) (*entity.Client, error) {
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.ClientName); name != "" {
		client.ClientName = name
	}
	applyClientInput(client, input)

	if err := s.clientRepo.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.NewConflictError("A client named " + client.ClientName + " already exists")
		}
		return nil, err
	}
	return client, nil
}

// DeleteClient deletes a client
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetClient(ctx, id); err != nil {
		return err
	}
	return s.clientRepo.Delete(ctx, id)
}

func applyClientInput(client *entity.Client, input *ClientInput) {
	client.ContactPerson = trimmed(input.ContactPerson)
	client.Email = trimmed(input.Email)
	client.Phone = trimmed(input.Phone)
	client.Address = trimmed(input.Address)
	client.Country = trimmed(input.Country)
	client.GSTIN = trimmed(input.GSTIN)
}
