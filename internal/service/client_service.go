package service

import (
	"context"

	"github.com/google/uuid"

	"invokit/internal/domain"
	"invokit/internal/port"
)

// CreateClientInput is the DTO for creating a client.
type CreateClientInput struct {
	CompanyName string `json:"company_name" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone"`
	Designation string `json:"designation"`
	Location    string `json:"location"`
}

// UpdateClientInput is the DTO for updating a client. Absent fields are no-ops.
type UpdateClientInput struct {
	CompanyName *string `json:"company_name"`
	ClientName  *string `json:"client_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Designation *string `json:"designation"`
	Location    *string `json:"location"`
}

// AddMessageInput is the DTO for appending to a client's message log.
type AddMessageInput struct {
	Text   string `json:"text" binding:"required"`
	Author string `json:"author"`
}

// ClientService defines the client management contract. Every operation is
// scoped to the authenticated owner.
type ClientService interface {
	Create(ctx context.Context, ownerUserID uuid.UUID, input CreateClientInput) (*domain.Client, error)
	GetByID(ctx context.Context, ownerUserID, clientID uuid.UUID) (*domain.Client, error)
	List(ctx context.Context, ownerUserID uuid.UUID, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, ownerUserID, clientID uuid.UUID, input UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, ownerUserID, clientID uuid.UUID) error
	AddMessage(ctx context.Context, ownerUserID, clientID uuid.UUID, input AddMessageInput) (*domain.ClientMessage, error)
	ListMessages(ctx context.Context, ownerUserID, clientID uuid.UUID) ([]domain.ClientMessage, error)
}

type clientService struct {
	repo port.ClientRepository
}

// NewClientService creates a new ClientService implementation.
func NewClientService(repo port.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) Create(ctx context.Context, ownerUserID uuid.UUID, input CreateClientInput) (*domain.Client, error) {
	client := &domain.Client{
		ID:          uuid.New(),
		OwnerUserID: ownerUserID,
		CompanyName: input.CompanyName,
		ClientName:  input.ClientName,
		Email:       input.Email,
		Phone:       input.Phone,
		Designation: input.Designation,
		Location:    input.Location,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) GetByID(ctx context.Context, ownerUserID, clientID uuid.UUID) (*domain.Client, error) {
	return s.repo.GetByID(ctx, ownerUserID, clientID)
}

func (s *clientService) List(ctx context.Context, ownerUserID uuid.UUID, offset, limit int) ([]domain.Client, int, error) {
	return s.repo.ListByOwner(ctx, ownerUserID, offset, limit)
}

func (s *clientService) Update(ctx context.Context, ownerUserID, clientID uuid.UUID, input UpdateClientInput) (*domain.Client, error) {
	client, err := s.repo.GetByID(ctx, ownerUserID, clientID)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		client.CompanyName = *input.CompanyName
	}
	if input.ClientName != nil {
		client.ClientName = *input.ClientName
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Designation != nil {
		client.Designation = *input.Designation
	}
	if input.Location != nil {
		client.Location = *input.Location
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, ownerUserID, clientID uuid.UUID) error {
	return s.repo.Delete(ctx, ownerUserID, clientID)
}

func (s *clientService) AddMessage(ctx context.Context, ownerUserID, clientID uuid.UUID, input AddMessageInput) (*domain.ClientMessage, error) {
	if input.Text == "" {
		return nil, domain.NewValidationError("message text is required")
	}
	msg := &domain.ClientMessage{
		ID:       uuid.New(),
		ClientID: clientID,
		Text:     input.Text,
		Author:   input.Author,
	}
	if err := s.repo.AppendMessage(ctx, ownerUserID, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *clientService) ListMessages(ctx context.Context, ownerUserID, clientID uuid.UUID) ([]domain.ClientMessage, error) {
	return s.repo.ListMessages(ctx, ownerUserID, clientID)
}
