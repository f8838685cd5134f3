package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invokit/internal/domain"
	"invokit/internal/service"
)

// MockClientService is a mock implementation of service.ClientService.
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) Create(ctx context.Context, ownerUserID uuid.UUID, input service.CreateClientInput) (*domain.Client, error) {
	args := m.Called(ctx, ownerUserID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) GetByID(ctx context.Context, ownerUserID, clientID uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, ownerUserID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) List(ctx context.Context, ownerUserID uuid.UUID, offset, limit int) ([]domain.Client, int, error) {
	args := m.Called(ctx, ownerUserID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Client), args.Int(1), args.Error(2)
}

func (m *MockClientService) Update(ctx context.Context, ownerUserID, clientID uuid.UUID, input service.UpdateClientInput) (*domain.Client, error) {
	args := m.Called(ctx, ownerUserID, clientID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) Delete(ctx context.Context, ownerUserID, clientID uuid.UUID) error {
	args := m.Called(ctx, ownerUserID, clientID)
	return args.Error(0)
}

func (m *MockClientService) AddMessage(ctx context.Context, ownerUserID, clientID uuid.UUID, input service.AddMessageInput) (*domain.ClientMessage, error) {
	args := m.Called(ctx, ownerUserID, clientID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientMessage), args.Error(1)
}

func (m *MockClientService) ListMessages(ctx context.Context, ownerUserID, clientID uuid.UUID) ([]domain.ClientMessage, error) {
	args := m.Called(ctx, ownerUserID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientMessage), args.Error(1)
}
