package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invokit/internal/domain"
)

// MockClientRepo is a mock implementation of port.ClientRepository.
type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepo) GetByID(ctx context.Context, ownerUserID, clientID uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, ownerUserID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepo) ListByOwner(ctx context.Context, ownerUserID uuid.UUID, offset, limit int) ([]domain.Client, int, error) {
	args := m.Called(ctx, ownerUserID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Client), args.Int(1), args.Error(2)
}

func (m *MockClientRepo) Update(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepo) Delete(ctx context.Context, ownerUserID, clientID uuid.UUID) error {
	args := m.Called(ctx, ownerUserID, clientID)
	return args.Error(0)
}

func (m *MockClientRepo) ReplaceQuote(ctx context.Context, ownerUserID, clientID uuid.UUID, quote *domain.Quote) error {
	args := m.Called(ctx, ownerUserID, clientID, quote)
	return args.Error(0)
}

func (m *MockClientRepo) AppendMessage(ctx context.Context, ownerUserID uuid.UUID, msg *domain.ClientMessage) error {
	args := m.Called(ctx, ownerUserID, msg)
	return args.Error(0)
}

func (m *MockClientRepo) ListMessages(ctx context.Context, ownerUserID, clientID uuid.UUID) ([]domain.ClientMessage, error) {
	args := m.Called(ctx, ownerUserID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientMessage), args.Error(1)
}
