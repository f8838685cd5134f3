package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invokit/internal/domain"
	"invokit/internal/service"
)

// MockQuoteService is a mock implementation of service.QuoteService.
type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) CreateQuote(ctx context.Context, ownerUserID, clientID uuid.UUID, input service.CreateQuoteInput) (*domain.Quote, error) {
	args := m.Called(ctx, ownerUserID, clientID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) UpdateQuoteStatus(ctx context.Context, ownerUserID, clientID uuid.UUID, input service.UpdateQuoteStatusInput) (*domain.Quote, error) {
	args := m.Called(ctx, ownerUserID, clientID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}
