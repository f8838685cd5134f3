package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invokit/internal/domain"
)

// MockNotificationDispatcher is a mock implementation of port.NotificationDispatcher.
type MockNotificationDispatcher struct {
	mock.Mock
}

func (m *MockNotificationDispatcher) SendQuoteNotification(ctx context.Context, client *domain.Client, quote *domain.Quote) error {
	args := m.Called(ctx, client, quote)
	return args.Error(0)
}

func (m *MockNotificationDispatcher) SendInvoiceNotification(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
