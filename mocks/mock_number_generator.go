package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNumberGenerator is a mock implementation of service.InvoiceNumberGenerator.
type MockNumberGenerator struct {
	mock.Mock
}

func (m *MockNumberGenerator) Next(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
