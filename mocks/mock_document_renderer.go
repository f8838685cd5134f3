package mocks

import (
	"github.com/stretchr/testify/mock"

	"invokit/internal/domain"
)

// MockDocumentRenderer is a mock implementation of port.DocumentRenderer.
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) RenderInvoicePDF(inv *domain.Invoice, issuer *domain.Issuer) ([]byte, error) {
	args := m.Called(inv, issuer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
