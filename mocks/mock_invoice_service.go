package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invokit/internal/domain"
	"invokit/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Create(ctx context.Context, ownerUserID uuid.UUID, input service.CreateInvoiceInput) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerUserID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetByNumber(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerUserID, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, ownerUserID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, ownerUserID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceService) ListAll(ctx context.Context, ownerUserID uuid.UUID) ([]domain.Invoice, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Update(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string, input service.UpdateInvoiceInput) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerUserID, invoiceNumber, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Delete(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) error {
	args := m.Called(ctx, ownerUserID, invoiceNumber)
	return args.Error(0)
}

func (m *MockInvoiceService) SetStatus(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerUserID, invoiceNumber, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) Duplicate(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) (*domain.Invoice, error) {
	args := m.Called(ctx, ownerUserID, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) SweepOverdue(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceService) Stats(ctx context.Context, ownerUserID uuid.UUID) (*domain.InvoiceStats, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceStats), args.Error(1)
}

func (m *MockInvoiceService) Send(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) error {
	args := m.Called(ctx, ownerUserID, invoiceNumber)
	return args.Error(0)
}

func (m *MockInvoiceService) RenderPDF(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string, issuer *domain.Issuer) ([]byte, error) {
	args := m.Called(ctx, ownerUserID, invoiceNumber, issuer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
