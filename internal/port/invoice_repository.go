package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"invokit/internal/domain"
)

// InvoiceRepository defines the contract for invoice persistence.
// Create returns domain.ErrDuplicateInvoiceNumber on a unique-constraint
// violation so callers can regenerate the number and retry.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByNumber(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) (*domain.Invoice, error)
	ListByOwner(ctx context.Context, ownerUserID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	ListAllByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	Delete(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) error

	// MarkOverdue promotes every pending invoice whose due date lies before
	// cutoff to overdue in a single conditional bulk update. It returns the
	// number of rows transitioned and is idempotent.
	MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error)

	// Stats aggregates the owner's invoices by status and amount.
	Stats(ctx context.Context, ownerUserID uuid.UUID) (*domain.InvoiceStats, error)
}

// SequenceRepository hands out monotonically increasing values from a keyed
// sequence. NextValue must be atomic: two concurrent callers for the same
// year never observe the same value.
type SequenceRepository interface {
	NextValue(ctx context.Context, year int) (int64, error)
}
