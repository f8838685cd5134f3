package port

import (
	"context"

	"invokit/internal/domain"
)

// NotificationDispatcher sends quote and invoice emails. Callers treat both
// operations as best-effort: a failure is logged, never propagated into the
// write that triggered it.
type NotificationDispatcher interface {
	SendQuoteNotification(ctx context.Context, client *domain.Client, quote *domain.Quote) error
	SendInvoiceNotification(ctx context.Context, inv *domain.Invoice) error
}
