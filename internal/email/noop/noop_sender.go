package noop

import (
	"context"
	"log"

	"invokit/internal/domain"
	"invokit/internal/port"
)

type noopDispatcher struct{}

// NewNoopDispatcher creates a no-op NotificationDispatcher that logs instead
// of sending. Used in development and tests.
func NewNoopDispatcher() port.NotificationDispatcher {
	return &noopDispatcher{}
}

func (d *noopDispatcher) SendQuoteNotification(_ context.Context, client *domain.Client, quote *domain.Quote) error {
	log.Printf("[NOOP EMAIL] Quote notification for %s (%s): total %s", client.ClientName, client.Email, quote.Total.StringFixed(2))
	return nil
}

func (d *noopDispatcher) SendInvoiceNotification(_ context.Context, inv *domain.Invoice) error {
	log.Printf("[NOOP EMAIL] Invoice notification %s for %s (%s): total %s due %s",
		inv.InvoiceNumber, inv.ClientName, inv.Email, inv.Total.StringFixed(2), inv.DueDate.Format("2006-01-02"))
	return nil
}
