package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"invokit/internal/domain"
	"invokit/internal/port"
)

// QuoteItemInput is a single line item on a quote request. Quantity defaults
// to 1 when omitted.
type QuoteItemInput struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity *int            `json:"quantity"`
}

// CreateQuoteInput is the DTO for creating (replacing) a client's quote.
type CreateQuoteInput struct {
	Items []QuoteItemInput `json:"items"`
}

// UpdateQuoteStatusInput is the DTO for a partial quote-status update. Only
// supplied fields are applied.
type UpdateQuoteStatusInput struct {
	Status           *domain.QuoteStatus `json:"status"`
	InvoiceGenerated *bool               `json:"invoice_generated"`
	InvoiceNumber    *string             `json:"invoice_number"`
}

// QuoteService owns quote total computation and quote status management.
type QuoteService interface {
	CreateQuote(ctx context.Context, ownerUserID, clientID uuid.UUID, input CreateQuoteInput) (*domain.Quote, error)
	UpdateQuoteStatus(ctx context.Context, ownerUserID, clientID uuid.UUID, input UpdateQuoteStatusInput) (*domain.Quote, error)
}

type quoteService struct {
	clients  port.ClientRepository
	notifier port.NotificationDispatcher
	taxRate  decimal.Decimal
}

// NewQuoteService creates a new QuoteService implementation.
func NewQuoteService(clients port.ClientRepository, notifier port.NotificationDispatcher, taxRate decimal.Decimal) QuoteService {
	return &quoteService{clients: clients, notifier: notifier, taxRate: taxRate}
}

// CreateQuote computes totals from the given items and replaces the client's
// quote wholesale. On success a quote notification is dispatched in the
// background; its failure is logged, never propagated.
func (s *quoteService) CreateQuote(ctx context.Context, ownerUserID, clientID uuid.UUID, input CreateQuoteInput) (*domain.Quote, error) {
	if len(input.Items) == 0 {
		return nil, domain.NewValidationError("quote requires at least one item")
	}

	items := make([]domain.QuoteItem, 0, len(input.Items))
	subtotal := decimal.Zero
	for _, in := range input.Items {
		if in.Name == "" {
			return nil, domain.NewValidationError("quote item name is required")
		}
		if in.Price.IsNegative() {
			return nil, domain.NewValidationError("quote item price must not be negative")
		}
		qty := 1
		if in.Quantity != nil {
			if *in.Quantity < 1 {
				return nil, domain.NewValidationError("quote item quantity must be at least 1")
			}
			qty = *in.Quantity
		}
		items = append(items, domain.QuoteItem{Name: in.Name, Price: in.Price, Quantity: qty})
		subtotal = subtotal.Add(in.Price.Mul(decimal.NewFromInt(int64(qty))))
	}

	tax := subtotal.Mul(s.taxRate).Round(2)
	quote := &domain.Quote{
		Items:            items,
		Subtotal:         subtotal,
		Tax:              tax,
		Total:            subtotal.Add(tax),
		Status:           domain.QuoteStatusPending,
		InvoiceGenerated: false,
		CreatedAt:        time.Now().UTC(),
	}

	client, err := s.clients.GetByID(ctx, ownerUserID, clientID)
	if err != nil {
		return nil, err
	}
	if err := s.clients.ReplaceQuote(ctx, ownerUserID, clientID, quote); err != nil {
		return nil, err
	}
	client.Quote = quote

	// Fire-and-forget: the notification runs detached from the request
	// context so it is not cancelled when the response is written.
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.notifier.SendQuoteNotification(notifyCtx, client, quote); err != nil {
			log.Printf("quoteService: quote notification for client %s failed: %v", client.ID, err)
		}
	}()

	return quote, nil
}

func (s *quoteService) UpdateQuoteStatus(ctx context.Context, ownerUserID, clientID uuid.UUID, input UpdateQuoteStatusInput) (*domain.Quote, error) {
	client, err := s.clients.GetByID(ctx, ownerUserID, clientID)
	if err != nil {
		return nil, err
	}
	if client.Quote == nil {
		return nil, domain.ErrQuoteNotFound
	}

	quote := client.Quote
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.NewValidationError("invalid quote status; allowed: pending, approved, rejected")
		}
		quote.Status = *input.Status
	}
	if input.InvoiceGenerated != nil {
		quote.InvoiceGenerated = *input.InvoiceGenerated
	}
	if input.InvoiceNumber != nil {
		quote.InvoiceNumber = input.InvoiceNumber
	}

	if err := s.clients.ReplaceQuote(ctx, ownerUserID, clientID, quote); err != nil {
		return nil, err
	}
	return quote, nil
}
