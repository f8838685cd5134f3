package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"invokit/internal/domain"
	"invokit/internal/port"
)

// createMaxAttempts bounds retries when an insert loses a numbering race.
const createMaxAttempts = 3

// InvoiceItemInput is a single line item on an invoice request. Quantity
// defaults to 1 when omitted.
type InvoiceItemInput struct {
	Description string          `json:"description" binding:"required"`
	Quantity    *int            `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// CreateInvoiceInput is the DTO for creating an invoice. Subtotal, tax and
// total are intentionally absent: totals are always computed server-side.
type CreateInvoiceInput struct {
	ClientID    *uuid.UUID         `json:"client_id"`
	ClientName  string             `json:"client_name"`
	CompanyName string             `json:"company_name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Items       []InvoiceItemInput `json:"items"`
	DueDate     time.Time          `json:"due_date"`
	Notes       string             `json:"notes"`
	TaxRate     *decimal.Decimal   `json:"tax_rate"`
}

// UpdateInvoiceInput is the DTO for a partial invoice update. Absent fields
// are no-ops; totals are recomputed after the merge.
type UpdateInvoiceInput struct {
	ClientName  *string             `json:"client_name"`
	CompanyName *string             `json:"company_name"`
	Email       *string             `json:"email"`
	Phone       *string             `json:"phone"`
	Items       *[]InvoiceItemInput `json:"items"`
	DueDate     *time.Time          `json:"due_date"`
	Notes       *string             `json:"notes"`
	TaxRate     *decimal.Decimal    `json:"tax_rate"`
}

// InvoiceConfig holds invoice computation defaults.
type InvoiceConfig struct {
	DefaultTaxRate   decimal.Decimal
	DuplicateDueDays int
}

// InvoiceService owns invoice creation, total recomputation on every write,
// the status lifecycle, and the overdue sweep.
type InvoiceService interface {
	Create(ctx context.Context, ownerUserID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) (*domain.Invoice, error)
	List(ctx context.Context, ownerUserID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	ListAll(ctx context.Context, ownerUserID uuid.UUID) ([]domain.Invoice, error)
	Update(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string, input UpdateInvoiceInput) (*domain.Invoice, error)
	Delete(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) error
	SetStatus(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string, status domain.InvoiceStatus) (*domain.Invoice, error)
	Duplicate(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) (*domain.Invoice, error)
	SweepOverdue(ctx context.Context) (int64, error)
	Stats(ctx context.Context, ownerUserID uuid.UUID) (*domain.InvoiceStats, error)
	Send(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) error
	RenderPDF(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string, issuer *domain.Issuer) ([]byte, error)
}

type invoiceService struct {
	invoices port.InvoiceRepository
	numbers  InvoiceNumberGenerator
	notifier port.NotificationDispatcher
	renderer port.DocumentRenderer
	cfg      InvoiceConfig
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoices port.InvoiceRepository,
	numbers InvoiceNumberGenerator,
	notifier port.NotificationDispatcher,
	renderer port.DocumentRenderer,
	cfg InvoiceConfig,
) InvoiceService {
	return &invoiceService{
		invoices: invoices,
		numbers:  numbers,
		notifier: notifier,
		renderer: renderer,
		cfg:      cfg,
	}
}

func (s *invoiceService) Create(ctx context.Context, ownerUserID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error) {
	if input.ClientName == "" || input.CompanyName == "" || input.Email == "" || input.Phone == "" {
		return nil, domain.NewValidationError("client_name, company_name, email and phone are required")
	}
	if input.DueDate.IsZero() {
		return nil, domain.NewValidationError("due_date is required")
	}

	items, err := buildInvoiceItems(input.Items)
	if err != nil {
		return nil, err
	}

	taxRate := s.cfg.DefaultTaxRate
	if input.TaxRate != nil {
		taxRate = *input.TaxRate
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, domain.NewValidationError("tax_rate must be between 0 and 1")
	}

	inv := &domain.Invoice{
		OwnerUserID: ownerUserID,
		ClientID:    input.ClientID,
		ClientName:  input.ClientName,
		CompanyName: input.CompanyName,
		Email:       input.Email,
		Phone:       input.Phone,
		Items:       items,
		TaxRate:     taxRate,
		Status:      domain.InvoiceStatusPending,
		DueDate:     input.DueDate,
		Notes:       input.Notes,
	}
	recomputeTotals(inv)

	if err := s.persistNew(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// persistNew assigns a fresh number and inserts the invoice. A duplicate
// number means another writer won the numbering race for the same value;
// the conflict is retried with a regenerated number, never surfaced.
func (s *invoiceService) persistNew(ctx context.Context, inv *domain.Invoice) error {
	for attempt := 0; attempt < createMaxAttempts; attempt++ {
		number, err := s.numbers.Next(ctx)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number

		err = s.invoices.Create(ctx, inv)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
			return err
		}
		log.Printf("invoiceService: number %s already taken, regenerating (attempt %d)", number, attempt+1)
	}
	return fmt.Errorf("invoiceService: exhausted %d numbering attempts", createMaxAttempts)
}

func (s *invoiceService) GetByNumber(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) (*domain.Invoice, error) {
	return s.invoices.GetByNumber(ctx, ownerUserID, invoiceNumber)
}

func (s *invoiceService) List(ctx context.Context, ownerUserID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoices.ListByOwner(ctx, ownerUserID, offset, limit)
}

func (s *invoiceService) ListAll(ctx context.Context, ownerUserID uuid.UUID) ([]domain.Invoice, error) {
	return s.invoices.ListAllByOwner(ctx, ownerUserID)
}

func (s *invoiceService) Update(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string, input UpdateInvoiceInput) (*domain.Invoice, error) {
	inv, err := s.invoices.GetByNumber(ctx, ownerUserID, invoiceNumber)
	if err != nil {
		return nil, err
	}

	if input.ClientName != nil {
		inv.ClientName = *input.ClientName
	}
	if input.CompanyName != nil {
		inv.CompanyName = *input.CompanyName
	}
	if input.Email != nil {
		inv.Email = *input.Email
	}
	if input.Phone != nil {
		inv.Phone = *input.Phone
	}
	if input.Items != nil {
		items, err := buildInvoiceItems(*input.Items)
		if err != nil {
			return nil, err
		}
		inv.Items = items
	}
	if input.DueDate != nil {
		inv.DueDate = *input.DueDate
	}
	if input.Notes != nil {
		inv.Notes = *input.Notes
	}
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, domain.NewValidationError("tax_rate must be between 0 and 1")
		}
		inv.TaxRate = *input.TaxRate
	}

	recomputeTotals(inv)

	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) Delete(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) error {
	return s.invoices.Delete(ctx, ownerUserID, invoiceNumber)
}

// SetStatus applies an explicit status update. Transitions are deliberately
// unrestricted; moving to paid stamps paidAt.
func (s *invoiceService) SetStatus(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("invalid invoice status; allowed: pending, paid, overdue, cancelled")
	}

	inv, err := s.invoices.GetByNumber(ctx, ownerUserID, invoiceNumber)
	if err != nil {
		return nil, err
	}

	inv.Status = status
	if status == domain.InvoiceStatusPaid {
		now := time.Now().UTC()
		inv.PaidAt = &now
	}

	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Duplicate copies the item and pricing fields of an existing invoice into a
// freshly numbered pending invoice due in the configured number of days.
// Status and paidAt are never copied.
func (s *invoiceService) Duplicate(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) (*domain.Invoice, error) {
	src, err := s.invoices.GetByNumber(ctx, ownerUserID, invoiceNumber)
	if err != nil {
		return nil, err
	}

	items := make(domain.InvoiceItems, len(src.Items))
	copy(items, src.Items)

	dup := &domain.Invoice{
		OwnerUserID: ownerUserID,
		ClientID:    src.ClientID,
		ClientName:  src.ClientName,
		CompanyName: src.CompanyName,
		Email:       src.Email,
		Phone:       src.Phone,
		Items:       items,
		TaxRate:     src.TaxRate,
		Status:      domain.InvoiceStatusPending,
		DueDate:     time.Now().UTC().AddDate(0, 0, s.cfg.DuplicateDueDays),
		Notes:       src.Notes,
	}
	recomputeTotals(dup)

	if err := s.persistNew(ctx, dup); err != nil {
		return nil, err
	}
	return dup, nil
}

// SweepOverdue promotes every pending invoice past its due date to overdue
// in one conditional bulk update. Idempotent.
func (s *invoiceService) SweepOverdue(ctx context.Context) (int64, error) {
	return s.invoices.MarkOverdue(ctx, time.Now().UTC())
}

func (s *invoiceService) Stats(ctx context.Context, ownerUserID uuid.UUID) (*domain.InvoiceStats, error) {
	return s.invoices.Stats(ctx, ownerUserID)
}

// Send dispatches an invoice notification in the background, best-effort.
func (s *invoiceService) Send(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) error {
	inv, err := s.invoices.GetByNumber(ctx, ownerUserID, invoiceNumber)
	if err != nil {
		return err
	}

	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.notifier.SendInvoiceNotification(notifyCtx, inv); err != nil {
			log.Printf("invoiceService: invoice notification for %s failed: %v", inv.InvoiceNumber, err)
		}
	}()
	return nil
}

func (s *invoiceService) RenderPDF(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string, issuer *domain.Issuer) ([]byte, error) {
	inv, err := s.invoices.GetByNumber(ctx, ownerUserID, invoiceNumber)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.RenderInvoicePDF(inv, issuer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	return data, nil
}

// buildInvoiceItems validates raw item inputs and applies quantity defaults.
func buildInvoiceItems(inputs []InvoiceItemInput) (domain.InvoiceItems, error) {
	if len(inputs) == 0 {
		return nil, domain.NewValidationError("invoice requires at least one item")
	}
	items := make(domain.InvoiceItems, 0, len(inputs))
	for _, in := range inputs {
		if in.Description == "" {
			return nil, domain.NewValidationError("invoice item description is required")
		}
		if in.Price.IsNegative() {
			return nil, domain.NewValidationError("invoice item price must not be negative")
		}
		qty := 1
		if in.Quantity != nil {
			if *in.Quantity < 1 {
				return nil, domain.NewValidationError("invoice item quantity must be at least 1")
			}
			qty = *in.Quantity
		}
		items = append(items, domain.InvoiceItem{Description: in.Description, Quantity: qty, Price: in.Price})
	}
	return items, nil
}

// recomputeTotals derives subtotal, tax and total from the invoice items.
// Runs immediately before every persist so stored totals always reconcile
// with the line items.
func recomputeTotals(inv *domain.Invoice) {
	subtotal := decimal.Zero
	for _, it := range inv.Items {
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	inv.Subtotal = subtotal
	inv.Tax = subtotal.Mul(inv.TaxRate).Round(2)
	inv.Total = inv.Subtotal.Add(inv.Tax)
}
