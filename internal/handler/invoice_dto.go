package handler

import (
	"github.com/shopspring/decimal"

	"invokit/internal/domain"
)

const dateLayout = "2006-01-02"

// invoiceResponse is the wire shape for invoices: the invoice number doubles
// as the resource id and dates are normalized to YYYY-MM-DD strings.
type invoiceResponse struct {
	ID            string               `json:"id"`
	InvoiceNumber string               `json:"invoice_number"`
	ClientID      *string              `json:"client_id"`
	ClientName    string               `json:"client_name"`
	CompanyName   string               `json:"company_name"`
	Email         string               `json:"email"`
	Phone         string               `json:"phone"`
	Items         domain.InvoiceItems  `json:"items"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	TaxRate       decimal.Decimal      `json:"tax_rate"`
	Tax           decimal.Decimal      `json:"tax"`
	Total         decimal.Decimal      `json:"total"`
	Status        domain.InvoiceStatus `json:"status"`
	DueDate       string               `json:"due_date"`
	Notes         string               `json:"notes"`
	PaidAt        *string              `json:"paid_at"`
	CreatedAt     string               `json:"created_at"`
	UpdatedAt     string               `json:"updated_at"`
}

func newInvoiceResponse(inv *domain.Invoice) invoiceResponse {
	resp := invoiceResponse{
		ID:            inv.InvoiceNumber,
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.ClientName,
		CompanyName:   inv.CompanyName,
		Email:         inv.Email,
		Phone:         inv.Phone,
		Items:         inv.Items,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Status:        inv.Status,
		DueDate:       inv.DueDate.Format(dateLayout),
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt.Format(dateLayout),
		UpdatedAt:     inv.UpdatedAt.Format(dateLayout),
	}
	if inv.ClientID != nil {
		id := inv.ClientID.String()
		resp.ClientID = &id
	}
	if inv.PaidAt != nil {
		paid := inv.PaidAt.Format(dateLayout)
		resp.PaidAt = &paid
	}
	return resp
}

func newInvoiceResponses(invoices []domain.Invoice) []invoiceResponse {
	out := make([]invoiceResponse, 0, len(invoices))
	for i := range invoices {
		out = append(out, newInvoiceResponse(&invoices[i]))
	}
	return out
}
