package port

import (
	"invokit/internal/domain"
)

// DocumentRenderer renders an invoice into a downloadable document.
type DocumentRenderer interface {
	RenderInvoicePDF(inv *domain.Invoice, issuer *domain.Issuer) ([]byte, error)
}
