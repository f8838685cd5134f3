package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"invokit/internal/domain"
	"invokit/internal/port"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

type gofpdfRenderer struct{}

// NewRenderer creates a gofpdf-backed DocumentRenderer.
func NewRenderer() port.DocumentRenderer {
	return &gofpdfRenderer{}
}

func (r *gofpdfRenderer) RenderInvoicePDF(inv *domain.Invoice, issuer *domain.Issuer) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(100, 12, "INVOICE")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 12, inv.InvoiceNumber, "", 1, "R", false, 0, "")

	// Issuer block
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 5, "Issued by", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, issuer.Name, "", 1, "L", false, 0, "")
	if issuer.Email != "" {
		pdf.CellFormat(0, 5, issuer.Email, "", 1, "L", false, 0, "")
	}

	// Bill-to block
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 5, "Billed to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, inv.ClientName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, inv.CompanyName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, inv.Email, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, inv.Phone, "", 1, "L", false, 0, "")

	pdf.Ln(2)
	pdf.CellFormat(0, 5, fmt.Sprintf("Due date: %s", inv.DueDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Status: %s", inv.Status), "", 1, "L", false, 0, "")

	// Items table
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(100, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range inv.Items {
		amount := it.Price.Mul(decimalFromInt(it.Quantity))
		pdf.CellFormat(100, 7, it.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", it.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, it.Price.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	// Totals
	pdf.Ln(2)
	pdf.CellFormat(150, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, inv.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 6, fmt.Sprintf("Tax (%s%%)", inv.TaxRate.Mul(decimalFromInt(100)).String()), "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, inv.Tax.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, inv.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if inv.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 5, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, inv.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering invoice %s: %w", inv.InvoiceNumber, err)
	}
	return buf.Bytes(), nil
}
