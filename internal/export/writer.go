package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"invokit/internal/domain"
)

// BOM is the UTF-8 byte order mark, prepended for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row.
var columns = []string{
	"Invoice Number",
	"Status",
	"Client Name",
	"Company",
	"Email",
	"Phone",
	"Line Item Count",
	"Subtotal",
	"Tax Rate",
	"Tax",
	"Total",
	"Due Date",
	"Paid At",
	"Notes",
	"Created At",
}

const dateLayout = "2006-01-02"

// invoiceToRow flattens an invoice into one export row.
func invoiceToRow(inv *domain.Invoice) []string {
	paidAt := ""
	if inv.PaidAt != nil {
		paidAt = inv.PaidAt.Format(dateLayout)
	}
	return []string{
		inv.InvoiceNumber,
		string(inv.Status),
		inv.ClientName,
		inv.CompanyName,
		inv.Email,
		inv.Phone,
		strconv.Itoa(len(inv.Items)),
		inv.Subtotal.StringFixed(2),
		inv.TaxRate.String(),
		inv.Tax.StringFixed(2),
		inv.Total.StringFixed(2),
		inv.DueDate.Format(dateLayout),
		paidAt,
		inv.Notes,
		inv.CreatedAt.Format(dateLayout),
	}
}

// Writer exports invoices as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *Writer) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		if err := w.csv.Write(invoiceToRow(&invoices[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

// WriteXLSX renders the invoices as a single-sheet XLSX workbook.
func WriteXLSX(w io.Writer, invoices []domain.Invoice) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Invoices"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("export.WriteXLSX header: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("export.WriteXLSX header: %w", err)
		}
	}

	for rowIdx := range invoices {
		row := invoiceToRow(&invoices[rowIdx])
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("export.WriteXLSX row %d: %w", rowIdx, err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("export.WriteXLSX row %d: %w", rowIdx, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	return nil
}
