package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"invokit/internal/domain"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func sampleInvoice(t *testing.T) domain.Invoice {
	t.Helper()
	clientID := uuid.New()
	paidAt := time.Date(2026, 8, 20, 14, 0, 0, 0, time.UTC)
	return domain.Invoice{
		InvoiceNumber: "INV-2026-0042",
		OwnerUserID:   uuid.New(),
		ClientID:      &clientID,
		ClientName:    "Jane Doe",
		CompanyName:   "Acme Corp",
		Email:         "jane@acme.test",
		Phone:         "+1 555 0100",
		Items: domain.InvoiceItems{
			{Description: "Consulting", Quantity: 2, Price: dec(t, "100")},
			{Description: "Hosting", Quantity: 1, Price: dec(t, "50")},
		},
		Subtotal:  dec(t, "250"),
		TaxRate:   dec(t, "0.1"),
		Tax:       dec(t, "25"),
		Total:     dec(t, "275"),
		Status:    domain.InvoiceStatusPaid,
		DueDate:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Notes:     "net 30",
		PaidAt:    &paidAt,
		CreatedAt: time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC),
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Flush())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 15)
	assert.Equal(t, "Invoice Number", row[0])
	assert.Equal(t, "Status", row[1])
	assert.Equal(t, "Created At", row[14])
}

func TestWriteInvoices(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInvoices([]domain.Invoice{sampleInvoice(t)}))
	require.NoError(t, w.Flush())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 15)
	assert.Equal(t, "INV-2026-0042", row[0])
	assert.Equal(t, "paid", row[1])
	assert.Equal(t, "Jane Doe", row[2])
	assert.Equal(t, "Acme Corp", row[3])
	assert.Equal(t, "jane@acme.test", row[4])
	assert.Equal(t, "+1 555 0100", row[5])
	assert.Equal(t, "2", row[6])
	assert.Equal(t, "250.00", row[7])
	assert.Equal(t, "0.1", row[8])
	assert.Equal(t, "25.00", row[9])
	assert.Equal(t, "275.00", row[10])
	assert.Equal(t, "2026-09-15", row[11])
	assert.Equal(t, "2026-08-20", row[12])
	assert.Equal(t, "net 30", row[13])
	assert.Equal(t, "2026-08-15", row[14])
}

func TestWriteInvoices_UnpaidHasEmptyPaidAt(t *testing.T) {
	inv := sampleInvoice(t)
	inv.Status = domain.InvoiceStatusPending
	inv.PaidAt = nil

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInvoices([]domain.Invoice{inv}))
	require.NoError(t, w.Flush())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Equal(t, "pending", row[1])
	assert.Empty(t, row[12])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, []domain.Invoice{sampleInvoice(t)}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Invoice Number", rows[0][0])
	assert.Equal(t, "INV-2026-0042", rows[1][0])
	assert.Equal(t, "275.00", rows[1][10])
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
