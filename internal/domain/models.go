package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client represents a billable customer owned by a single user.
type Client struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerUserID uuid.UUID `db:"owner_user_id" json:"owner_user_id"`
	CompanyName string    `db:"company_name" json:"company_name"`
	ClientName  string    `db:"client_name" json:"client_name"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	Designation string    `db:"designation" json:"designation"`
	Location    string    `db:"location" json:"location"`
	Quote       *Quote    `db:"quote" json:"quote"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ClientMessage is a single entry in a client's append-only message log.
type ClientMessage struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ClientID  uuid.UUID `db:"client_id" json:"client_id"`
	Text      string    `db:"text" json:"text"`
	Author    string    `db:"author" json:"author"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// QuoteItem is a single priced line on a quote.
type QuoteItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Quote is the client's single current quote. It is stored as an embedded
// value on the client and replaced wholesale on every (re)creation; there is
// no quote history.
type Quote struct {
	Items            []QuoteItem     `json:"items"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Tax              decimal.Decimal `json:"tax"`
	Total            decimal.Decimal `json:"total"`
	Status           QuoteStatus     `json:"status"`
	InvoiceGenerated bool            `json:"invoice_generated"`
	InvoiceNumber    *string         `json:"invoice_number"`
	CreatedAt        time.Time       `json:"created_at"`
}

// Value implements driver.Valuer so a quote can be persisted as JSONB.
func (q *Quote) Value() (driver.Value, error) {
	if q == nil {
		return nil, nil
	}
	return json.Marshal(q)
}

// Scan implements sql.Scanner for reading a JSONB quote column.
func (q *Quote) Scan(src interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, q)
	case string:
		return json.Unmarshal([]byte(v), q)
	default:
		return fmt.Errorf("unsupported quote column type %T", src)
	}
}

// InvoiceItem is a single billable line on an invoice.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// InvoiceItems is stored as a JSONB array on the invoice row.
type InvoiceItems []InvoiceItem

// Value implements driver.Valuer.
func (it InvoiceItems) Value() (driver.Value, error) {
	return json.Marshal(it)
}

// Scan implements sql.Scanner.
func (it *InvoiceItems) Scan(src interface{}) error {
	if src == nil {
		*it = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, it)
	case string:
		return json.Unmarshal([]byte(v), it)
	default:
		return fmt.Errorf("unsupported invoice items column type %T", src)
	}
}

// Invoice is a uniquely numbered billable document. Totals are always
// recomputed from the items immediately before every persist; caller-supplied
// totals are never trusted.
type Invoice struct {
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	OwnerUserID   uuid.UUID       `db:"owner_user_id" json:"owner_user_id"`
	ClientID      *uuid.UUID      `db:"client_id" json:"client_id"`
	ClientName    string          `db:"client_name" json:"client_name"`
	CompanyName   string          `db:"company_name" json:"company_name"`
	Email         string          `db:"email" json:"email"`
	Phone         string          `db:"phone" json:"phone"`
	Items         InvoiceItems    `db:"items" json:"items"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxRate       decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	Tax           decimal.Decimal `db:"tax" json:"tax"`
	Total         decimal.Decimal `db:"total" json:"total"`
	Status        InvoiceStatus   `db:"status" json:"status"`
	DueDate       time.Time       `db:"due_date" json:"due_date"`
	Notes         string          `db:"notes" json:"notes"`
	PaidAt        *time.Time      `db:"paid_at" json:"paid_at"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// InvoiceStats aggregates an owner's invoices by status and amount.
type InvoiceStats struct {
	Total         int             `db:"total" json:"total"`
	Paid          int             `db:"paid" json:"paid"`
	Pending       int             `db:"pending" json:"pending"`
	Overdue       int             `db:"overdue" json:"overdue"`
	TotalRevenue  decimal.Decimal `db:"total_revenue" json:"total_revenue"`
	PendingAmount decimal.Decimal `db:"pending_amount" json:"pending_amount"`
}

// Issuer identifies the authenticated user an invoice document is issued by.
type Issuer struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
}
