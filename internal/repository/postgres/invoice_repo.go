package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"invokit/internal/domain"
	"invokit/internal/port"
)

// uniqueViolation is the PostgreSQL error code for unique-constraint violations.
const uniqueViolation = "23505"

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `INSERT INTO invoices (invoice_number, owner_user_id, client_id, client_name, company_name,
			email, phone, items, subtotal, tax_rate, tax, total, status, due_date, notes, paid_at,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.ExecContext(ctx, query,
		inv.InvoiceNumber, inv.OwnerUserID, inv.ClientID, inv.ClientName, inv.CompanyName,
		inv.Email, inv.Phone, inv.Items, inv.Subtotal, inv.TaxRate, inv.Tax, inv.Total,
		inv.Status, inv.DueDate, inv.Notes, inv.PaidAt, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByNumber(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE invoice_number = $1 AND owner_user_id = $2",
		invoiceNumber, ownerUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByNumber: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) ListByOwner(ctx context.Context, ownerUserID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices WHERE owner_user_id = $1", ownerUserID)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByOwner count: %w", err)
	}

	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM invoices WHERE owner_user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		ownerUserID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByOwner: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListAllByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		"SELECT * FROM invoices WHERE owner_user_id = $1 ORDER BY created_at DESC",
		ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListAllByOwner: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET client_id = $1, client_name = $2, company_name = $3, email = $4,
			phone = $5, items = $6, subtotal = $7, tax_rate = $8, tax = $9, total = $10,
			status = $11, due_date = $12, notes = $13, paid_at = $14, updated_at = $15
		 WHERE invoice_number = $16 AND owner_user_id = $17`,
		inv.ClientID, inv.ClientName, inv.CompanyName, inv.Email, inv.Phone, inv.Items,
		inv.Subtotal, inv.TaxRate, inv.Tax, inv.Total, inv.Status, inv.DueDate, inv.Notes,
		inv.PaidAt, inv.UpdatedAt, inv.InvoiceNumber, inv.OwnerUserID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, ownerUserID uuid.UUID, invoiceNumber string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM invoices WHERE invoice_number = $1 AND owner_user_id = $2",
		invoiceNumber, ownerUserID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error) {
	// One conditional bulk update across all owners. Re-running is a no-op
	// for rows already promoted, and paid/cancelled rows are never touched.
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = 'overdue', updated_at = NOW()
		 WHERE status = 'pending' AND due_date < $1`,
		cutoff)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.MarkOverdue: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

const statsQuery = `SELECT
	COUNT(*) AS total,
	COUNT(CASE WHEN status = 'paid' THEN 1 END) AS paid,
	COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending,
	COUNT(CASE WHEN status = 'overdue' THEN 1 END) AS overdue,
	COALESCE(SUM(CASE WHEN status = 'paid' THEN total END), 0) AS total_revenue,
	COALESCE(SUM(CASE WHEN status = 'pending' THEN total END), 0) AS pending_amount
FROM invoices WHERE owner_user_id = $1`

func (r *invoiceRepo) Stats(ctx context.Context, ownerUserID uuid.UUID) (*domain.InvoiceStats, error) {
	var stats domain.InvoiceStats
	if err := r.db.GetContext(ctx, &stats, statsQuery, ownerUserID); err != nil {
		return nil, fmt.Errorf("invoiceRepo.Stats: %w", err)
	}
	return &stats, nil
}
