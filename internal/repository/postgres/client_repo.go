package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invokit/internal/domain"
	"invokit/internal/port"
)

type clientRepo struct {
	db *sqlx.DB
}

// NewClientRepo creates a new PostgreSQL-backed ClientRepository.
func NewClientRepo(db *sqlx.DB) port.ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, c *domain.Client) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `INSERT INTO clients (id, owner_user_id, company_name, client_name, email, phone, designation, location, quote, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.OwnerUserID, c.CompanyName, c.ClientName, c.Email, c.Phone,
		c.Designation, c.Location, c.Quote, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("clientRepo.Create: %w", err)
	}
	return nil
}

func (r *clientRepo) GetByID(ctx context.Context, ownerUserID, clientID uuid.UUID) (*domain.Client, error) {
	var c domain.Client
	err := r.db.GetContext(ctx, &c,
		"SELECT * FROM clients WHERE id = $1 AND owner_user_id = $2", clientID, ownerUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("clientRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *clientRepo) ListByOwner(ctx context.Context, ownerUserID uuid.UUID, offset, limit int) ([]domain.Client, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM clients WHERE owner_user_id = $1", ownerUserID)
	if err != nil {
		return nil, 0, fmt.Errorf("clientRepo.ListByOwner count: %w", err)
	}

	var clients []domain.Client
	err = r.db.SelectContext(ctx, &clients,
		`SELECT * FROM clients WHERE owner_user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		ownerUserID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("clientRepo.ListByOwner: %w", err)
	}
	return clients, total, nil
}

func (r *clientRepo) Update(ctx context.Context, c *domain.Client) error {
	c.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE clients SET company_name = $1, client_name = $2, email = $3, phone = $4,
			designation = $5, location = $6, updated_at = $7
		 WHERE id = $8 AND owner_user_id = $9`,
		c.CompanyName, c.ClientName, c.Email, c.Phone, c.Designation, c.Location,
		c.UpdatedAt, c.ID, c.OwnerUserID)
	if err != nil {
		return fmt.Errorf("clientRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, ownerUserID, clientID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM clients WHERE id = $1 AND owner_user_id = $2",
		clientID, ownerUserID)
	if err != nil {
		return fmt.Errorf("clientRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepo) ReplaceQuote(ctx context.Context, ownerUserID, clientID uuid.UUID, quote *domain.Quote) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE clients SET quote = $1, updated_at = $2
		 WHERE id = $3 AND owner_user_id = $4`,
		quote, time.Now().UTC(), clientID, ownerUserID)
	if err != nil {
		return fmt.Errorf("clientRepo.ReplaceQuote: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepo) AppendMessage(ctx context.Context, ownerUserID uuid.UUID, msg *domain.ClientMessage) error {
	msg.CreatedAt = time.Now().UTC()

	// The INSERT is guarded by an ownership subquery so a message can never be
	// attached to another owner's client.
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO client_messages (id, client_id, text, author, created_at)
		 SELECT $1, $2, $3, $4, $5
		 WHERE EXISTS (SELECT 1 FROM clients WHERE id = $2 AND owner_user_id = $6)`,
		msg.ID, msg.ClientID, msg.Text, msg.Author, msg.CreatedAt, ownerUserID)
	if err != nil {
		return fmt.Errorf("clientRepo.AppendMessage: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *clientRepo) ListMessages(ctx context.Context, ownerUserID, clientID uuid.UUID) ([]domain.ClientMessage, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1 AND owner_user_id = $2)",
		clientID, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("clientRepo.ListMessages ownership: %w", err)
	}
	if !exists {
		return nil, domain.ErrClientNotFound
	}

	var messages []domain.ClientMessage
	err = r.db.SelectContext(ctx, &messages,
		"SELECT * FROM client_messages WHERE client_id = $1 ORDER BY created_at ASC",
		clientID)
	if err != nil {
		return nil, fmt.Errorf("clientRepo.ListMessages: %w", err)
	}
	return messages, nil
}
