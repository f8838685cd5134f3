package port

import (
	"context"

	"github.com/google/uuid"

	"invokit/internal/domain"
)

// ClientRepository defines the contract for client persistence.
// All query methods include ownerUserID to enforce owner isolation at the
// data layer; a row belonging to another owner behaves as if it did not exist.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, ownerUserID, clientID uuid.UUID) (*domain.Client, error)
	ListByOwner(ctx context.Context, ownerUserID uuid.UUID, offset, limit int) ([]domain.Client, int, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, ownerUserID, clientID uuid.UUID) error

	// ReplaceQuote overwrites the client's embedded quote wholesale.
	ReplaceQuote(ctx context.Context, ownerUserID, clientID uuid.UUID, quote *domain.Quote) error

	// AppendMessage adds an entry to the client's append-only message log.
	AppendMessage(ctx context.Context, ownerUserID uuid.UUID, msg *domain.ClientMessage) error
	ListMessages(ctx context.Context, ownerUserID, clientID uuid.UUID) ([]domain.ClientMessage, error)
}
