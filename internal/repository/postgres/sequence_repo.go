package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"invokit/internal/port"
)

type sequenceRepo struct {
	db *sqlx.DB
}

// NewSequenceRepo creates a new PostgreSQL-backed SequenceRepository.
func NewSequenceRepo(db *sqlx.DB) port.SequenceRepository {
	return &sequenceRepo{db: db}
}

// NextValue advances the per-year counter in a single atomic statement.
// The upsert serializes concurrent callers on the row for the year, so two
// callers can never observe the same value. A fresh year starts at 1.
func (r *sequenceRepo) NextValue(ctx context.Context, year int) (int64, error) {
	var next int64
	err := r.db.GetContext(ctx, &next,
		`INSERT INTO invoice_sequences (year, last_value)
		 VALUES ($1, 1)
		 ON CONFLICT (year)
		 DO UPDATE SET last_value = invoice_sequences.last_value + 1
		 RETURNING last_value`,
		year)
	if err != nil {
		return 0, fmt.Errorf("sequenceRepo.NextValue: %w", err)
	}
	return next, nil
}
