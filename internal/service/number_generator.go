package service

import (
	"context"
	"fmt"
	"time"

	"invokit/internal/port"
)

// InvoiceNumberGenerator issues unique, year-scoped, monotonically increasing
// invoice numbers of the form INV-{year}-{seq:04d}. The sequence restarts at
// 0001 for each new calendar year, determined at generation time.
type InvoiceNumberGenerator interface {
	Next(ctx context.Context) (string, error)
}

type invoiceNumberGenerator struct {
	seqRepo port.SequenceRepository
	now     func() time.Time
}

// NewInvoiceNumberGenerator creates a generator backed by an atomic keyed
// sequence. A nil now defaults to time.Now.
func NewInvoiceNumberGenerator(seqRepo port.SequenceRepository, now func() time.Time) InvoiceNumberGenerator {
	if now == nil {
		now = time.Now
	}
	return &invoiceNumberGenerator{seqRepo: seqRepo, now: now}
}

func (g *invoiceNumberGenerator) Next(ctx context.Context) (string, error) {
	year := g.now().UTC().Year()
	seq, err := g.seqRepo.NextValue(ctx, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%d-%04d", year, seq), nil
}
