package service

import (
	"context"
	"log"
	"time"
)

// OverdueSweepConfig holds settings for the overdue sweep worker.
type OverdueSweepConfig struct {
	Interval time.Duration
}

// OverdueSweepWorker periodically promotes stale pending invoices to overdue.
type OverdueSweepWorker struct {
	invoices InvoiceService
	cfg      OverdueSweepConfig
}

// NewOverdueSweepWorker creates a new OverdueSweepWorker.
func NewOverdueSweepWorker(invoices InvoiceService, cfg OverdueSweepConfig) *OverdueSweepWorker {
	return &OverdueSweepWorker{invoices: invoices, cfg: cfg}
}

// Start runs the sweep loop until ctx is canceled. One sweep runs immediately
// on startup so a restarted server does not wait a full interval to catch up.
func (w *OverdueSweepWorker) Start(ctx context.Context) {
	log.Printf("overdueSweepWorker: started (interval=%s)", w.cfg.Interval)

	w.sweep(ctx)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("overdueSweepWorker: shutdown complete")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *OverdueSweepWorker) sweep(ctx context.Context) {
	n, err := w.invoices.SweepOverdue(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("overdueSweepWorker: sweep error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("overdueSweepWorker: marked %d invoices overdue", n)
	}
}
