package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"invokit/internal/config"
	"invokit/internal/email/noop"
	"invokit/internal/email/ses"
	"invokit/internal/handler"
	"invokit/internal/pdf"
	"invokit/internal/port"
	"invokit/internal/repository/postgres"
	"invokit/internal/router"
	"invokit/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	taxRate, err := decimal.NewFromString(cfg.Invoice.TaxRate)
	if err != nil {
		return fmt.Errorf("invalid invoice tax rate %q: %w", cfg.Invoice.TaxRate, err)
	}

	// Initialize repositories
	clientRepo := postgres.NewClientRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	sequenceRepo := postgres.NewSequenceRepo(db)

	// Initialize collaborators
	var notifier port.NotificationDispatcher
	switch cfg.Email.Provider {
	case "ses":
		notifier, err = ses.NewSESDispatcher(cfg.Email.Region, cfg.Email.AccessKey,
			cfg.Email.SecretKey, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES dispatcher: %w", err)
		}
	default:
		notifier = noop.NewNoopDispatcher()
	}
	renderer := pdf.NewRenderer()

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	numberGen := service.NewInvoiceNumberGenerator(sequenceRepo, nil)
	clientSvc := service.NewClientService(clientRepo)
	quoteSvc := service.NewQuoteService(clientRepo, notifier, taxRate)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, numberGen, notifier, renderer, service.InvoiceConfig{
		DefaultTaxRate:   taxRate,
		DuplicateDueDays: cfg.Invoice.DuplicateDueDays,
	})

	// Initialize handlers
	clientH := handler.NewClientHandler(clientSvc, quoteSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	healthH := handler.NewHealthHandler(db)

	// Start the overdue sweep worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweepWorker := service.NewOverdueSweepWorker(invoiceSvc, service.OverdueSweepConfig{
		Interval: time.Duration(cfg.Sweep.IntervalSecs) * time.Second,
	})
	go sweepWorker.Start(ctx)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, clientH, invoiceH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
