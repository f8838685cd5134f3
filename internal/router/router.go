package router

import (
	"github.com/gin-gonic/gin"

	"invokit/internal/handler"
	"invokit/internal/middleware"
	"invokit/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	clientH *handler.ClientHandler,
	invoiceH *handler.InvoiceHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// All business routes require a valid JWT from the identity service.
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Client routes
	clients := protected.Group("/clients")
	clients.POST("", clientH.Create)
	clients.GET("", clientH.List)
	clients.GET("/:id", clientH.GetByID)
	clients.PUT("/:id", clientH.Update)
	clients.DELETE("/:id", clientH.Delete)
	clients.GET("/:id/messages", clientH.ListMessages)
	clients.POST("/:id/messages", clientH.AddMessage)
	clients.POST("/:id/quote", clientH.CreateQuote)
	clients.PUT("/:id/quote/status", clientH.UpdateQuoteStatus)

	// Invoice routes (:id is the invoice number)
	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/stats/summary", invoiceH.Stats)
	invoices.GET("/export", invoiceH.Export)
	invoices.POST("/sweep-overdue", invoiceH.SweepOverdue)
	invoices.GET("/:id", invoiceH.GetByNumber)
	invoices.PUT("/:id", invoiceH.Update)
	invoices.DELETE("/:id", invoiceH.Delete)
	invoices.PUT("/:id/status", invoiceH.SetStatus)
	invoices.POST("/:id/duplicate", invoiceH.Duplicate)
	invoices.POST("/:id/send", invoiceH.Send)
	invoices.GET("/:id/pdf", invoiceH.RenderPDF)

	return r
}
