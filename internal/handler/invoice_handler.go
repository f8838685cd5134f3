package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"invokit/internal/domain"
	"invokit/internal/export"
	"invokit/internal/middleware"
	"invokit/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.Create(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, newInvoiceResponse(inv))
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, newInvoiceResponses(invoices), PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByNumber handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByNumber(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, newInvoiceResponse(inv))
}

// Update handles PUT /api/v1/invoices/:id
// Only supplied fields are merged; totals are recomputed server-side.
func (h *InvoiceHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input service.UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.Update(c.Request.Context(), userID, c.Param("id"), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, newInvoiceResponse(inv))
}

// Delete handles DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}

type setStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required"`
}

// SetStatus handles PUT /api/v1/invoices/:id/status
func (h *InvoiceHandler) SetStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.SetStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, newInvoiceResponse(inv))
}

// Duplicate handles POST /api/v1/invoices/:id/duplicate
func (h *InvoiceHandler) Duplicate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.Duplicate(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, newInvoiceResponse(inv))
}

// Send handles POST /api/v1/invoices/:id/send
// The notification is dispatched in the background; a 200 only means the
// invoice exists and the send was queued.
func (h *InvoiceHandler) Send(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.Send(c.Request.Context(), userID, c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice notification queued"})
}

// RenderPDF handles GET /api/v1/invoices/:id/pdf
func (h *InvoiceHandler) RenderPDF(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	claims, err := middleware.GetClaims(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	number := c.Param("id")
	data, err := h.invoiceService.RenderPDF(c.Request.Context(), userID, number, claims.AsIssuer())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", number))
	c.Data(http.StatusOK, "application/pdf", data)
}

// Stats handles GET /api/v1/invoices/stats/summary
func (h *InvoiceHandler) Stats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.invoiceService.Stats(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

// SweepOverdue handles POST /api/v1/invoices/sweep-overdue
// Manual trigger for the same conditional bulk update the background worker
// runs on its schedule.
func (h *InvoiceHandler) SweepOverdue(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	n, err := h.invoiceService.SweepOverdue(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"marked_overdue": n})
}

// Export handles GET /api/v1/invoices/export?format=csv|xlsx
func (h *InvoiceHandler) Export(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListAll(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("invoices-%s", time.Now().UTC().Format("20060102"))

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, invoices); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	case "csv":
		var buf bytes.Buffer
		buf.Write(export.BOM)
		w := export.NewWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			HandleError(c, err)
			return
		}
		if err := w.WriteInvoices(invoices); err != nil {
			HandleError(c, err)
			return
		}
		if err := w.Flush(); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())

	default:
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "format must be csv or xlsx")
	}
}
