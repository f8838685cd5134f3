package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"invokit/internal/domain"
	"invokit/internal/handler"
	"invokit/internal/middleware"
	"invokit/internal/service"
	"invokit/mocks"
)

func newInvoiceHandler() (*handler.InvoiceHandler, *mocks.MockInvoiceService) {
	invoiceSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(invoiceSvc)
	return h, invoiceSvc
}

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleInvoice(ownerID uuid.UUID) *domain.Invoice {
	return &domain.Invoice{
		InvoiceNumber: "INV-2026-0001",
		OwnerUserID:   ownerID,
		ClientName:    "Jane Doe",
		CompanyName:   "Acme Corp",
		Email:         "jane@acme.test",
		Phone:         "+1 555 0100",
		Items:         domain.InvoiceItems{{Description: "Consulting", Quantity: 2, Price: mustDec("100")}},
		Subtotal:      mustDec("200"),
		TaxRate:       mustDec("0.10"),
		Tax:           mustDec("20"),
		Total:         mustDec("220"),
		Status:        domain.InvoiceStatusPending,
		DueDate:       time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
		CreatedAt:     time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
}

// --- Create ---

func TestInvoiceHandler_Create_Success(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	invoiceSvc.On("Create", mock.Anything, userID, mock.AnythingOfType("service.CreateInvoiceInput")).
		Return(sampleInvoice(userID), nil)

	body, _ := json.Marshal(map[string]interface{}{
		"client_name":  "Jane Doe",
		"company_name": "Acme Corp",
		"email":        "jane@acme.test",
		"phone":        "+1 555 0100",
		"due_date":     "2026-09-30T00:00:00Z",
		"items": []map[string]interface{}{
			{"description": "Consulting", "quantity": 2, "price": "100"},
		},
	})

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodPost, "/api/v1/invoices", body)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	// Wire shape: invoice number doubles as id, dates are YYYY-MM-DD
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			ID            string `json:"id"`
			InvoiceNumber string `json:"invoice_number"`
			DueDate       string `json:"due_date"`
		} `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "INV-2026-0001", resp.Data.ID)
	assert.Equal(t, "INV-2026-0001", resp.Data.InvoiceNumber)
	assert.Equal(t, "2026-09-30", resp.Data.DueDate)
}

func TestInvoiceHandler_Create_ValidationError(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	invoiceSvc.On("Create", mock.Anything, userID, mock.AnythingOfType("service.CreateInvoiceInput")).
		Return(nil, domain.NewValidationError("client_name, company_name, email and phone are required"))

	body, _ := json.Marshal(map[string]interface{}{"client_name": "Jane"})

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodPost, "/api/v1/invoices", body)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- GetByNumber ---

func TestInvoiceHandler_GetByNumber_Success(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	invoiceSvc.On("GetByNumber", mock.Anything, userID, "INV-2026-0001").Return(sampleInvoice(userID), nil)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodGet, "/api/v1/invoices/INV-2026-0001", nil)
	c.Params = gin.Params{{Key: "id", Value: "INV-2026-0001"}}

	h.GetByNumber(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvoiceHandler_GetByNumber_NotFound(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	invoiceSvc.On("GetByNumber", mock.Anything, userID, "INV-2026-9999").Return(nil, domain.ErrInvoiceNotFound)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodGet, "/api/v1/invoices/INV-2026-9999", nil)
	c.Params = gin.Params{{Key: "id", Value: "INV-2026-9999"}}

	h.GetByNumber(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- SetStatus ---

func TestInvoiceHandler_SetStatus_Paid(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	paid := sampleInvoice(userID)
	paid.Status = domain.InvoiceStatusPaid
	now := time.Now().UTC()
	paid.PaidAt = &now

	invoiceSvc.On("SetStatus", mock.Anything, userID, "INV-2026-0001", domain.InvoiceStatusPaid).
		Return(paid, nil)

	body, _ := json.Marshal(map[string]string{"status": "paid"})

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodPut, "/api/v1/invoices/INV-2026-0001/status", body)
	c.Params = gin.Params{{Key: "id", Value: "INV-2026-0001"}}

	h.SetStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvoiceHandler_SetStatus_Invalid(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	invoiceSvc.On("SetStatus", mock.Anything, userID, "INV-2026-0001", domain.InvoiceStatus("archived")).
		Return(nil, domain.NewValidationError("invalid invoice status; allowed: pending, paid, overdue, cancelled"))

	body, _ := json.Marshal(map[string]string{"status": "archived"})

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodPut, "/api/v1/invoices/INV-2026-0001/status", body)
	c.Params = gin.Params{{Key: "id", Value: "INV-2026-0001"}}

	h.SetStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Duplicate ---

func TestInvoiceHandler_Duplicate_Success(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	dup := sampleInvoice(userID)
	dup.InvoiceNumber = "INV-2026-0002"

	invoiceSvc.On("Duplicate", mock.Anything, userID, "INV-2026-0001").Return(dup, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodPost, "/api/v1/invoices/INV-2026-0001/duplicate", nil)
	c.Params = gin.Params{{Key: "id", Value: "INV-2026-0001"}}

	h.Duplicate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

// --- Send ---

func TestInvoiceHandler_Send_Success(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	invoiceSvc.On("Send", mock.Anything, userID, "INV-2026-0001").Return(nil)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodPost, "/api/v1/invoices/INV-2026-0001/send", nil)
	c.Params = gin.Params{{Key: "id", Value: "INV-2026-0001"}}

	h.Send(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// --- RenderPDF ---

func TestInvoiceHandler_RenderPDF_Success(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	claims := &service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{},
		UserID:           userID,
		Name:             "Jane Doe",
		Email:            "jane@acme.test",
	}

	invoiceSvc.On("RenderPDF", mock.Anything, userID, "INV-2026-0001", mock.AnythingOfType("*domain.Issuer")).
		Return([]byte("%PDF-1.4"), nil)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodGet, "/api/v1/invoices/INV-2026-0001/pdf", nil)
	c.Set(middleware.ContextKeyClaims, claims)
	c.Params = gin.Params{{Key: "id", Value: "INV-2026-0001"}}

	h.RenderPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "INV-2026-0001.pdf")
	assert.Equal(t, "%PDF-1.4", w.Body.String())
}

func TestInvoiceHandler_RenderPDF_RendererFailure(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	claims := &service.Claims{UserID: userID, Name: "Jane Doe"}

	invoiceSvc.On("RenderPDF", mock.Anything, userID, "INV-2026-0001", mock.AnythingOfType("*domain.Issuer")).
		Return(nil, domain.ErrRenderFailed)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodGet, "/api/v1/invoices/INV-2026-0001/pdf", nil)
	c.Set(middleware.ContextKeyClaims, claims)
	c.Params = gin.Params{{Key: "id", Value: "INV-2026-0001"}}

	h.RenderPDF(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// --- Stats ---

func TestInvoiceHandler_Stats_Success(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	stats := &domain.InvoiceStats{
		Total: 5, Paid: 2, Pending: 2, Overdue: 1,
		TotalRevenue:  mustDec("550"),
		PendingAmount: mustDec("330"),
	}
	invoiceSvc.On("Stats", mock.Anything, userID).Return(stats, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodGet, "/api/v1/invoices/stats/summary", nil)

	h.Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Total   int `json:"total"`
			Overdue int `json:"overdue"`
		} `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, 5, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Overdue)
}

// --- SweepOverdue ---

func TestInvoiceHandler_SweepOverdue_Success(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	invoiceSvc.On("SweepOverdue", mock.Anything).Return(int64(4), nil)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodPost, "/api/v1/invoices/sweep-overdue", nil)

	h.SweepOverdue(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			MarkedOverdue int64 `json:"marked_overdue"`
		} `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), resp.Data.MarkedOverdue)
}

// --- Export ---

func TestInvoiceHandler_Export_CSV(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	invoiceSvc.On("ListAll", mock.Anything, userID).Return([]domain.Invoice{*sampleInvoice(userID)}, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodGet, "/api/v1/invoices/export?format=csv", nil)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.True(t, strings.Contains(w.Body.String(), "INV-2026-0001"))
}

func TestInvoiceHandler_Export_XLSX(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	invoiceSvc.On("ListAll", mock.Anything, userID).Return([]domain.Invoice{*sampleInvoice(userID)}, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodGet, "/api/v1/invoices/export?format=xlsx", nil)

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestInvoiceHandler_Export_UnknownFormat(t *testing.T) {
	h, invoiceSvc := newInvoiceHandler()

	userID := uuid.New()
	invoiceSvc.On("ListAll", mock.Anything, userID).Return([]domain.Invoice{}, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodGet, "/api/v1/invoices/export?format=pdf", nil)

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
