package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"invokit/internal/domain"
	"invokit/internal/handler"
	"invokit/internal/middleware"
	"invokit/internal/service"
	"invokit/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newClientHandler() (*handler.ClientHandler, *mocks.MockClientService, *mocks.MockQuoteService) {
	clientSvc := new(mocks.MockClientService)
	quoteSvc := new(mocks.MockQuoteService)
	h := handler.NewClientHandler(clientSvc, quoteSvc)
	return h, clientSvc, quoteSvc
}

// authedContext builds a test context carrying the auth keys the middleware
// would normally set.
func authedContext(w *httptest.ResponseRecorder, userID uuid.UUID, method, path string, body []byte) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	if body != nil {
		c.Request, _ = http.NewRequest(method, path, bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request, _ = http.NewRequest(method, path, http.NoBody)
	}
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyName, "Jane Doe")
	return c
}

// --- Create ---

func TestClientHandler_Create_Success(t *testing.T) {
	h, clientSvc, _ := newClientHandler()

	userID := uuid.New()
	expected := &domain.Client{
		ID:          uuid.New(),
		OwnerUserID: userID,
		CompanyName: "Acme Corp",
		ClientName:  "Jane Doe",
		Email:       "jane@acme.test",
	}

	clientSvc.On("Create", mock.Anything, userID, mock.MatchedBy(func(input service.CreateClientInput) bool {
		return input.CompanyName == "Acme Corp" && input.Email == "jane@acme.test"
	})).Return(expected, nil)

	body, _ := json.Marshal(map[string]string{
		"company_name": "Acme Corp",
		"client_name":  "Jane Doe",
		"email":        "jane@acme.test",
	})

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodPost, "/api/v1/clients", body)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	clientSvc.AssertExpectations(t)
}

func TestClientHandler_Create_MissingFields(t *testing.T) {
	h, _, _ := newClientHandler()

	body, _ := json.Marshal(map[string]string{
		"company_name": "Acme Corp",
		// missing client_name and email
	})

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New(), http.MethodPost, "/api/v1/clients", body)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientHandler_Create_NoAuthContext(t *testing.T) {
	h, _, _ := newClientHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/clients", http.NoBody)

	h.Create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- GetByID ---

func TestClientHandler_GetByID_Success(t *testing.T) {
	h, clientSvc, _ := newClientHandler()

	userID := uuid.New()
	clientID := uuid.New()
	expected := &domain.Client{ID: clientID, OwnerUserID: userID, ClientName: "Jane"}

	clientSvc.On("GetByID", mock.Anything, userID, clientID).Return(expected, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodGet, "/api/v1/clients/"+clientID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: clientID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClientHandler_GetByID_NotFound(t *testing.T) {
	h, clientSvc, _ := newClientHandler()

	userID := uuid.New()
	clientID := uuid.New()
	clientSvc.On("GetByID", mock.Anything, userID, clientID).Return(nil, domain.ErrClientNotFound)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodGet, "/api/v1/clients/"+clientID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: clientID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientHandler_GetByID_InvalidID(t *testing.T) {
	h, _, _ := newClientHandler()

	w := httptest.NewRecorder()
	c := authedContext(w, uuid.New(), http.MethodGet, "/api/v1/clients/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- List ---

func TestClientHandler_List_Success(t *testing.T) {
	h, clientSvc, _ := newClientHandler()

	userID := uuid.New()
	clients := []domain.Client{
		{ID: uuid.New(), ClientName: "Jane"},
		{ID: uuid.New(), ClientName: "John"},
	}
	clientSvc.On("List", mock.Anything, userID, 0, 20).Return(clients, 2, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodGet, "/api/v1/clients?offset=0&limit=20", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Total)
}

func TestClientHandler_List_ClampsLimit(t *testing.T) {
	h, clientSvc, _ := newClientHandler()

	userID := uuid.New()
	clientSvc.On("List", mock.Anything, userID, 0, 20).Return([]domain.Client{}, 0, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodGet, "/api/v1/clients?limit=5000", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	clientSvc.AssertExpectations(t)
}

// --- Update / Delete ---

func TestClientHandler_Update_Success(t *testing.T) {
	h, clientSvc, _ := newClientHandler()

	userID := uuid.New()
	clientID := uuid.New()
	updated := &domain.Client{ID: clientID, Location: "Munich"}

	clientSvc.On("Update", mock.Anything, userID, clientID, mock.AnythingOfType("service.UpdateClientInput")).
		Return(updated, nil)

	body, _ := json.Marshal(map[string]string{"location": "Munich"})

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodPut, "/api/v1/clients/"+clientID.String(), body)
	c.Params = gin.Params{{Key: "id", Value: clientID.String()}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClientHandler_Delete_NotFound(t *testing.T) {
	h, clientSvc, _ := newClientHandler()

	userID := uuid.New()
	clientID := uuid.New()
	clientSvc.On("Delete", mock.Anything, userID, clientID).Return(domain.ErrClientNotFound)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodDelete, "/api/v1/clients/"+clientID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: clientID.String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Messages ---

func TestClientHandler_AddMessage_DefaultsAuthorToUserName(t *testing.T) {
	h, clientSvc, _ := newClientHandler()

	userID := uuid.New()
	clientID := uuid.New()
	msg := &domain.ClientMessage{ID: uuid.New(), ClientID: clientID, Text: "hello", Author: "Jane Doe"}

	clientSvc.On("AddMessage", mock.Anything, userID, clientID, mock.MatchedBy(func(input service.AddMessageInput) bool {
		return input.Text == "hello" && input.Author == "Jane Doe"
	})).Return(msg, nil)

	body, _ := json.Marshal(map[string]string{"text": "hello"})

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodPost, "/api/v1/clients/"+clientID.String()+"/messages", body)
	c.Params = gin.Params{{Key: "id", Value: clientID.String()}}

	h.AddMessage(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	clientSvc.AssertExpectations(t)
}

func TestClientHandler_ListMessages_Success(t *testing.T) {
	h, clientSvc, _ := newClientHandler()

	userID := uuid.New()
	clientID := uuid.New()
	msgs := []domain.ClientMessage{{ID: uuid.New(), ClientID: clientID, Text: "first"}}
	clientSvc.On("ListMessages", mock.Anything, userID, clientID).Return(msgs, nil)

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodGet, "/api/v1/clients/"+clientID.String()+"/messages", nil)
	c.Params = gin.Params{{Key: "id", Value: clientID.String()}}

	h.ListMessages(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Quote ---

func TestClientHandler_CreateQuote_Success(t *testing.T) {
	h, _, quoteSvc := newClientHandler()

	userID := uuid.New()
	clientID := uuid.New()
	quote := &domain.Quote{Status: domain.QuoteStatusPending}

	quoteSvc.On("CreateQuote", mock.Anything, userID, clientID, mock.AnythingOfType("service.CreateQuoteInput")).
		Return(quote, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"items": []map[string]interface{}{
			{"name": "Design", "price": "400", "quantity": 2},
		},
	})

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodPost, "/api/v1/clients/"+clientID.String()+"/quote", body)
	c.Params = gin.Params{{Key: "id", Value: clientID.String()}}

	h.CreateQuote(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	quoteSvc.AssertExpectations(t)
}

func TestClientHandler_CreateQuote_ValidationError(t *testing.T) {
	h, _, quoteSvc := newClientHandler()

	userID := uuid.New()
	clientID := uuid.New()

	quoteSvc.On("CreateQuote", mock.Anything, userID, clientID, mock.AnythingOfType("service.CreateQuoteInput")).
		Return(nil, domain.NewValidationError("quote requires at least one item"))

	body, _ := json.Marshal(map[string]interface{}{"items": []map[string]interface{}{}})

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodPost, "/api/v1/clients/"+clientID.String()+"/quote", body)
	c.Params = gin.Params{{Key: "id", Value: clientID.String()}}

	h.CreateQuote(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientHandler_UpdateQuoteStatus_NoQuote(t *testing.T) {
	h, _, quoteSvc := newClientHandler()

	userID := uuid.New()
	clientID := uuid.New()

	quoteSvc.On("UpdateQuoteStatus", mock.Anything, userID, clientID, mock.AnythingOfType("service.UpdateQuoteStatusInput")).
		Return(nil, domain.ErrQuoteNotFound)

	body, _ := json.Marshal(map[string]string{"status": "approved"})

	w := httptest.NewRecorder()
	c := authedContext(w, userID, http.MethodPut, "/api/v1/clients/"+clientID.String()+"/quote/status", body)
	c.Params = gin.Params{{Key: "id", Value: clientID.String()}}

	h.UpdateQuoteStatus(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
