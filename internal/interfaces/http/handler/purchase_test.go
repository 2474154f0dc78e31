package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	procurementapp "github.com/smartbill/backend/internal/application/procurement"
	"github.com/smartbill/backend/internal/domain/procurement"
	"github.com/smartbill/backend/internal/domain/shared"
)

// MockPurchaseRepository implements procurement.PurchaseRepository for testing
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Save(ctx context.Context, entry *procurement.PurchaseEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*procurement.PurchaseEntry), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context) ([]*procurement.PurchaseEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*procurement.PurchaseEntry), args.Error(1)
}

func (m *MockPurchaseRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*procurement.PurchaseEntry, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]*procurement.PurchaseEntry), args.Error(1)
}

func (m *MockPurchaseRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func setupPurchaseHandler(productRepo *MockProductRepository, purchaseRepo *MockPurchaseRepository) *PurchaseHandler {
	eventBus := new(MockEventPublisher)
	eventBus.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	txScope := &stubTxScope{products: productRepo, purchases: purchaseRepo}
	service := procurementapp.NewPurchaseService(productRepo, purchaseRepo, txScope, eventBus, zap.NewNop())
	return NewPurchaseHandler(service)
}

func storedPurchase(t *testing.T, productID uuid.UUID) *procurement.PurchaseEntry {
	t.Helper()
	entry, err := procurement.NewPurchaseEntry(productID, "Gel Pen", "Acme Traders", 50,
		decimal.NewFromInt(4), "SUP-123", time.Now(), "", "alice")
	assert.NoError(t, err)
	entry.ClearDomainEvents()
	return entry
}

func TestPurchaseHandler_Record_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	purchaseRepo := new(MockPurchaseRepository)
	handler := setupPurchaseHandler(productRepo, purchaseRepo)

	product := createTestProduct(t, "Gel Pen", "PEN-01")
	cost := decimal.NewFromInt(4)

	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	purchaseRepo.On("Save", mock.Anything, mock.AnythingOfType("*procurement.PurchaseEntry")).Return(nil)
	productRepo.On("AdjustStock", mock.Anything, product.ID, 50).Return(nil)
	productRepo.On("SetPurchasePrice", mock.Anything, product.ID, cost).Return(nil)

	router := setupTestRouter()
	router.POST("/purchases", handler.Record)

	body, _ := json.Marshal(procurementapp.RecordPurchaseRequest{
		ProductID:    product.ID,
		SupplierName: "Acme Traders",
		Quantity:     50,
		CostPrice:    cost,
		InvoiceNo:    "SUP-123",
	})

	req := httptest.NewRequest(http.MethodPost, "/purchases", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	productRepo.AssertExpectations(t)
	purchaseRepo.AssertExpectations(t)
}

func TestPurchaseHandler_Record_ProductNotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	purchaseRepo := new(MockPurchaseRepository)
	handler := setupPurchaseHandler(productRepo, purchaseRepo)

	productID := uuid.New()
	productRepo.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.POST("/purchases", handler.Record)

	body, _ := json.Marshal(procurementapp.RecordPurchaseRequest{
		ProductID:    productID,
		SupplierName: "Acme Traders",
		Quantity:     50,
	})

	req := httptest.NewRequest(http.MethodPost, "/purchases", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	productRepo.AssertExpectations(t)
}

func TestPurchaseHandler_Record_MissingSupplier(t *testing.T) {
	productRepo := new(MockProductRepository)
	purchaseRepo := new(MockPurchaseRepository)
	handler := setupPurchaseHandler(productRepo, purchaseRepo)

	router := setupTestRouter()
	router.POST("/purchases", handler.Record)

	body, _ := json.Marshal(map[string]interface{}{
		"product_id": uuid.New().String(),
		"quantity":   10,
	})

	req := httptest.NewRequest(http.MethodPost, "/purchases", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseHandler_List_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	purchaseRepo := new(MockPurchaseRepository)
	handler := setupPurchaseHandler(productRepo, purchaseRepo)

	entries := []*procurement.PurchaseEntry{storedPurchase(t, uuid.New())}
	purchaseRepo.On("FindAll", mock.Anything).Return(entries, nil)

	router := setupTestRouter()
	router.GET("/purchases", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/purchases", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	purchaseRepo.AssertExpectations(t)
}

func TestPurchaseHandler_List_ByProduct(t *testing.T) {
	productRepo := new(MockProductRepository)
	purchaseRepo := new(MockPurchaseRepository)
	handler := setupPurchaseHandler(productRepo, purchaseRepo)

	productID := uuid.New()
	entries := []*procurement.PurchaseEntry{storedPurchase(t, productID)}
	purchaseRepo.On("FindByProduct", mock.Anything, productID).Return(entries, nil)

	router := setupTestRouter()
	router.GET("/purchases", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/purchases?product_id="+productID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	purchaseRepo.AssertExpectations(t)
}

func TestPurchaseHandler_List_InvalidProductID(t *testing.T) {
	productRepo := new(MockProductRepository)
	purchaseRepo := new(MockPurchaseRepository)
	handler := setupPurchaseHandler(productRepo, purchaseRepo)

	router := setupTestRouter()
	router.GET("/purchases", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/purchases?product_id=nope", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseHandler_GetByID_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	purchaseRepo := new(MockPurchaseRepository)
	handler := setupPurchaseHandler(productRepo, purchaseRepo)

	entryID := uuid.New()
	purchaseRepo.On("FindByID", mock.Anything, entryID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.GET("/purchases/:id", handler.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/purchases/"+entryID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	purchaseRepo.AssertExpectations(t)
}
