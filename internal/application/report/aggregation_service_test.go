package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/catalog"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]*catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, query string) ([]*catalog.Product, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, category string) ([]*catalog.Product, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context) ([]*catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockProductRepository) SetPurchasePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	args := m.Called(ctx, id, price)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, number string) (*billing.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context) ([]*billing.Invoice, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*billing.Invoice, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newReportFixture() (*AggregationService, *MockProductRepository, *MockInvoiceRepository) {
	productRepo := new(MockProductRepository)
	invoiceRepo := new(MockInvoiceRepository)
	service := NewAggregationService(productRepo, invoiceRepo)
	return service, productRepo, invoiceRepo
}

func newProduct(t *testing.T, name, sku string, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, sku, "Stationery", catalog.UnitPiece)
	require.NoError(t, err)
	require.NoError(t, product.SetPrices(decimal.Zero, decimal.NewFromInt(10), decimal.Zero))
	require.NoError(t, product.SetStock(stock))
	return product
}

func settledInvoice(t *testing.T, lines map[*catalog.Product]int, grandTotal float64) *billing.Invoice {
	t.Helper()
	cart := billing.NewCart()
	for product, qty := range lines {
		require.NoError(t, cart.AddItem(product, catalog.PriceRetail))
		require.NoError(t, cart.SetQuantity(cart.Len()-1, qty))
	}
	invoice, err := billing.NewInvoiceFromCart(cart, "", "", catalog.PriceRetail, billing.TaxModeNone, "")
	require.NoError(t, err)
	invoice.GrandTotal = decimal.NewFromFloat(grandTotal)
	return invoice
}

func TestTopSellingProducts(t *testing.T) {
	service, productRepo, invoiceRepo := newReportFixture()

	pen := newProduct(t, "Ball Pen", "PEN-01", 100)
	book := newProduct(t, "Notebook", "NB-01", 50)
	glue := newProduct(t, "Glue Stick", "GLU-01", 30)

	productRepo.On("FindAll", mock.Anything).Return([]*catalog.Product{pen, book, glue}, nil)
	invoiceRepo.On("FindAll", mock.Anything).Return([]*billing.Invoice{
		settledInvoice(t, map[*catalog.Product]int{book: 7}, 70),
		settledInvoice(t, map[*catalog.Product]int{pen: 3}, 30),
		settledInvoice(t, map[*catalog.Product]int{book: 2, pen: 1}, 30),
	}, nil)

	ranked, err := service.TopSellingProducts(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, "NB-01", ranked[0].SKU)
	assert.Equal(t, 9, ranked[0].SoldQty)
	assert.Equal(t, "PEN-01", ranked[1].SKU)
	assert.Equal(t, 4, ranked[1].SoldQty)
	// never-sold products still appear with zero
	assert.Equal(t, "GLU-01", ranked[2].SKU)
	assert.Equal(t, 0, ranked[2].SoldQty)
}

func TestTopSellingProductsTruncatesAndKeepsCatalogOrderOnTies(t *testing.T) {
	service, productRepo, invoiceRepo := newReportFixture()

	first := newProduct(t, "A", "SKU-A", 1)
	second := newProduct(t, "B", "SKU-B", 1)
	third := newProduct(t, "C", "SKU-C", 1)

	productRepo.On("FindAll", mock.Anything).Return([]*catalog.Product{first, second, third}, nil)
	invoiceRepo.On("FindAll", mock.Anything).Return([]*billing.Invoice{}, nil)

	ranked, err := service.TopSellingProducts(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	// all tied at zero: stable sort preserves catalog order
	assert.Equal(t, "SKU-A", ranked[0].SKU)
	assert.Equal(t, "SKU-B", ranked[1].SKU)
}

func TestTopSellingProductsDropsDeletedProducts(t *testing.T) {
	service, productRepo, invoiceRepo := newReportFixture()

	pen := newProduct(t, "Ball Pen", "PEN-01", 100)
	deleted := newProduct(t, "Old Item", "OLD-01", 0)

	// deleted product appears in invoice history but not in the catalog
	productRepo.On("FindAll", mock.Anything).Return([]*catalog.Product{pen}, nil)
	invoiceRepo.On("FindAll", mock.Anything).Return([]*billing.Invoice{
		settledInvoice(t, map[*catalog.Product]int{deleted: 99, pen: 1}, 100),
	}, nil)

	ranked, err := service.TopSellingProducts(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, ranked, 1)
	assert.Equal(t, "PEN-01", ranked[0].SKU)
}

func TestLowStockProducts(t *testing.T) {
	service, productRepo, _ := newReportFixture()

	glue := newProduct(t, "Glue Stick", "GLU-01", 2)
	productRepo.On("FindLowStock", mock.Anything).Return([]*catalog.Product{glue}, nil)

	low, err := service.LowStockProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "GLU-01", low[0].SKU)
	assert.Equal(t, 2, low[0].Stock)
}

func TestTodaySalesBoundaries(t *testing.T) {
	service, _, invoiceRepo := newReportFixture()

	fixed := time.Date(2025, 3, 14, 15, 30, 0, 0, time.Local)
	service.now = func() time.Time { return fixed }

	wantFrom := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	wantTo := time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)
	invoiceRepo.On("FindByDateRange", mock.Anything, wantFrom, wantTo).Return([]*billing.Invoice{
		{GrandTotal: decimal.NewFromInt(120)},
		{GrandTotal: decimal.NewFromFloat(45.5)},
	}, nil)

	total, err := service.TodaySales(context.Background())
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromFloat(165.5)))
	invoiceRepo.AssertExpectations(t)
}

func TestMonthSalesBoundaries(t *testing.T) {
	service, _, invoiceRepo := newReportFixture()

	fixed := time.Date(2025, 3, 14, 15, 30, 0, 0, time.Local)
	service.now = func() time.Time { return fixed }

	wantFrom := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	wantTo := time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local)
	invoiceRepo.On("FindByDateRange", mock.Anything, wantFrom, wantTo).Return([]*billing.Invoice{}, nil)

	total, err := service.MonthSales(context.Background())
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	invoiceRepo.AssertExpectations(t)
}

func TestDashboard(t *testing.T) {
	service, productRepo, invoiceRepo := newReportFixture()

	fixed := time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local)
	service.now = func() time.Time { return fixed }

	pen := newProduct(t, "Ball Pen", "PEN-01", 100)
	glue := newProduct(t, "Glue Stick", "GLU-01", 2)

	invoiceRepo.On("FindByDateRange", mock.Anything, mock.Anything, mock.Anything).Return([]*billing.Invoice{
		{GrandTotal: decimal.NewFromInt(500)},
	}, nil)
	productRepo.On("Count", mock.Anything).Return(int64(2), nil)
	productRepo.On("FindLowStock", mock.Anything).Return([]*catalog.Product{glue}, nil)
	productRepo.On("FindAll", mock.Anything).Return([]*catalog.Product{pen, glue}, nil)
	invoiceRepo.On("FindAll", mock.Anything).Return([]*billing.Invoice{}, nil)

	dashboard, err := service.Dashboard(context.Background())
	require.NoError(t, err)

	assert.True(t, dashboard.Stats.TodaySales.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, int64(2), dashboard.Stats.ProductCount)
	assert.Equal(t, 1, dashboard.Stats.LowStockCount)
	require.Len(t, dashboard.LowStock, 1)
	assert.Len(t, dashboard.TopSelling, 2)
}
