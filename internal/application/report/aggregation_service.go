package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/catalog"
)

// DefaultTopSellingLimit matches the dashboard's top sellers list
const DefaultTopSellingLimit = 5

// DefaultLowStockPreview caps the dashboard's low stock list
const DefaultLowStockPreview = 5

// AggregationService derives dashboard figures from products and invoices.
// Everything here is a pure function of the current data; nothing is cached
// or incrementally maintained.
type AggregationService struct {
	productRepo catalog.ProductRepository
	invoiceRepo billing.InvoiceRepository
	now         func() time.Time
}

// NewAggregationService creates a new AggregationService
func NewAggregationService(productRepo catalog.ProductRepository, invoiceRepo billing.InvoiceRepository) *AggregationService {
	return &AggregationService{
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		now:         time.Now,
	}
}

// LowStockProducts returns products at or below their threshold, in
// catalog order.
func (s *AggregationService) LowStockProducts(ctx context.Context) ([]LowStockProduct, error) {
	products, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LowStockProduct, 0, len(products))
	for _, p := range products {
		out = append(out, LowStockProduct{
			ProductID: p.ID,
			Name:      p.Name,
			SKU:       p.SKU,
			Stock:     p.Stock,
			Threshold: p.LowStockThreshold,
		})
	}
	return out, nil
}

// TopSellingProducts ranks catalog products by total quantity sold across
// all invoices. Products that never sold rank with zero; products deleted
// from the catalog are dropped even if old invoices reference them. Ties
// keep catalog order.
func (s *AggregationService) TopSellingProducts(ctx context.Context, limit int) ([]TopSellingProduct, error) {
	if limit <= 0 {
		limit = DefaultTopSellingLimit
	}
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	sold := make(map[uuid.UUID]int)
	for _, inv := range invoices {
		for productID, qty := range inv.QuantityByProduct() {
			sold[productID] += qty
		}
	}

	ranked := make([]TopSellingProduct, 0, len(products))
	for _, p := range products {
		ranked = append(ranked, TopSellingProduct{
			ProductID: p.ID,
			Name:      p.Name,
			SKU:       p.SKU,
			Category:  p.Category,
			SoldQty:   sold[p.ID],
			Stock:     p.Stock,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SoldQty > ranked[j].SoldQty
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// TodaySales sums grand totals of invoices settled during the current local
// calendar day.
func (s *AggregationService) TodaySales(ctx context.Context) (decimal.Decimal, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.salesBetween(ctx, start, start.AddDate(0, 0, 1))
}

// MonthSales sums grand totals of invoices settled during the current local
// calendar month.
func (s *AggregationService) MonthSales(ctx context.Context) (decimal.Decimal, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.salesBetween(ctx, start, start.AddDate(0, 1, 0))
}

func (s *AggregationService) salesBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	invoices, err := s.invoiceRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.GrandTotal)
	}
	return total, nil
}

// Dashboard assembles the stats, top sellers and a low stock preview in one
// call, mirroring what the dashboard page needs.
func (s *AggregationService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	today, err := s.TodaySales(ctx)
	if err != nil {
		return nil, err
	}
	month, err := s.MonthSales(ctx)
	if err != nil {
		return nil, err
	}
	productCount, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.LowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	topSelling, err := s.TopSellingProducts(ctx, DefaultTopSellingLimit)
	if err != nil {
		return nil, err
	}

	lowStockCount := len(lowStock)
	if len(lowStock) > DefaultLowStockPreview {
		lowStock = lowStock[:DefaultLowStockPreview]
	}

	return &DashboardResponse{
		Stats: DashboardStats{
			TodaySales:    today,
			MonthSales:    month,
			ProductCount:  productCount,
			LowStockCount: lowStockCount,
		},
		TopSelling: topSelling,
		LowStock:   lowStock,
	}, nil
}
