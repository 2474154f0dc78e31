package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopSellingProduct pairs a catalog product with its total sold quantity
type TopSellingProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Category  string    `json:"category"`
	SoldQty   int       `json:"sold_qty"`
	Stock     int       `json:"stock"`
}

// LowStockProduct is a catalog product at or below its threshold
type LowStockProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Stock     int       `json:"stock"`
	Threshold int       `json:"threshold"`
}

// DashboardStats holds the headline numbers for the dashboard
type DashboardStats struct {
	TodaySales    decimal.Decimal `json:"today_sales"`
	MonthSales    decimal.Decimal `json:"month_sales"`
	ProductCount  int64           `json:"product_count"`
	LowStockCount int             `json:"low_stock_count"`
}

// DashboardResponse aggregates everything the dashboard page shows
type DashboardResponse struct {
	Stats       DashboardStats      `json:"stats"`
	TopSelling  []TopSellingProduct `json:"top_selling"`
	LowStock    []LowStockProduct   `json:"low_stock"`
}
