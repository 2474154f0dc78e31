package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name              string           `json:"name" binding:"required,min=1,max=200"`
	SKU               string           `json:"sku" binding:"required,min=1,max=50"`
	Category          string           `json:"category" binding:"max=100"`
	Unit              string           `json:"unit" binding:"omitempty,unit"`
	PurchasePrice     *decimal.Decimal `json:"purchase_price"`
	SellingPrice      *decimal.Decimal `json:"selling_price"`
	WholesalePrice    *decimal.Decimal `json:"wholesale_price"`
	GSTPercent        *decimal.Decimal `json:"gst_percent"`
	Stock             *int             `json:"stock"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
}

// UpdateProductRequest represents a request to update a product.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category          *string          `json:"category" binding:"omitempty,max=100"`
	Unit              *string          `json:"unit" binding:"omitempty,unit"`
	PurchasePrice     *decimal.Decimal `json:"purchase_price"`
	SellingPrice      *decimal.Decimal `json:"selling_price"`
	WholesalePrice    *decimal.Decimal `json:"wholesale_price"`
	GSTPercent        *decimal.Decimal `json:"gst_percent"`
	Stock             *int             `json:"stock"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Category          string          `json:"category"`
	Unit              string          `json:"unit"`
	PurchasePrice     decimal.Decimal `json:"purchase_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	WholesalePrice    decimal.Decimal `json:"wholesale_price"`
	GSTPercent        decimal.Decimal `json:"gst_percent"`
	Stock             int             `json:"stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	LowStock          bool            `json:"low_stock"`
	ProfitMargin      decimal.Decimal `json:"profit_margin"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(product *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:                product.ID,
		Name:              product.Name,
		SKU:               product.SKU,
		Category:          product.Category,
		Unit:              string(product.Unit),
		PurchasePrice:     product.PurchasePrice,
		SellingPrice:      product.SellingPrice,
		WholesalePrice:    product.WholesalePrice,
		GSTPercent:        product.GSTPercent,
		Stock:             product.Stock,
		LowStockThreshold: product.LowStockThreshold,
		LowStock:          product.IsLowStock(),
		ProfitMargin:      product.GetProfitMargin().Round(2),
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []*catalog.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
