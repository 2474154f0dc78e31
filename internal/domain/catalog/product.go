package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartbill/backend/internal/domain/shared"
)

// Unit is the stocking unit a product is counted in
type Unit string

const (
	UnitPiece Unit = "piece"
	UnitBox   Unit = "box"
	UnitPack  Unit = "pack"
)

// ValidUnits lists the accepted stocking units
var ValidUnits = []Unit{UnitPiece, UnitBox, UnitPack}

// IsValid reports whether the unit is one of the accepted values
func (u Unit) IsValid() bool {
	for _, v := range ValidUnits {
		if u == v {
			return true
		}
	}
	return false
}

// PriceType selects which selling price applies to a sale
type PriceType string

const (
	PriceRetail    PriceType = "retail"
	PriceWholesale PriceType = "wholesale"
)

// IsValid reports whether the price type is recognized
func (p PriceType) IsValid() bool {
	return p == PriceRetail || p == PriceWholesale
}

// DefaultLowStockThreshold applies when a product is created without an
// explicit threshold.
const DefaultLowStockThreshold = 10

// Product is the catalog aggregate root. Prices are stored as plain
// decimals; currency is uniform across the catalog.
type Product struct {
	shared.BaseAggregateRoot
	Name              string          `gorm:"not null;index"`
	SKU               string          `gorm:"uniqueIndex;not null"`
	Category          string          `gorm:"index"`
	Unit              Unit            `gorm:"not null;default:'piece'"`
	PurchasePrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SellingPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	WholesalePrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GSTPercent        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Stock             int             `gorm:"not null;default:0"`
	LowStockThreshold int             `gorm:"not null;default:10"`
}

// TableName specifies the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a product with validated identity fields. Stock starts
// at zero and grows through purchase intake.
func NewProduct(name, sku, category string, unit Unit) (*Product, error) {
	name = strings.TrimSpace(name)
	sku = strings.TrimSpace(sku)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_SKU", "Product SKU cannot be empty")
	}
	if unit == "" {
		unit = UnitPiece
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRODUCT_UNIT", "Product unit must be piece, box or pack")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SKU:               sku,
		Category:          strings.TrimSpace(category),
		Unit:              unit,
		PurchasePrice:     decimal.Zero,
		SellingPrice:      decimal.Zero,
		WholesalePrice:    decimal.Zero,
		GSTPercent:        decimal.Zero,
		Stock:             0,
		LowStockThreshold: DefaultLowStockThreshold,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))
	return product, nil
}

// SetPrices updates the product's price points. Negative prices are rejected.
func (p *Product) SetPrices(purchase, selling, wholesale decimal.Decimal) error {
	if purchase.IsNegative() || selling.IsNegative() || wholesale.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.PurchasePrice = purchase
	p.SellingPrice = selling
	p.WholesalePrice = wholesale
	return nil
}

// SetGSTPercent updates the GST rate applied to sales of this product
func (p *Product) SetGSTPercent(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_GST_PERCENT", "GST percent must be between 0 and 100")
	}
	p.GSTPercent = percent
	return nil
}

// SetStock replaces the absolute stock level
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	return nil
}

// SetLowStockThreshold updates the level at which the product is flagged
func (p *Product) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}
	p.LowStockThreshold = threshold
	return nil
}

// Rename updates the display name
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	p.Name = name
	return nil
}

// SetCategory updates the free-form category label
func (p *Product) SetCategory(category string) {
	p.Category = strings.TrimSpace(category)
}

// SetUnit changes the stocking unit
func (p *Product) SetUnit(unit Unit) error {
	if !unit.IsValid() {
		return shared.NewDomainError("INVALID_PRODUCT_UNIT", "Product unit must be piece, box or pack")
	}
	p.Unit = unit
	return nil
}

// PriceFor returns the unit price that applies for the given price type.
// Wholesale falls back to the retail price when no wholesale price is set.
func (p *Product) PriceFor(priceType PriceType) decimal.Decimal {
	if priceType == PriceWholesale && p.WholesalePrice.IsPositive() {
		return p.WholesalePrice
	}
	return p.SellingPrice
}

// IsLowStock reports whether the stock level is at or below the threshold
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

// GetProfitMargin returns the margin percentage between purchase and selling
// price, zero when the purchase price is unset.
func (p *Product) GetProfitMargin() decimal.Decimal {
	if p.PurchasePrice.IsZero() {
		return decimal.Zero
	}
	profit := p.SellingPrice.Sub(p.PurchasePrice)
	return profit.Div(p.PurchasePrice).Mul(decimal.NewFromInt(100))
}
