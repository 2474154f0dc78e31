package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the persistence operations for products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	Search(ctx context.Context, query string) ([]*Product, error)
	FindByCategory(ctx context.Context, category string) ([]*Product, error)
	FindLowStock(ctx context.Context) ([]*Product, error)
	// AdjustStock atomically adds delta to the product's stock level.
	// Negative deltas decrement a sale; the adjustment is a single SQL
	// update so concurrent writers cannot lose increments.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
	// SetPurchasePrice overwrites only the purchase price column, leaving
	// the stock counter untouched for concurrent adjustments
	SetPurchasePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
