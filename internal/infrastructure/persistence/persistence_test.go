package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/procurement"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&billing.Invoice{},
		&billing.InvoiceItem{},
		&procurement.PurchaseEntry{},
	))
	return db
}

func newStoredProduct(t *testing.T, db *gorm.DB, name, sku string, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, sku, "Stationery", catalog.UnitPiece)
	require.NoError(t, err)
	require.NoError(t, product.SetPrices(
		decimal.NewFromInt(5),
		decimal.NewFromInt(10),
		decimal.NewFromInt(8),
	))
	require.NoError(t, product.SetStock(stock))
	product.ClearDomainEvents()

	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), product))
	return product
}
