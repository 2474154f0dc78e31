package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appinv "github.com/smartbill/backend/internal/application/inventory"
	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/shared"
)

func newStoredInvoice(t *testing.T, db *gorm.DB, number string, quantity int) *billing.Invoice {
	t.Helper()
	pen := newStoredProduct(t, db, "Ball Pen "+number, "PEN-"+number, 100)

	cart := billing.NewCart()
	require.NoError(t, cart.AddItem(pen, catalog.PriceRetail))
	require.NoError(t, cart.SetQuantity(0, quantity))

	invoice, err := billing.NewInvoiceFromCart(cart, "Sharma Traders", "", catalog.PriceRetail, billing.TaxModeExclusive, "counter-1")
	require.NoError(t, err)
	require.NoError(t, invoice.AssignNumber(number))
	invoice.ClearDomainEvents()

	require.NoError(t, NewGormInvoiceRepository(db).Save(context.Background(), invoice))
	return invoice
}

func TestGormInvoiceRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	saved := newStoredInvoice(t, db, "INV-0001", 3)

	found, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", found.InvoiceNumber)
	assert.Equal(t, "Sharma Traders", found.CustomerName)
	require.Len(t, found.Items, 1)
	assert.Equal(t, 3, found.Items[0].Quantity)
	assert.True(t, found.GrandTotal.Equal(saved.GrandTotal))

	byNumber, err := repo.FindByNumber(ctx, "INV-0001")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byNumber.ID)
}

func TestGormInvoiceRepository_FindByNumberNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)

	_, err := repo.FindByNumber(context.Background(), "INV-9999")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormInvoiceRepository_SaveDuplicateNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)

	newStoredInvoice(t, db, "INV-0001", 1)

	pen := newStoredProduct(t, db, "Gel Pen", "PEN-X", 10)
	cart := billing.NewCart()
	require.NoError(t, cart.AddItem(pen, catalog.PriceRetail))
	dup, err := billing.NewInvoiceFromCart(cart, "", "", catalog.PriceRetail, billing.TaxModeExclusive, "")
	require.NoError(t, err)
	require.NoError(t, dup.AssignNumber("INV-0001"))

	assert.ErrorIs(t, repo.Save(context.Background(), dup), shared.ErrAlreadyExists)
}

func TestGormInvoiceRepository_FindAllNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)

	first := newStoredInvoice(t, db, "INV-0001", 1)
	second := newStoredInvoice(t, db, "INV-0002", 1)

	// force distinct creation order
	require.NoError(t, db.Model(first).UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)
	_ = second

	invoices, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, "INV-0002", invoices[0].InvoiceNumber)
	require.Len(t, invoices[0].Items, 1)
}

func TestGormInvoiceRepository_FindByDateRange(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	today := newStoredInvoice(t, db, "INV-0001", 1)
	yesterday := newStoredInvoice(t, db, "INV-0002", 1)
	require.NoError(t, db.Model(yesterday).UpdateColumn("created_at", time.Now().Add(-24*time.Hour)).Error)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)

	invoices, err := repo.FindByDateRange(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, today.ID, invoices[0].ID)
}

func TestGormInvoiceRepository_NextInvoiceNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)
	ctx := context.Background()

	number, err := repo.NextInvoiceNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", number)

	newStoredInvoice(t, db, "INV-0001", 1)
	number, err = repo.NextInvoiceNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", number)

	// numbers past four digits still sort above shorter ones
	newStoredInvoice(t, db, "INV-10000", 1)
	number, err = repo.NextInvoiceNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-10001", number)
}

func TestGormInvoiceRepository_Count(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInvoiceRepository(db)

	newStoredInvoice(t, db, "INV-0001", 1)
	newStoredInvoice(t, db, "INV-0002", 1)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormTransactionScope_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()

	pen := newStoredProduct(t, db, "Ball Pen", "PEN-01", 100)

	boom := assert.AnError
	err := scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if err := repos.ProductRepo().AdjustStock(ctx, pen.ID, -10); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	found, err := NewGormProductRepository(db).FindByID(ctx, pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, found.Stock, "rolled back stock change must not stick")

	err = scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		return repos.ProductRepo().AdjustStock(ctx, pen.ID, -10)
	})
	require.NoError(t, err)

	found, err = NewGormProductRepository(db).FindByID(ctx, pen.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, found.Stock)
}
