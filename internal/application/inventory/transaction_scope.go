package inventory

import (
	"context"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/procurement"
)

// TransactionScope provides transactional access to the repositories that
// stock movements touch. When a function is executed within a scope, all
// repository operations join the same database transaction and commit or
// roll back atomically. Both settlement (stock out) and purchase intake
// (stock in) run through it.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the stock-affecting
// repositories within a transaction. All repositories returned share the
// same underlying database transaction.
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// InvoiceRepo returns the invoice repository scoped to the current transaction
	InvoiceRepo() billing.InvoiceRepository
	// PurchaseRepo returns the purchase repository scoped to the current transaction
	PurchaseRepo() procurement.PurchaseRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	invoiceRepo  billing.InvoiceRepository
	purchaseRepo procurement.PurchaseRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	invoiceRepo billing.InvoiceRepository,
	purchaseRepo procurement.PurchaseRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
		purchaseRepo: purchaseRepo,
	}
}

// Execute runs the function directly without a transaction
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo implements TransactionalRepositories
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// InvoiceRepo implements TransactionalRepositories
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository {
	return s.invoiceRepo
}

// PurchaseRepo implements TransactionalRepositories
func (s *NoOpTransactionScope) PurchaseRepo() procurement.PurchaseRepository {
	return s.purchaseRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
